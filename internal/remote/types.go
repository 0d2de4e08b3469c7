package remote

// GenerateRequest is the payload sent to the generation endpoint.
type GenerateRequest struct {
	Expr    string `json:"expr"`
	TraceID string `json:"trace_id"`
}

// GenerateResponse is the generation endpoint's success payload.
// Display is echoed to the user verbatim; no arithmetic correctness is
// implied or checked anywhere.
type GenerateResponse struct {
	Display     string `json:"display"`
	Explanation string `json:"explanation"`
	TraceID     string `json:"trace_id"`
	Ver         string `json:"ver"`
}

// SynthesizeRequest is the payload sent to the synthesis endpoint.
type SynthesizeRequest struct {
	Text    string `json:"text"`
	TraceID string `json:"trace_id"`
}

// SynthesizeResponse is the synthesis endpoint's success payload.
// DataURL is an embedded, directly playable audio resource.
type SynthesizeResponse struct {
	DataURL string  `json:"dataUrl"`
	Length  float64 `json:"length"`
	TraceID string  `json:"trace_id"`
	Ver     string  `json:"ver"`
}

// errorBody is the shape both endpoints use for non-2xx responses.
type errorBody struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id"`
}
