package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient builds a client pointed at handler for both endpoints.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		GenerateURL:   srv.URL + "/generate",
		SynthesizeURL: srv.URL + "/synthesize",
	})
}

func TestGenerate_Success(t *testing.T) {
	var gotReq GenerateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(GenerateResponse{
			Display:     "24",
			Explanation: "twelve plus three times four is, famously, twenty-four",
			TraceID:     gotReq.TraceID,
			Ver:         "1",
		})
	})

	resp, err := c.Generate(context.Background(), "12+3*4", "trace-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Display != "24" {
		t.Errorf("Display = %q, want 24", resp.Display)
	}
	if gotReq.Expr != "12+3*4" || gotReq.TraceID != "trace-1" {
		t.Errorf("request payload = %+v, want expr and trace_id threaded through", gotReq)
	}
}

func TestGenerate_NonNumericDisplayAccepted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(GenerateResponse{
			Display:     "lots",
			Explanation: "the answer is lots",
		})
	})

	resp, err := c.Generate(context.Background(), "9*9", "t")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Display != "lots" {
		t.Errorf("Display = %q, want verbatim echo", resp.Display)
	}
}

func TestGenerate_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"model on fire","trace_id":"t"}`))
	})

	_, err := c.Generate(context.Background(), "1+1", "t")
	if !errors.Is(err, ErrGenerationUnavailable) {
		t.Fatalf("err = %v, want ErrGenerationUnavailable", err)
	}
}

func TestGenerate_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no display", `{"explanation":"words"}`},
		{"no explanation", `{"display":"7"}`},
		{"empty object", `{}`},
		{"not json", `<html>oops</html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.Generate(context.Background(), "1+1", "t")
			if !errors.Is(err, ErrGenerationMalformed) {
				t.Fatalf("err = %v, want ErrGenerationMalformed", err)
			}
		})
	}
}

func TestSynthesize_Success(t *testing.T) {
	var gotReq SynthesizeRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(SynthesizeResponse{
			DataURL: "data:audio/mp3;base64,AA==",
			Length:  1.5,
			TraceID: gotReq.TraceID,
		})
	})

	resp, err := c.Synthesize(context.Background(), "the answer is yes", "trace-2")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if resp.DataURL != "data:audio/mp3;base64,AA==" {
		t.Errorf("DataURL = %q", resp.DataURL)
	}
	if gotReq.Text != "the answer is yes" || gotReq.TraceID != "trace-2" {
		t.Errorf("request payload = %+v", gotReq)
	}
}

func TestSynthesize_Unavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Synthesize(context.Background(), "text", "t")
	if !errors.Is(err, ErrSynthesisUnavailable) {
		t.Fatalf("err = %v, want ErrSynthesisUnavailable", err)
	}
}

func TestSynthesize_MissingDataURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"length":2,"trace_id":"t"}`))
	})

	_, err := c.Synthesize(context.Background(), "text", "t")
	if !errors.Is(err, ErrSynthesisMalformed) {
		t.Fatalf("err = %v, want ErrSynthesisMalformed", err)
	}
}

func TestClient_UnreachableEndpoint(t *testing.T) {
	c := NewClient(Config{
		GenerateURL:   "http://127.0.0.1:1/generate",
		SynthesizeURL: "http://127.0.0.1:1/synthesize",
	})

	if _, err := c.Generate(context.Background(), "1", "t"); !errors.Is(err, ErrGenerationUnavailable) {
		t.Errorf("Generate err = %v, want ErrGenerationUnavailable", err)
	}
	if _, err := c.Synthesize(context.Background(), "x", "t"); !errors.Is(err, ErrSynthesisUnavailable) {
		t.Errorf("Synthesize err = %v, want ErrSynthesisUnavailable", err)
	}
}
