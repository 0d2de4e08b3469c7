package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrBadDataURL indicates a synthesis payload that is not a base64
// audio data URL.
var ErrBadDataURL = errors.New("audio: invalid data url")

// DecodeDataURL extracts the raw audio bytes from a
// "data:audio/...;base64,..." URL as returned by the synthesis endpoint.
func DecodeDataURL(s string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: scheme", ErrBadDataURL)
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrBadDataURL)
	}

	mime, _, _ = strings.Cut(meta, ";")
	if !strings.HasPrefix(mime, "audio/") {
		return "", nil, fmt.Errorf("%w: media type %q is not audio", ErrBadDataURL, mime)
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("%w: payload is not base64", ErrBadDataURL)
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBadDataURL, err)
	}
	return mime, data, nil
}
