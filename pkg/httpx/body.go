package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// maxPeekBytes bounds how much of a request body the rate limiter will
// inspect. Auth request bodies are tiny; anything larger is keyed by IP only.
const maxPeekBytes = 4 << 10

// peekJSONField reads a top-level string field from a JSON body and restores
// the body so the handler can still decode it.
func peekJSONField(r *http.Request, field string) string {
	if r.Body == nil {
		return ""
	}

	peeked, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(peeked), r.Body), r.Body}
	if err != nil {
		return ""
	}

	var m map[string]any
	if err := json.Unmarshal(peeked, &m); err != nil {
		return ""
	}
	if s, ok := m[field].(string); ok {
		return s
	}
	return ""
}
