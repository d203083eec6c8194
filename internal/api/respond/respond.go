// Package respond writes the API's JSON bodies and HTTP caching headers.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const noStore = "no-cache, no-store, must-revalidate"

// ErrorBody carries a machine-readable code plus text for people.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorResponse wraps every non-2xx body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WriteJSON sends a rendered snapshot view. Views are private to the
// caller's filters, so shared caches must not keep them; the browser may
// serve a stale copy for half the TTL while it revalidates by ETag.
func WriteJSON(w http.ResponseWriter, data []byte, etag string, ttl time.Duration, cacheHit bool) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("ETag", etag)
	h.Set("Vary", "Accept-Encoding")
	h.Set("X-Cache", cacheStatus(cacheHit))
	maxAge := int(ttl / time.Second)
	h.Set("Cache-Control", "private, max-age="+strconv.Itoa(maxAge)+
		", stale-while-revalidate="+strconv.Itoa(maxAge/2))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// WriteNotModified answers a matching If-None-Match.
func WriteNotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}

// WriteError is WriteErrorDetail without detail.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteErrorDetail(w, status, code, message, "")
}

// WriteErrorDetail sends an ErrorResponse. Detail usually holds the
// validation message.
func WriteErrorDetail(w http.ResponseWriter, status int, code, message, detail string) {
	writeUncached(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Detail: detail}})
}

// WriteJSONObject encodes v for health and state-changing responses, which
// are never cached.
func WriteJSONObject(w http.ResponseWriter, status int, v any) {
	writeUncached(w, status, v)
}

func writeUncached(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", noStore)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
