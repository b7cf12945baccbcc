package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
)

// payloadTooLargeJSON is a pre-marshaled 413 body in the standard error format.
const payloadTooLargeJSON = `{"error":{"code":"PAYLOAD_TOO_LARGE","message":"request body exceeds size limit"}}`

// MaxBodyBytes limits request body size.
//
// A declared Content-Length over the limit is rejected before reading.
// Otherwise the body is read through http.MaxBytesReader, which also covers
// chunked uploads and lying headers, and replaced with the buffered copy.
func MaxBodyBytes(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				tooLarge(w, r, maxBytes, nil)
				return
			}

			buf, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
			if err != nil {
				tooLarge(w, r, maxBytes, err)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(buf))
			next.ServeHTTP(w, r)
		})
	}
}

func tooLarge(w http.ResponseWriter, r *http.Request, limit int64, cause error) {
	slog.WarnContext(r.Context(), "Request body size limit exceeded",
		"method", r.Method,
		"path", r.URL.Path,
		"content_length", r.ContentLength,
		"limit", limit,
		"error", cause)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusRequestEntityTooLarge)
	if _, err := w.Write([]byte(payloadTooLargeJSON)); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write payload too large response", "error", err)
	}
}
