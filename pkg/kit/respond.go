package kit

import (
	"html"
	"io"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	headerRequestID = "X-Request-Id"
)

func WriteHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// WriteError responds with an escaped HTML message and echoes the request id
// so that a failing fragment can be matched to its log entry.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		w.Header().Set(headerRequestID, reqID)
	}
	WriteHTML(w, status, html.EscapeString(msg))
}
