package http

import (
	"log"
	"net/http"
	"time"
)

// RequestLogger logs request details, the requesting sharer and latency.
func RequestLogger(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		user := "-"
		if id, ok := requesterID(r); ok {
			user = id
		}
		logger.Printf(
			"request method=%s path=%s user=%s status=%d duration=%s",
			r.Method,
			r.URL.Path,
			user,
			rec.status,
			time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
