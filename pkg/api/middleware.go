package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
)

var internalServerError = []byte(`{"detail":"Internal Server Error"}`)

// corsPolicy allows cross-origin access from any origin, with every standard
// method and any header, credentials included.
func corsPolicy(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
			http.MethodConnect,
			http.MethodTrace,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})(next)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, req)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		entry := log.WithFields(log.Fields{
			"kind":    "api",
			"method":  req.Method,
			"path":    req.URL.Path,
			"status":  rec.status,
			"latency": time.Since(start).String(),
			"remote":  req.RemoteAddr,
		})

		switch {
		case rec.status >= 500:
			entry.Error("request failed")
		case rec.status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Debug("request served")
		}
	})
}

// recoverPanics turns a panicking handler into a 500 answer. Recovery itself
// is middleware.Recoverer; the empty 500 it leaves behind gets the JSON
// detail body every other error response carries.
func recoverPanics(next http.Handler) http.Handler {
	recoverer := middleware.Recoverer(next)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec := &statusRecorder{ResponseWriter: &jsonOnServerError{ResponseWriter: w}}
		recoverer.ServeHTTP(rec, req)

		if rec.status == http.StatusInternalServerError && rec.bytes == 0 {
			log.WithFields(log.Fields{"kind": "api", "path": req.URL.Path}).Error("handler failed without an answer")
			_, _ = w.Write(internalServerError)
		}
	})
}

// jsonOnServerError sets the JSON content type on bare 500 answers so the
// detail body written afterwards is labelled correctly.
type jsonOnServerError struct {
	http.ResponseWriter
}

func (w *jsonOnServerError) WriteHeader(status int) {
	if status == http.StatusInternalServerError && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(status)
}
