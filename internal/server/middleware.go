package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/manav03panchal/chronos/internal/logging"
)

// requestLogger carries chi's request id into the logging context, logs
// one line per request and counts it.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		if id == "" {
			id = logging.GenerateRequestID()
		}
		ctx := logging.WithCommand(logging.WithRequestID(r.Context(), id), r.Method+" "+r.URL.Path)
		w.Header().Set("X-Request-Id", id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))
		s.metrics.RecordRequest(time.Since(start))

		logging.LoggerFromContext(ctx).Info("request",
			logging.KeyStatus, ww.Status(),
			logging.KeyBytes, ww.BytesWritten(),
			logging.KeyDuration, time.Since(start).Milliseconds(),
		)
	})
}
