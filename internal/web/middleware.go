package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/bft-labs/postboard/internal/ports"
)

// requestLogger logs one line per request through logger.
func requestLogger(logger ports.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				ports.String("method", r.Method),
				ports.String("path", r.URL.Path),
				ports.Int("status", ww.Status()),
				ports.Int("bytes", ww.BytesWritten()),
				ports.Duration("duration", time.Since(start)),
				ports.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
