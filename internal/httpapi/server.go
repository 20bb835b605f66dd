package httpapi

import (
	"net/http"
	"time"

	"climate-api/internal/config"
)

// NewHandler wraps h with request ID, request logging and CORS, outermost
// first.
func NewHandler(cfg config.Config, h http.Handler) http.Handler {
	return requestID(requestLogger(corsMiddleware(cfg.CORSAllowedOrigins)(h)))
}

func NewServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg, h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
