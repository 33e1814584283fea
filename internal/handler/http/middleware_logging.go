package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/rs/zerolog"
)

// probePaths are polled by orchestrators and scrapers; their access lines
// are only kept at debug level.
var probePaths = map[string]bool{
	"/healthz": true,
	"/metrics": true,
}

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		status := lw.Status()
		log.WithLevel(accessLevel(r.URL.Path, status)).
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Str("remote_ip", r.RemoteAddr).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Msg("request served")
	})
}

func accessLevel(path string, status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	case probePaths[path]:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
