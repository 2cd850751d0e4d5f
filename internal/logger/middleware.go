package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger deja en el contexto un logger con el request id (zerolog.Ctx lo recupera)
// y al terminar loguea el request. El nivel depende del status.
// Debe ir después de middleware.RequestID.
func RequestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			start := time.Now()

			requestLogger := base.With().Str("request_id", middleware.GetReqID(request.Context())).Logger()
			request = request.WithContext(requestLogger.WithContext(request.Context()))

			wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
			defer func() {
				status := wrapped.Status()
				if status == 0 {
					status = http.StatusOK
				}

				var event *zerolog.Event
				switch {
				case status >= http.StatusInternalServerError:
					event = requestLogger.Error()
				case status >= http.StatusBadRequest:
					event = requestLogger.Warn()
				default:
					event = requestLogger.Info()
				}

				event.
					Str("method", request.Method).
					Str("path", request.URL.Path).
					Int("status", status).
					Int("bytes", wrapped.BytesWritten()).
					Dur("latency", time.Since(start)).
					Str("remote_addr", request.RemoteAddr).
					Msg("http request")
			}()

			next.ServeHTTP(wrapped, request)
		})
	}
}
