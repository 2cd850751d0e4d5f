package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: "info"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "warn"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			base := zerolog.New(&out)

			var insideLogger *zerolog.Logger
			handler := middleware.RequestID(RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				insideLogger = zerolog.Ctx(r.Context())
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			})))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/beer", nil))

			require.Equal(t, tt.status, rec.Code)
			require.NotNil(t, insideLogger)
			require.NotEqual(t, zerolog.Disabled, insideLogger.GetLevel())

			var entry map[string]any
			require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
			require.Equal(t, tt.wantLevel, entry["level"])
			require.Equal(t, "http request", entry["message"])
			require.Equal(t, "GET", entry["method"])
			require.Equal(t, "/api/v1/beer", entry["path"])
			require.Equal(t, float64(tt.status), entry["status"])
			require.Equal(t, float64(4), entry["bytes"])
			require.NotEmpty(t, entry["request_id"])
		})
	}
}

func TestRequestLogger_DefaultStatus(t *testing.T) {
	var out bytes.Buffer

	handler := RequestLogger(zerolog.New(&out))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	require.Equal(t, float64(200), entry["status"])
	require.Equal(t, "info", entry["level"])
}
