package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Lelo88/brewery-api-golang/internal/httpx"
	"github.com/rs/zerolog"
)

const readyTimeout = 2 * time.Second

// Pinger es lo que /ready necesita de la base (pgxpool.Pool lo cumple).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler expone liveness y readiness.
type Handler struct {
	database Pinger
}

// New crea un handler de health. database puede ser nil (ready responde 503).
func New(database Pinger) *Handler {
	return &Handler{database: database}
}

type status struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Health indica si el proceso está vivo. No chequea la base.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, status{Status: "ok", Time: time.Now().UTC().Format(time.RFC3339)})
}

// Ready indica si el servicio puede atender: la base tiene que responder al ping.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.database == nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database pool not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := handler.database.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("readiness ping failed")
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database is not reachable")
		return
	}

	httpx.JSON(w, http.StatusOK, status{Status: "ready", Time: time.Now().UTC().Format(time.RFC3339)})
}
