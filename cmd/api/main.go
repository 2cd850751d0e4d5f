package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/Lelo88/brewery-api-golang/internal/beers"
	"github.com/Lelo88/brewery-api-golang/internal/config"
	"github.com/Lelo88/brewery-api-golang/internal/db"
	"github.com/Lelo88/brewery-api-golang/internal/docs"
	"github.com/Lelo88/brewery-api-golang/internal/events"
	"github.com/Lelo88/brewery-api-golang/internal/health"
	"github.com/Lelo88/brewery-api-golang/internal/httpx"
	"github.com/Lelo88/brewery-api-golang/internal/logger"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// appPool es lo que la app usa del pool: queries, ping y cierre.
type appPool interface {
	beers.Database
	health.Pinger
	Close()
}

// appDeps agrupa todo lo que toca el mundo exterior para poder testear run sin DB ni red.
type appDeps struct {
	loadConfig   func() (config.Config, error)
	newLogger    func(level, env string) (zerolog.Logger, error)
	migrate      func(ctx context.Context, databaseURL string, log zerolog.Logger) error
	newPool      func(ctx context.Context, databaseURL string, tracer pgx.QueryTracer) (appPool, error)
	newPublisher func(cfg config.Config) events.Publisher
	serve        func(ctx context.Context, server *http.Server) error
}

var fatalf = func(err error) {
	zlog.Fatal().Err(err).Msg("brewery api stopped")
}

func main() {
	// Contexto raíz del proceso: se cancela con SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, defaultDeps()); err != nil {
		fatalf(err)
	}
}

func defaultDeps() appDeps {
	return appDeps{
		loadConfig: config.Load,
		newLogger:  logger.New,
		migrate:    db.Migrate,
		newPool: func(ctx context.Context, databaseURL string, tracer pgx.QueryTracer) (appPool, error) {
			pool, err := db.NewPool(ctx, databaseURL, tracer)
			if err != nil {
				return nil, err
			}
			return pool, nil
		},
		newPublisher: func(cfg config.Config) events.Publisher {
			brokers := cfg.Brokers()
			if len(brokers) == 0 {
				return events.NopPublisher{}
			}
			return events.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		},
		serve: serveUntilDone,
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	log, err := deps.newLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		return err
	}

	if cfg.RunMigrations {
		if err := deps.migrate(ctx, cfg.DatabaseURL, log); err != nil {
			return err
		}
	}

	// En local logueamos cada query.
	var tracer pgx.QueryTracer
	if cfg.Env == "local" {
		tracer = logger.NewPgxTracer(log)
	}

	pool, err := deps.newPool(ctx, cfg.DatabaseURL, tracer)
	if err != nil {
		return err
	}
	defer pool.Close()

	publisher := deps.newPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("close event publisher")
		}
	}()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           buildRouter(pool, publisher, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info().Str("addr", server.Addr).Msg("listening")
	return deps.serve(ctx, server)
}

// serveUntilDone atiende hasta que se cancela ctx y después drena las conexiones abiertas.
func serveUntilDone(ctx context.Context, server *http.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func buildRouter(pool appPool, publisher events.Publisher, log zerolog.Logger) http.Handler {
	router := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.RequestLogger(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(requestTimeout))

	// Errores de routing se manejan a nivel router.
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(pool)
	router.Get("/health", healthHandler.Health)
	router.Get("/ready", healthHandler.Ready)

	docs.RegisterRoutes(router)

	service := beers.NewService(beers.NewRepository(pool), publisher)
	beers.RegisterRoutes(router, beers.NewHandler(service))

	return router
}
