package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/Simplici0/printdesk/internal/config"
	"github.com/Simplici0/printdesk/internal/db"
	"github.com/Simplici0/printdesk/internal/logging"
	"github.com/Simplici0/printdesk/internal/middleware"
	"github.com/Simplici0/printdesk/internal/migrations"
	"github.com/Simplici0/printdesk/internal/seed"
	"github.com/Simplici0/printdesk/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	if err := logging.Configure(os.Stderr, "info", true); err != nil {
		return err
	}
	cfg := config.Load()
	if err := logging.Configure(os.Stderr, cfg.LogLevel, cfg.IsDev()); err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	st := store.New(database)

	if cfg.IsDev() {
		if err := migrations.Up(database, cfg.MigrationsDir); err != nil {
			return fmt.Errorf("run database migrations: %w", err)
		}
		stats, err := seed.Run(context.Background(), st)
		if err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		log.WithField("inserts", stats.Inserts).Info("seed complete")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(&server{store: st}, cfg.RequestTimeout),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{"addr": srv.Addr, "env": cfg.AppEnv}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(s *server, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calc", s.handleCalc)

		r.Get("/clients", s.handleClientsList)
		r.Post("/clients", s.handleClientCreate)
		r.Put("/clients/{id}", s.handleClientUpdate)
		r.Delete("/clients/{id}", s.handleClientDelete)
		r.Get("/clients/{id}/estimates", s.handleEstimatesList)
		r.Post("/clients/{id}/estimates", s.handleEstimateCreate)

		r.Delete("/estimates/{id}", s.handleEstimateDelete)
		r.Get("/estimates/{id}/details", s.handleDetailsList)
		r.Post("/estimates/{id}/details", s.handleDetailCreate)
		r.Post("/estimates/{id}/slip", s.handleSlip)
		r.Get("/estimates/{id}/slip/text", s.handleSlipText)
		r.Post("/estimates/{id}/schedule", s.handleScheduleCreate)

		r.Delete("/details/{id}", s.handleDetailDelete)

		r.Get("/schedule", s.handleScheduleMonth)
		r.Post("/schedule/{id}/toggle", s.handleScheduleToggle)
		r.Delete("/schedule/{id}", s.handleScheduleDelete)
	})

	return r
}
