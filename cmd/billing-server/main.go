package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/careops/hospital-services/internal/api"
	"github.com/careops/hospital-services/internal/billing"
	"github.com/careops/hospital-services/internal/config"
	"github.com/careops/hospital-services/internal/db"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("billing-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.BillingPostgresDSN == "" {
		log.Fatal("BILLING_POSTGRES_DSN is required")
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.BillingHTTPPort)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.BillingPostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	repo := billing.NewPgRepository(pgPool)
	if err := repo.EnsureSchema(rootCtx); err != nil {
		log.Fatalf("schema error: %v", err)
	}

	svc := billing.NewService(repo)
	handler := billing.NewHandler(svc)

	r := chi.NewRouter()
	r.Use(api.RequestIDMiddleware)
	r.Use(api.LoggingMiddleware)

	health := api.NewHealthHandler(pgPool, nil, cfg.Env, version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.BillingHTTPPort,
		Handler: r,
	}

	go func() {
		log.Printf("billing-server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down billing-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
