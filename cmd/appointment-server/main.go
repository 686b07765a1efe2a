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
	"github.com/careops/hospital-services/internal/appointment"
	"github.com/careops/hospital-services/internal/clients"
	"github.com/careops/hospital-services/internal/config"
	"github.com/careops/hospital-services/internal/db"
	redisclient "github.com/careops/hospital-services/internal/redis"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("appointment-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.AppointmentPostgresDSN == "" {
		log.Fatal("APPOINTMENT_POSTGRES_DSN is required")
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.AppointmentHTTPPort)
	log.Printf("peers: patient=%s billing=%s upstream_timeout=%s",
		cfg.PatientServiceURL, cfg.BillingServiceURL, cfg.UpstreamTimeout)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.AppointmentPostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	repo := appointment.NewPgRepository(pgPool)
	if err := repo.EnsureSchema(rootCtx); err != nil {
		log.Fatalf("schema error: %v", err)
	}

	registry := clients.NewPatientClient(cfg.PatientServiceURL, cfg.UpstreamTimeout)
	billing := clients.NewBillingClient(cfg.BillingServiceURL, cfg.UpstreamTimeout)
	locker := redisclient.NewRedisSlotLocker(rdb, cfg.LockTTL)

	svc := appointment.NewService(repo, registry, billing, locker, cfg.UpstreamTimeout)
	handler := appointment.NewHandler(svc)

	r := chi.NewRouter()
	r.Use(api.RequestIDMiddleware)
	r.Use(api.LoggingMiddleware)

	health := api.NewHealthHandler(pgPool, rdb, cfg.Env, version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.AppointmentHTTPPort,
		Handler: r,
	}

	go func() {
		log.Printf("appointment-server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down appointment-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
