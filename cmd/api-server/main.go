package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brightsmile/clinic-backend/internal/api"
	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/catalog"
	"github.com/brightsmile/clinic-backend/internal/config"
	"github.com/brightsmile/clinic-backend/internal/dashboard"
	"github.com/brightsmile/clinic-backend/internal/db"
	"github.com/brightsmile/clinic-backend/internal/observability/metrics"
	"github.com/brightsmile/clinic-backend/internal/payments"
	"github.com/brightsmile/clinic-backend/internal/promotion"
	"github.com/brightsmile/clinic-backend/internal/records"
	redisclient "github.com/brightsmile/clinic-backend/internal/redis"
	"github.com/brightsmile/clinic-backend/internal/users"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s", cfg.Env, cfg.HTTPPort)
	if cfg.AuthDisabled {
		log.Println("WARNING: auth is disabled, every caller is treated as admin")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatalf("postgres connection error: %v", err)
	}
	defer pgPool.Close()
	log.Println("connected to Postgres")

	// Connect Redis
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

	catalogRepo := catalog.NewPgRepository(pgPool)
	promoRepo := promotion.NewPgRepository(pgPool)
	bookingRepo := booking.NewPgRepository(pgPool)

	userSvc := users.NewService(users.NewPgRepository(pgPool), cfg.JWTSecret)
	catalogSvc := catalog.NewCatalogService(catalogRepo)
	promoSvc := promotion.NewPromoService(promoRepo)

	locker := redisclient.NewRedisSlotLocker(rdb, cfg.LockTTL)
	availabilityCache := redisclient.NewCache(rdb, cfg.AvailabilityTTL)
	bookingSvc := booking.NewService(bookingRepo, catalogRepo, promoRepo, locker, availabilityCache, cfg.AvailabilityDays)

	recordsSvc := records.NewService(records.NewPgRepository(pgPool), bookingRepo, &directory{catalog: catalogSvc, users: userSvc})
	paymentsSvc := payments.NewService(payments.NewPgRepository(pgPool), bookingRepo)
	dashboardSvc := dashboard.NewService(pgPool)

	apiMetrics := metrics.NewAPIMetrics(prometheus.DefaultRegisterer)

	router := api.NewRouter(api.RouterConfig{
		Users:        userSvc,
		Catalog:      catalogSvc,
		Promos:       promoSvc,
		Booking:      bookingSvc,
		Records:      recordsSvc,
		Payments:     paymentsSvc,
		Dashboard:    dashboardSvc,
		Metrics:      apiMetrics,
		PgPool:       pgPool,
		Redis:        rdb,
		AuthDisabled: cfg.AuthDisabled,
		Env:          cfg.Env,
		Version:      version,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// directory resolves display names for PDF export from the catalog and
// user services.
type directory struct {
	catalog *catalog.CatalogService
	users   *users.Service
}

func (d *directory) DoctorName(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := d.catalog.GetDoctor(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.Name, nil
}

func (d *directory) PatientName(ctx context.Context, id uuid.UUID) (string, error) {
	u, err := d.users.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}
