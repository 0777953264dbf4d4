package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/config"
	"github.com/brightsmile/clinic-backend/internal/db"
	"github.com/brightsmile/clinic-backend/internal/promotion"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("cleanup-worker starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running cleanup worker in env=%s interval=%s", cfg.Env, cfg.WorkerInterval)

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

	bookingRepo := booking.NewPgRepository(pgPool)
	promoRepo := promotion.NewPgRepository(pgPool)

	// Run once at startup
	runOnce(rootCtx, bookingRepo, promoRepo)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			log.Println("shutdown signal received, stopping cleanup worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, bookingRepo, promoRepo)
		}
	}
}

// runOnce prunes reservation rows for past dates and deactivates
// promotions whose window has closed.
func runOnce(ctx context.Context, bookings *booking.PgRepository, promos *promotion.PgRepository) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	now := time.Now()

	pruned, err := bookings.PruneSlotsBefore(runCtx, now.Format(booking.DateLayout))
	if err != nil {
		log.Printf("slot prune error: %v", err)
		return
	}

	deactivated, err := promos.DeactivateExpired(runCtx, now)
	if err != nil {
		log.Printf("promotion deactivation error: %v", err)
		return
	}

	log.Printf("cleanup run complete in %s: pruned=%d slots, deactivated=%d promotions",
		time.Since(start), pruned, deactivated)
}
