package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/brightsmile/clinic-backend/internal/db"
)

// seedPassword is shared by every generated account. Dev fixture only.
const seedPassword = "password123"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	_ = godotenv.Load()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	seedCtx := context.Background()

	serviceIDs, err := seedServices(seedCtx, pool)
	if err != nil {
		log.Fatalf("seed services: %v", err)
	}
	if err := seedDoctors(seedCtx, pool, 8); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedPromotions(seedCtx, pool, serviceIDs); err != nil {
		log.Fatalf("seed promotions: %v", err)
	}
	if err := seedUsers(seedCtx, pool, 50); err != nil {
		log.Fatalf("seed users: %v", err)
	}

	log.Println("seed complete")
}

func seedServices(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	services := []struct {
		name          string
		priceCentavos int64
		duration      string
	}{
		{"Oral Prophylaxis (Cleaning)", 50000, "30 mins"},
		{"Tooth Extraction", 80000, "45 mins"},
		{"Dental Filling", 100000, "45 mins"},
		{"Root Canal Treatment", 500000, "90 mins"},
		{"Teeth Whitening", 1000000, "60 mins"},
		{"Dental Braces Consultation", 30000, "30 mins"},
		{"Denture Fitting", 600000, "60 mins"},
	}

	log.Printf("seeding %d services", len(services))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, len(services))
	for _, s := range services {
		id := uuid.New()
		_, err := tx.Exec(ctx, `
			INSERT INTO services (id, name, price_centavos, duration, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
		`, id, s.name, s.priceCentavos, s.duration)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("services seeded")
	return ids, nil
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d doctors", count)

	credentials := []string{
		"DMD",
		"DMD, Orthodontics",
		"DMD, Endodontics",
		"DMD, Oral Surgery",
		"DMD, Pediatric Dentistry",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		id := uuid.New()
		name := "Dr. " + gofakeit.Name()
		cred := credentials[gofakeit.Number(0, len(credentials)-1)]
		fee := int64(gofakeit.Number(30000, 100000))

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, name, credentials, fee_centavos, available, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, now(), now())
		`, id, name, cred, fee)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("doctors seeded")
	return nil
}

func seedPromotions(ctx context.Context, pool *pgxpool.Pool, serviceIDs []uuid.UUID) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	log.Println("seeding promotions")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	id := uuid.New()
	now := time.Now()
	_, err = tx.Exec(ctx, `
		INSERT INTO promotions (id, title, discount_pct, starts_at, ends_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, now(), now())
	`, id, "Opening Month Promo", 20.0, now.AddDate(0, 0, -1), now.AddDate(0, 1, 0))
	if err != nil {
		return err
	}

	// Discount the first two services only.
	for _, sid := range serviceIDs[:min(2, len(serviceIDs))] {
		_, err := tx.Exec(ctx, `
			INSERT INTO promotion_services (promotion_id, service_id)
			VALUES ($1, $2)
		`, id, sid)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("promotions seeded")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, patients int) error {
	log.Printf("seeding %d patients plus fixed staff", patients)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	staff := []struct {
		name  string
		email string
		role  string
	}{
		{"Clinic Admin", "admin@brightsmile.ph", "admin"},
		{"Front Desk", "staff@brightsmile.ph", "staff"},
	}
	for _, s := range staff {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, phone, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, uuid.New(), s.name, s.email, gofakeit.Phone(), string(hash), s.role)
		if err != nil {
			return err
		}
	}

	for i := 0; i < patients; i++ {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, phone, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 'patient', now(), now())
		`, uuid.New(), gofakeit.Name(), gofakeit.Email(), gofakeit.Phone(), string(hash))
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("users seeded")
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
