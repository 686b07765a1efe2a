package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/careops/hospital-services/internal/db"
	"github.com/careops/hospital-services/internal/patient"
)

// Seeds the patient registry with demo accounts. Every seeded patient
// gets the same demo password so the dashboard can log in as any of them.
const demoPassword = "letmein"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("PATIENT_POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("PATIENT_POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	repo := patient.NewPgRepository(pool)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedPatients(context.Background(), pool, 200); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d patients", count)

	// One hash shared by all rows; hashing per row makes seeding crawl.
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		age := gofakeit.Number(18, 90)

		_, err := tx.Exec(ctx, `
			INSERT INTO patients (name, age, password_hash)
			VALUES ($1, $2, $3)
		`, name, age, string(hash))
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
