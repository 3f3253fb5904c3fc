package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS count_entries CASCADE`,
		`DROP TABLE IF EXISTS feedback CASCADE`,
		`DROP TABLE IF EXISTS books CASCADE`,
		`DROP TABLE IF EXISTS sankalpas CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sankalpas (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			deity TEXT NOT NULL DEFAULT '',
			target BIGINT NOT NULL DEFAULT 0,
			start_date DATE,
			end_date DATE,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS count_entries (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			sankalpa_id UUID NOT NULL REFERENCES sankalpas(id),
			count INTEGER NOT NULL CHECK (count >= 0),
			entry_date DATE NOT NULL,
			period_start DATE,
			period_end DATE,
			source TEXT NOT NULL DEFAULT 'manual',
			devotee_count INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_count_entries_user ON count_entries(user_id, entry_date)`,
		`CREATE INDEX IF NOT EXISTS idx_count_entries_sankalpa ON count_entries(sankalpa_id, entry_date)`,

		`CREATE TABLE IF NOT EXISTS books (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			storage_path TEXT NOT NULL,
			cover_url TEXT NOT NULL DEFAULT '',
			page_count INTEGER NOT NULL DEFAULT 0,
			added_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS feedback (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			subject TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			resolved BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	fmt.Println("  Created: users, sankalpas, count_entries, books, feedback")

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`INSERT INTO users (id, email, name, role)
		 VALUES ('seed-admin', 'admin@namavruksha.org', 'Seed Admin', 'admin')
		 ON CONFLICT (id) DO NOTHING`,

		`INSERT INTO sankalpas (id, name, description, deity, target, active, created_by)
		 VALUES (
			'00000000-0000-0000-0000-000000000001',
			'Rama Koti',
			'One crore Rama Nama for the community',
			'Sri Rama',
			10000000,
			TRUE,
			'seed-admin'
		 )
		 ON CONFLICT (id) DO NOTHING`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	fmt.Println("  Seeded: admin user, Rama Koti sankalpa")

	return nil
}
