package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	var (
		schemaFlag  string
		timeoutFlag time.Duration
	)

	flag.StringVar(&schemaFlag, "schema", "db/schema.sql", "path to the schema file to apply")
	flag.DurationVar(&timeoutFlag, "timeout", 30*time.Second, "overall timeout for applying the schema")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	schema, err := os.ReadFile(schemaFlag)
	if err != nil {
		exitWithError(fmt.Errorf("failed to read schema file: %w", err))
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to open database: %w", err))
	}
	defer db.Close()

	db.SetConnMaxLifetime(timeoutFlag)
	if err := db.Ping(); err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}

	start := time.Now()
	if _, err := db.Exec(string(schema)); err != nil {
		exitWithError(fmt.Errorf("failed to apply schema: %w", err))
	}

	fmt.Printf("Applied %s in %s\n", schemaFlag, time.Since(start).Round(time.Millisecond))
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
