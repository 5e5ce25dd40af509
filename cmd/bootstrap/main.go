package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/launchbase/backend/internal/database"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout for the bootstrap run")
	statusOnly := flag.Bool("status", false, "Only probe whether the schema responds, do not apply anything")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	if *statusOnly {
		if err := database.Status(ctx, db); err != nil {
			log.Fatalf("schema probe failed: %v", err)
		}
		fmt.Println("schema responds")
		return
	}

	report := database.Bootstrap(ctx, db)
	for _, stmt := range report.Statements {
		if stmt.Error != "" {
			fmt.Printf("%-32s %s (%s)\n", stmt.Name, stmt.Status, stmt.Error)
		} else {
			fmt.Printf("%-32s %s\n", stmt.Name, stmt.Status)
		}
	}

	if !report.OK() {
		log.Fatal("bootstrap finished with failures")
	}
	fmt.Println("bootstrap complete")
}
