package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"promisecard/internal/sqlinline"
)

// Operator CLI over the donation journal: recent rows and running totals.
func main() {
	var (
		limitFlag   int
		summaryFlag bool
	)

	flag.IntVar(&limitFlag, "limit", 20, "number of recent donations to list")
	flag.BoolVar(&summaryFlag, "summary", false, "print journal totals instead of recent donations")
	flag.Parse()

	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		exitWithError(fmt.Errorf("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		exitWithError(fmt.Errorf("connect database: %w", err))
	}
	defer pool.Close()

	if summaryFlag {
		if err := printSummary(ctx, pool); err != nil {
			exitWithError(err)
		}
		return
	}
	if err := printRecent(ctx, pool, limitFlag); err != nil {
		exitWithError(err)
	}
}

func printSummary(ctx context.Context, pool *pgxpool.Pool) error {
	row := pool.QueryRow(ctx, stripMarker(sqlinline.QStatsSummary))
	var promises, fulfilled, donations, donations24 int64
	var gross, fee, net string
	if err := row.Scan(&promises, &fulfilled, &donations, &gross, &fee, &net, &donations24); err != nil {
		return fmt.Errorf("load summary: %w", err)
	}
	fmt.Printf("promises:           %d (%d fulfilled)\n", promises, fulfilled)
	fmt.Printf("donations:          %d (%d in last 24h)\n", donations, donations24)
	fmt.Printf("gross total:        %s\n", gross)
	fmt.Printf("fee total:          %s\n", fee)
	fmt.Printf("net total:          %s\n", net)
	return nil
}

func printRecent(ctx context.Context, pool *pgxpool.Pool, limit int) error {
	rows, err := pool.Query(ctx, stripMarker(sqlinline.QListDonations), limit)
	if err != nil {
		return fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, donor, asset, gross, fee, net string
		var promiseID int64
		var props []byte
		var createdAt time.Time
		if err := rows.Scan(&id, &promiseID, &donor, &asset, &gross, &fee, &net, &props, &createdAt); err != nil {
			return fmt.Errorf("scan donation: %w", err)
		}
		fmt.Printf("%s  promise=%d donor=%s asset=%s gross=%s net=%s\n",
			createdAt.UTC().Format(time.RFC3339), promiseID, donor, asset, gross, net)
	}
	return rows.Err()
}

// stripMarker drops the "--sql <uuid>" logging marker; this CLI talks to the
// pool directly rather than through the SQLRunner.
func stripMarker(query string) string {
	for i := 0; i < len(query); i++ {
		if query[i] == '\n' {
			return query[i+1:]
		}
	}
	return query
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
