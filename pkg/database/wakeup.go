package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// WakeUpResult is the outcome of a single round trip to the database.
type WakeUpResult struct {
	Ok      bool          `json:"ok"`
	Message string        `json:"message"`
	Latency time.Duration `json:"latency_ns"`
}

// WakeUp opens a dedicated connection and runs SELECT 1. Serverless
// databases that were paused resume on the first connection attempt.
func WakeUp(ctx context.Context, dsn string) WakeUpResult {
	start := time.Now()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return WakeUpResult{Message: err.Error(), Latency: time.Since(start)}
	}
	defer conn.Close(context.Background())

	var one int
	if err := conn.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return WakeUpResult{Message: err.Error(), Latency: time.Since(start)}
	}
	if one != 1 {
		return WakeUpResult{Message: "Database connection test failed", Latency: time.Since(start)}
	}

	return WakeUpResult{Ok: true, Message: "Database connection initialized", Latency: time.Since(start)}
}
