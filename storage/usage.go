package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"brochat/model"
)

// UsageDBName is the ledger file inside the data directory.
const UsageDBName = "usage.db"

// UsageTotals aggregates the ledger.
type UsageTotals struct {
	Turns           int
	InputTokens     int
	OutputTokens    int
	AvgResponseTime time.Duration
}

// UsageStore is the usage ledger. It records one row per model response:
// ids, model, token counts and latency. Message content is never stored.
type UsageStore struct {
	db *sql.DB
}

func NewUsageStore(dataDir string) (*UsageStore, error) {
	dbPath := filepath.Join(dataDir, UsageDBName)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &UsageStore{db: db}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (us *UsageStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS usage (
		response_id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		model_id TEXT NOT NULL,
		reason TEXT,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		response_time_ms INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_usage_model ON usage(model_id);
	`

	_, err := us.db.Exec(schema)
	return err
}

// Record implements model.UsageRecorder.
func (us *UsageStore) Record(ctx context.Context, resp *model.ModelResponse) error {
	if resp == nil {
		return errors.New("nil response")
	}

	_, err := us.db.ExecContext(ctx, `
		INSERT INTO usage (response_id, request_id, model_id, reason, input_tokens, output_tokens, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, resp.ID, resp.RequestID, resp.ModelID, resp.Reason, resp.InputTokens, resp.OutputTokens, resp.ResponseTimeMS, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to record usage: %w", err)
	}

	return nil
}

// Totals sums the ledger for modelID, or for every model when modelID is
// empty.
func (us *UsageStore) Totals(ctx context.Context, modelID string) (UsageTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0), COALESCE(AVG(response_time_ms), 0)
		FROM usage
	`
	var args []any
	if modelID != "" {
		query += ` WHERE model_id = ?`
		args = append(args, modelID)
	}

	var totals UsageTotals
	var avgMS float64
	err := us.db.QueryRowContext(ctx, query, args...).Scan(&totals.Turns, &totals.InputTokens, &totals.OutputTokens, &avgMS)
	if err != nil {
		return UsageTotals{}, fmt.Errorf("failed to query usage totals: %w", err)
	}
	totals.AvgResponseTime = time.Duration(avgMS * float64(time.Millisecond))

	return totals, nil
}

func (us *UsageStore) Close() error {
	return us.db.Close()
}
