// Package listener provides a Postgres LISTEN/NOTIFY consumer that keeps the
// API's dashboard snapshot in step with the database. It holds a dedicated
// pgx connection (not from the pool) listening on the `matches_seeded`
// channel and refreshes the store whenever a seed run finishes.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/ringside-data/internal/config"
	"github.com/albapepper/ringside-data/internal/provider/csvsource"
	"github.com/albapepper/ringside-data/internal/seed"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Refresher reloads the dashboard snapshot.
type Refresher interface {
	Refresh(ctx context.Context) (csvsource.LoadResult, error)
}

// Start opens a dedicated connection and listens on the matches_seeded
// channel. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, store Refresher, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, store, logger)
		if ctx.Err() != nil {
			logger.Info("Seed listener stopped (context cancelled)")
			return
		}

		logger.Error("Seed listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, store Refresher, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+config.NotifyChannel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", config.NotifyChannel, err)
	}
	logger.Info("Seed listener connected", "channel", config.NotifyChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		handleNotification(ctx, notification.Payload, store, logger)
	}
}

// handleNotification refreshes inline. Notifications that arrive meanwhile
// queue on the connection, and the store coalesces overlapping refreshes.
func handleNotification(ctx context.Context, payload string, store Refresher, logger *slog.Logger) {
	var event seed.SeedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		logger.Warn("Failed to parse seed event, refreshing anyway",
			"payload", payload, "error", err)
	} else {
		logger.Info("Seed event received",
			"wrestlers", event.Wrestlers,
			"matches", event.Matches,
			"seeded_at", time.Unix(event.Timestamp, 0).UTC())
	}

	result, err := store.Refresh(ctx)
	if err != nil {
		logger.Warn("Snapshot refresh after seed failed", "error", err)
		return
	}
	logger.Info("Snapshot refreshed after seed", "summary", result.Summary())
}
