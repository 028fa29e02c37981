package workers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finledger/commission-app/backend/internal/core/ports"
	"github.com/finledger/commission-app/backend/internal/entities"
)

// ChangeBroadcaster receives ledger change events for fan-out to clients.
type ChangeBroadcaster interface {
	Broadcast(event entities.ChangeEvent)
}

// LedgerFeed worker bridges Postgres row-change notifications to websocket
// subscribers. Delivery is at least once and carries no ordering guarantee
// across tables; consumers re-fetch state instead of applying deltas.
type LedgerFeed struct {
	logger      *slog.Logger
	pool        *pgxpool.Pool
	broadcaster ChangeBroadcaster
}

// NewLedgerFeed creates a new ledger feed worker
func NewLedgerFeed(logger *slog.Logger, pool *pgxpool.Pool, broadcaster ChangeBroadcaster) *LedgerFeed {
	return &LedgerFeed{
		logger:      logger,
		pool:        pool,
		broadcaster: broadcaster,
	}
}

// Start listens for change notifications until the context is cancelled.
// A dropped connection is retried after a fixed delay; missed notifications
// during the gap are acceptable because consumers recompute from full state.
func (lf *LedgerFeed) Start(ctx context.Context) {
	lf.logger.Info("Starting ledger feed worker", "channel", ports.LedgerFeedChannel)

	for {
		if err := lf.listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
			lf.logger.Error("Ledger feed listener failed, reconnecting",
				"error", err, "retry_in", ports.LedgerFeedRetryDelay.String())
		}

		select {
		case <-ctx.Done():
			lf.logger.Info("Ledger feed worker stopped")
			return
		case <-time.After(ports.LedgerFeedRetryDelay):
		}
	}
}

func (lf *LedgerFeed) listen(ctx context.Context) error {
	// A dedicated connection is held for the lifetime of the LISTEN.
	conn, err := lf.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err = conn.Exec(ctx, "LISTEN "+ports.LedgerFeedChannel); err != nil {
		return err
	}

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		var event entities.ChangeEvent
		if err = json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			lf.logger.Warn("Skipping malformed change notification",
				"payload", notification.Payload, "error", err)
			continue
		}

		lf.logger.Debug("Ledger change",
			"table", event.Table, "event", event.Event, "user_id", event.UserID)

		lf.broadcaster.Broadcast(event)
	}
}
