package ports

import "time"

const (
	// LedgerFeedChannel is the Postgres notification channel carrying
	// row-change events for the ledger tables.
	LedgerFeedChannel = "ledger_changes"

	// LedgerFeedRetryDelay is the delay before re-establishing the
	// change-notification listener after a failure.
	LedgerFeedRetryDelay = 10 * time.Second
)
