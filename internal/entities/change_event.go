package entities

import "github.com/google/uuid"

const (
	ChangeEventInsert = "insert"
	ChangeEventUpdate = "update"
	ChangeEventDelete = "delete"
)

// ChangeEvent is a row-change notification from the ledger store. Delivery is
// at-least-once and unordered across tables, so consumers must re-read current
// state instead of applying events as deltas.
type ChangeEvent struct {
	Table  string    `json:"table"`
	Event  string    `json:"event"`
	RowID  uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
}
