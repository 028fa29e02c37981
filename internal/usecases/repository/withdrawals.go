package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tx "github.com/Thiht/transactor/pgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/pkg/database"
)

type WithdrawalsRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewWithdrawalsRepository(logger *slog.Logger, pg *database.Postgres) *WithdrawalsRepository {
	return &WithdrawalsRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

const withdrawalColumns = `id, user_id, transaction_id, country, bank_name, account_name, account_number, amount, status, admin_notes, created_at, updated_at`

func (r *WithdrawalsRepository) InsertWithdrawalRequest(ctx context.Context, wr *entities.WithdrawalRequest) error {
	query := `INSERT INTO withdrawal_requests (user_id, transaction_id, country, bank_name, account_name, account_number, amount, status)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING id, created_at, updated_at`

	err := r.db(ctx).QueryRow(ctx, query,
		wr.UserID, wr.TransactionID, wr.Country, wr.BankName,
		wr.AccountName, wr.AccountNumber, wr.Amount, wr.Status,
	).Scan(&wr.ID, &wr.CreatedAt, &wr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert withdrawal request: %w", err)
	}

	return nil
}

func (r *WithdrawalsRepository) FindUserWithdrawalRequests(ctx context.Context, userID uuid.UUID) ([]entities.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db(ctx).Query(ctx, query, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawal requests: %w", err)
	}

	requests, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.WithdrawalRequest])
	if err != nil {
		r.logger.Error("failed to collect withdrawal request rows", "error", err)
		return nil, err
	}

	return requests, nil
}

func (r *WithdrawalsRepository) FindWithdrawalRequestByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`

	rows, err := r.db(ctx).Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawal request: %w", err)
	}

	request, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.WithdrawalRequest])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect withdrawal request row: %w", err)
	}

	return &request, nil
}

// ResolvePendingRequest transitions a pending request to its final status.
// Reports whether the transition happened; false means another actor already
// resolved it.
func (r *WithdrawalsRepository) ResolvePendingRequest(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (bool, error) {
	ct, err := r.db(ctx).Exec(ctx,
		`UPDATE withdrawal_requests SET status = $1, admin_notes = $2, updated_at = NOW() WHERE id = $3 AND status = 'pending'`,
		status, adminNotes, id)
	if err != nil {
		return false, fmt.Errorf("failed to resolve withdrawal request: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}
