package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	tx "github.com/Thiht/transactor/pgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/pkg/database"
)

// TransactionsRepository handles the append-only ledger entries.
type TransactionsRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewTransactionsRepository(logger *slog.Logger, pg *database.Postgres) *TransactionsRepository {
	return &TransactionsRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

// FindUserTransactions retrieves a user's transactions, newest first,
// optionally narrowed by type, status and calendar month.
func (r *TransactionsRepository) FindUserTransactions(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]entities.Transaction, error) {
	qb := sq.Select("id", "user_id", "type", "amount", "status", "payment_method", "reference_id", "notes", "created_at", "updated_at").
		From("transactions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Type != "" {
		qb = qb.Where(sq.Eq{"type": filter.Type})
	}
	if filter.Status != "" {
		qb = qb.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Year != 0 {
		qb = qb.Where(sq.Expr("EXTRACT(YEAR FROM created_at) = ?", filter.Year))
	}
	if filter.Month != 0 {
		qb = qb.Where(sq.Expr("EXTRACT(MONTH FROM created_at) = ?", int(filter.Month)))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transactions query: %w", err)
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	transactions, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Transaction])
	if err != nil {
		r.logger.Error("failed to collect transactions rows", "error", err)
		return nil, err
	}

	return transactions, nil
}

func (r *TransactionsRepository) FindTransactionByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	query := `SELECT id, user_id, type, amount, status, payment_method, reference_id, notes, created_at, updated_at
                FROM transactions
               WHERE id = $1`

	rows, err := r.db(ctx).Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	transaction, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.Transaction])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect transaction row: %w", err)
	}

	return &transaction, nil
}

// InsertTransaction appends a ledger entry. A duplicate reference_id surfaces
// as ErrDuplicateReference; the store constraint is the idempotency check,
// there is no pre-insert existence query.
func (r *TransactionsRepository) InsertTransaction(ctx context.Context, t *entities.Transaction) error {
	query := `INSERT INTO transactions (user_id, type, amount, status, payment_method, reference_id, notes)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id, created_at, updated_at`

	err := r.db(ctx).QueryRow(ctx, query,
		t.UserID, t.Type, t.Amount, t.Status, t.PaymentMethod, t.ReferenceID, t.Notes,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	r.logger.Info("Transaction recorded", "reference_id", t.ReferenceID, "type", t.Type, "amount", t.Amount.String())

	return nil
}

// UpdateTransactionStatus transitions a pending entry. Reports whether a row
// changed; false means the entry was already resolved.
func (r *TransactionsRepository) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	ct, err := r.db(ctx).Exec(ctx,
		`UPDATE transactions SET status = $1, updated_at = NOW() WHERE id = $2 AND status = 'pending'`,
		status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update transaction status: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}
