package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tx "github.com/Thiht/transactor/pgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/pkg/database"
)

// UsersRepository handles account rows and balance movements.
type UsersRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewUsersRepository(logger *slog.Logger, pg *database.Postgres) *UsersRepository {
	return &UsersRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

const userColumns = `id, username, phone, balance, country, currency, currency_symbol, is_vip, referral_code, created_at, updated_at`

func (r *UsersRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	rows, err := r.db(ctx).Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect user row: %w", err)
	}

	return &user, nil
}

// FindUserByReferralCode resolves an invitation code to its owner.
func (r *UsersRepository) FindUserByReferralCode(ctx context.Context, code string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE referral_code = $1`

	rows, err := r.db(ctx).Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by referral code: %w", err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect user row: %w", err)
	}

	return &user, nil
}

func (r *UsersRepository) InsertUser(ctx context.Context, user *entities.User) error {
	query := `INSERT INTO users (username, phone, balance, country, currency, currency_symbol, is_vip, referral_code)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              RETURNING id, created_at, updated_at`

	err := r.db(ctx).QueryRow(ctx, query,
		user.Username, user.Phone, user.Balance, user.Country,
		user.Currency, user.CurrencySymbol, user.IsVip, user.ReferralCode,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// CreditBalance atomically increments the balance and returns the new value.
// The increment happens store-side, never via read-modify-write.
func (r *UsersRepository) CreditBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := r.db(ctx).QueryRow(ctx,
		`UPDATE users SET balance = balance + $1, updated_at = NOW() WHERE id = $2 RETURNING balance`,
		delta, id,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to credit balance: %w", err)
	}

	return balance, nil
}

// DebitBalance atomically decrements the balance, guarded so it can never go
// negative. Returns ErrInsufficientBalance when the guard rejects the debit.
func (r *UsersRepository) DebitBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := r.db(ctx).QueryRow(ctx,
		`UPDATE users SET balance = balance - $1, updated_at = NOW() WHERE id = $2 AND balance >= $1 RETURNING balance`,
		amount, id,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing user from a rejected debit.
		if _, findErr := r.FindUserByID(ctx, id); findErr != nil {
			return decimal.Zero, findErr
		}
		return decimal.Zero, ErrInsufficientBalance
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to debit balance: %w", err)
	}

	return balance, nil
}
