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

type BankAccountsRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewBankAccountsRepository(logger *slog.Logger, pg *database.Postgres) *BankAccountsRepository {
	return &BankAccountsRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

func (r *BankAccountsRepository) FindUserBankAccounts(ctx context.Context, userID uuid.UUID) ([]entities.BankAccount, error) {
	query := `SELECT id, user_id, country, bank_name, account_name, account_number, is_default, created_at
                FROM bank_accounts
               WHERE user_id = $1
               ORDER BY is_default DESC, created_at DESC`

	rows, err := r.db(ctx).Query(ctx, query, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}

	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.BankAccount])
	if err != nil {
		r.logger.Error("failed to collect bank account rows", "error", err)
		return nil, err
	}

	return accounts, nil
}

func (r *BankAccountsRepository) FindBankAccountByID(ctx context.Context, id uuid.UUID) (*entities.BankAccount, error) {
	query := `SELECT id, user_id, country, bank_name, account_name, account_number, is_default, created_at
                FROM bank_accounts
               WHERE id = $1`

	rows, err := r.db(ctx).Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank account: %w", err)
	}

	account, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.BankAccount])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBankAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect bank account row: %w", err)
	}

	return &account, nil
}

func (r *BankAccountsRepository) InsertBankAccount(ctx context.Context, account *entities.BankAccount) error {
	query := `INSERT INTO bank_accounts (user_id, country, bank_name, account_name, account_number, is_default)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, created_at`

	err := r.db(ctx).QueryRow(ctx, query,
		account.UserID, account.Country, account.BankName,
		account.AccountName, account.AccountNumber, account.IsDefault,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bank account: %w", err)
	}

	return nil
}
