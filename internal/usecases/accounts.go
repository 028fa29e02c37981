package usecases

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finledger/commission-app/backend/internal/entities"
)

// AccountService reads account state and manages saved bank accounts.
type AccountService struct {
	logger       *slog.Logger
	users        UsersRepository
	bankAccounts BankAccountsRepository
}

func NewAccountService(logger *slog.Logger, users UsersRepository, bankAccounts BankAccountsRepository) *AccountService {
	return &AccountService{logger: logger, users: users, bankAccounts: bankAccounts}
}

func (s *AccountService) GetUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.users.FindUserByID(ctx, userID)
}

func (s *AccountService) GetUserBankAccounts(ctx context.Context, userID uuid.UUID) ([]entities.BankAccount, error) {
	return s.bankAccounts.FindUserBankAccounts(ctx, userID)
}

func (s *AccountService) AddBankAccount(ctx context.Context, account *entities.BankAccount) error {
	if account.BankName == "" || account.AccountName == "" || account.AccountNumber == "" {
		return ErrMissingBankDetails
	}

	return s.bankAccounts.InsertBankAccount(ctx, account)
}
