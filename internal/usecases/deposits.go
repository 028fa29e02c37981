package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
)

type DepositProofsRepository interface {
	InsertDepositProof(ctx context.Context, proof *entities.DepositProof) error
}

// DepositSubmission is a manual bank-transfer deposit with its proof.
type DepositSubmission struct {
	UserID        uuid.UUID       `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	BankName      string          `json:"bank_name"`
	ProofImageURL *string         `json:"proof_image_url"`
}

// DepositService records manual deposits. Deposits enter the ledger as
// pending and only move the balance once an administrator confirms them.
type DepositService struct {
	logger       *slog.Logger
	users        UsersRepository
	transactions TransactionsRepository
	proofs       DepositProofsRepository
	transactor   Transactor
}

func NewDepositService(
	logger *slog.Logger,
	users UsersRepository,
	transactions TransactionsRepository,
	proofs DepositProofsRepository,
	transactor Transactor,
) *DepositService {
	return &DepositService{
		logger:       logger,
		users:        users,
		transactions: transactions,
		proofs:       proofs,
		transactor:   transactor,
	}
}

func (s *DepositService) SubmitDeposit(ctx context.Context, req DepositSubmission) (*entities.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(req.BankName) == "" {
		return nil, ErrMissingBankDetails
	}

	if _, err := s.users.FindUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	notes := fmt.Sprintf("Bank transfer deposit via %s", req.BankName)
	transaction := &entities.Transaction{
		UserID:        req.UserID,
		Type:          entities.TransactionTypeDeposit,
		Amount:        req.Amount,
		Status:        entities.TransactionStatusPending,
		PaymentMethod: &req.BankName,
		ReferenceID:   newReferenceID(depositReferencePrefix),
		Notes:         &notes,
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.transactions.InsertTransaction(ctx, transaction); err != nil {
			return err
		}

		return s.proofs.InsertDepositProof(ctx, &entities.DepositProof{
			UserID:        req.UserID,
			TransactionID: transaction.ID,
			BankName:      req.BankName,
			ProofImageURL: req.ProofImageURL,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deposit submitted",
		"user_id", req.UserID,
		"reference_id", transaction.ReferenceID,
		"amount", req.Amount.String())

	return transaction, nil
}

// ConfirmDeposit completes a pending deposit and credits the balance
// atomically with the status flip.
func (s *DepositService) ConfirmDeposit(ctx context.Context, transactionID uuid.UUID) error {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		transaction, err := s.transactions.FindTransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if transaction.Type != entities.TransactionTypeDeposit {
			return ErrTransactionResolved
		}

		updated, err := s.transactions.UpdateTransactionStatus(ctx, transactionID, entities.TransactionStatusCompleted)
		if err != nil {
			return err
		}
		if !updated {
			return ErrTransactionResolved
		}

		_, err = s.users.CreditBalance(ctx, transaction.UserID, transaction.Amount)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("Deposit confirmed", "transaction_id", transactionID)

	return nil
}
