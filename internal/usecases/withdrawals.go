package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/internal/usecases/repository"
)

// MinWithdrawalAmount is the fixed minimum for a withdrawal request.
var MinWithdrawalAmount = decimal.NewFromInt(10)

type WithdrawalsRepository interface {
	InsertWithdrawalRequest(ctx context.Context, wr *entities.WithdrawalRequest) error
	FindUserWithdrawalRequests(ctx context.Context, userID uuid.UUID) ([]entities.WithdrawalRequest, error)
	FindWithdrawalRequestByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error)
	ResolvePendingRequest(ctx context.Context, id uuid.UUID, status string, adminNotes *string) (bool, error)
}

type BankAccountsRepository interface {
	FindUserBankAccounts(ctx context.Context, userID uuid.UUID) ([]entities.BankAccount, error)
	FindBankAccountByID(ctx context.Context, id uuid.UUID) (*entities.BankAccount, error)
	InsertBankAccount(ctx context.Context, account *entities.BankAccount) error
}

// CanWithdraw is the eligibility gate: withdrawals unlock once the user has
// at least one order and every order is completed.
func CanWithdraw(orders []entities.Order) bool {
	completed, total := OrderProgress(orders)
	return total > 0 && completed == total
}

// GateMessage explains a locked gate; empty when withdrawal is permitted.
func GateMessage(orders []entities.Order) string {
	completed, total := OrderProgress(orders)
	switch {
	case total == 0:
		return "Complete your first order to unlock withdrawals"
	case completed < total:
		return fmt.Sprintf("Complete all orders (%d/%d) to unlock withdrawals", completed, total)
	default:
		return ""
	}
}

// WithdrawalEligibility is the gate state as shown to the user.
type WithdrawalEligibility struct {
	CanWithdraw     bool   `json:"can_withdraw"`
	Message         string `json:"message,omitempty"`
	CompletedOrders int    `json:"completed_orders"`
	TotalOrders     int    `json:"total_orders"`
}

// WithdrawalSubmission is a withdrawal request as submitted. The destination
// is either a saved bank account or freshly entered details.
type WithdrawalSubmission struct {
	UserID         uuid.UUID       `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	SavedAccountID *uuid.UUID      `json:"saved_account_id"`
	Country        string          `json:"country"`
	BankName       string          `json:"bank_name"`
	AccountName    string          `json:"account_name"`
	AccountNumber  string          `json:"account_number"`
}

type WithdrawalService struct {
	logger       *slog.Logger
	users        UsersRepository
	orders       OrdersRepository
	transactions TransactionsRepository
	withdrawals  WithdrawalsRepository
	bankAccounts BankAccountsRepository
	transactor   Transactor
}

func NewWithdrawalService(
	logger *slog.Logger,
	users UsersRepository,
	orders OrdersRepository,
	transactions TransactionsRepository,
	withdrawals WithdrawalsRepository,
	bankAccounts BankAccountsRepository,
	transactor Transactor,
) *WithdrawalService {
	return &WithdrawalService{
		logger:       logger,
		users:        users,
		orders:       orders,
		transactions: transactions,
		withdrawals:  withdrawals,
		bankAccounts: bankAccounts,
		transactor:   transactor,
	}
}

func (s *WithdrawalService) Eligibility(ctx context.Context, userID uuid.UUID) (*WithdrawalEligibility, error) {
	orders, err := s.orders.FindUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, total := OrderProgress(orders)

	return &WithdrawalEligibility{
		CanWithdraw:     CanWithdraw(orders),
		Message:         GateMessage(orders),
		CompletedOrders: completed,
		TotalOrders:     total,
	}, nil
}

func (s *WithdrawalService) GetUserWithdrawalRequests(ctx context.Context, userID uuid.UUID) ([]entities.WithdrawalRequest, error) {
	return s.withdrawals.FindUserWithdrawalRequests(ctx, userID)
}

// RequestWithdrawal validates the submission, then debits the balance and
// creates the paired withdrawal transaction and request atomically. The
// debit is optimistic: it happens at request time, not at approval time.
func (s *WithdrawalService) RequestWithdrawal(ctx context.Context, req WithdrawalSubmission) (*entities.WithdrawalRequest, error) {
	destination, err := s.resolveDestination(ctx, req)
	if err != nil {
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if req.Amount.LessThan(MinWithdrawalAmount) {
		return nil, ErrAmountBelowMinimum
	}

	user, err := s.users.FindUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(user.Balance) {
		return nil, ErrAmountExceedsBalance
	}

	orders, err := s.orders.FindUserOrders(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !CanWithdraw(orders) {
		return nil, ErrWithdrawalLocked
	}

	request := &entities.WithdrawalRequest{
		UserID:        req.UserID,
		Country:       destination.Country,
		BankName:      destination.BankName,
		AccountName:   destination.AccountName,
		AccountNumber: destination.AccountNumber,
		Amount:        req.Amount,
		Status:        entities.WithdrawalStatusPending,
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.DebitBalance(ctx, req.UserID, req.Amount); err != nil {
			return err
		}

		notes := fmt.Sprintf("Withdrawal to %s (%s) - %s", destination.BankName, destination.Country, destination.AccountName)
		transaction := &entities.Transaction{
			UserID:        req.UserID,
			Type:          entities.TransactionTypeWithdrawal,
			Amount:        req.Amount,
			Status:        entities.TransactionStatusPending,
			PaymentMethod: &destination.BankName,
			ReferenceID:   newReferenceID(withdrawalReferencePrefix),
			Notes:         &notes,
		}
		if err := s.transactions.InsertTransaction(ctx, transaction); err != nil {
			return err
		}

		request.TransactionID = transaction.ID
		return s.withdrawals.InsertWithdrawalRequest(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal requested",
		"user_id", req.UserID,
		"request_id", request.ID,
		"amount", req.Amount.String(),
		"bank", destination.BankName)

	return request, nil
}

// Approve finalizes a pending request: the request is marked approved and the
// paired transaction completes. The balance was already debited at request
// time, so no balance movement happens here.
func (s *WithdrawalService) Approve(ctx context.Context, requestID uuid.UUID, adminNotes string) error {
	return s.resolve(ctx, requestID, entities.WithdrawalStatusApproved, entities.TransactionStatusCompleted, adminNotes, false)
}

// Reject fails a pending request and restores the debited amount. The
// restoration is transactional with the status flip.
func (s *WithdrawalService) Reject(ctx context.Context, requestID uuid.UUID, adminNotes string) error {
	return s.resolve(ctx, requestID, entities.WithdrawalStatusRejected, entities.TransactionStatusFailed, adminNotes, true)
}

func (s *WithdrawalService) resolve(ctx context.Context, requestID uuid.UUID, requestStatus, transactionStatus, adminNotes string, restoreBalance bool) error {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.withdrawals.FindWithdrawalRequestByID(ctx, requestID)
		if err != nil {
			return err
		}

		var notes *string
		if adminNotes != "" {
			notes = &adminNotes
		}

		resolved, err := s.withdrawals.ResolvePendingRequest(ctx, requestID, requestStatus, notes)
		if err != nil {
			return err
		}
		if !resolved {
			return ErrWithdrawalResolved
		}

		if _, err = s.transactions.UpdateTransactionStatus(ctx, request.TransactionID, transactionStatus); err != nil {
			return err
		}

		if restoreBalance {
			if _, err = s.users.CreditBalance(ctx, request.UserID, request.Amount); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Withdrawal request resolved", "request_id", requestID, "status", requestStatus)

	return nil
}

// resolvedDestination is the bank account a withdrawal pays out to.
type resolvedDestination struct {
	Country       string
	BankName      string
	AccountName   string
	AccountNumber string
}

func (s *WithdrawalService) resolveDestination(ctx context.Context, req WithdrawalSubmission) (*resolvedDestination, error) {
	if req.SavedAccountID != nil {
		account, err := s.bankAccounts.FindBankAccountByID(ctx, *req.SavedAccountID)
		if err != nil {
			return nil, err
		}
		if account.UserID != req.UserID {
			return nil, repository.ErrBankAccountNotFound
		}
		return &resolvedDestination{
			Country:       account.Country,
			BankName:      account.BankName,
			AccountName:   account.AccountName,
			AccountNumber: account.AccountNumber,
		}, nil
	}

	if strings.TrimSpace(req.BankName) == "" ||
		strings.TrimSpace(req.AccountName) == "" ||
		strings.TrimSpace(req.AccountNumber) == "" {
		return nil, ErrMissingBankDetails
	}

	return &resolvedDestination{
		Country:       req.Country,
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
	}, nil
}
