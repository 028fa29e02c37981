package usecases

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/internal/usecases/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// passthroughTransactor runs the function directly; the fakes below mutate
// in place so there is nothing to commit or roll back.
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, txFunc func(ctx context.Context) error) error {
	return txFunc(ctx)
}

// memoryStore is an in-memory stand-in for the Postgres repositories. It
// enforces the same uniqueness and conditional-update semantics the real
// store does, including the reference_id idempotency constraint.
type memoryStore struct {
	users        map[uuid.UUID]*entities.User
	orders       map[uuid.UUID]*entities.Order
	transactions []*entities.Transaction
	references   map[string]bool
	withdrawals  map[uuid.UUID]*entities.WithdrawalRequest
	bankAccounts map[uuid.UUID]*entities.BankAccount
	invitations  []*entities.Invitation
	proofs       []*entities.DepositProof
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:        make(map[uuid.UUID]*entities.User),
		orders:       make(map[uuid.UUID]*entities.Order),
		references:   make(map[string]bool),
		withdrawals:  make(map[uuid.UUID]*entities.WithdrawalRequest),
		bankAccounts: make(map[uuid.UUID]*entities.BankAccount),
	}
}

func (m *memoryStore) seedUser(balance decimal.Decimal) *entities.User {
	user := &entities.User{
		ID:           uuid.New(),
		Username:     "tester",
		Balance:      balance,
		Country:      "Mexico",
		Currency:     "MXN",
		ReferralCode: "REFTEST" + uuid.NewString()[:4],
	}
	m.users[user.ID] = user
	return user
}

func (m *memoryStore) seedOrder(userID uuid.UUID, number int, amount, status string) *entities.Order {
	order := &entities.Order{
		ID:          uuid.New(),
		UserID:      userID,
		OrderNumber: number,
		OrderType:   "standard",
		Amount:      decimal.RequireFromString(amount),
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	m.orders[order.ID] = order
	return order
}

// UsersRepository

func (m *memoryStore) FindUserByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryStore) FindUserByReferralCode(_ context.Context, code string) (*entities.User, error) {
	for _, user := range m.users {
		if user.ReferralCode == code {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memoryStore) InsertUser(_ context.Context, user *entities.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memoryStore) CreditBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	user, ok := m.users[id]
	if !ok {
		return decimal.Zero, repository.ErrUserNotFound
	}
	user.Balance = user.Balance.Add(delta)
	return user.Balance, nil
}

func (m *memoryStore) DebitBalance(_ context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	user, ok := m.users[id]
	if !ok {
		return decimal.Zero, repository.ErrUserNotFound
	}
	if user.Balance.LessThan(amount) {
		return decimal.Zero, repository.ErrInsufficientBalance
	}
	user.Balance = user.Balance.Sub(amount)
	return user.Balance, nil
}

// OrdersRepository

func (m *memoryStore) FindUserOrders(_ context.Context, userID uuid.UUID) ([]entities.Order, error) {
	var orders []entities.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *memoryStore) FindOrderByID(_ context.Context, id uuid.UUID) (*entities.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *memoryStore) InsertOrder(_ context.Context, order *entities.Order) error {
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *memoryStore) TouchPendingOrder(_ context.Context, id uuid.UUID) (bool, error) {
	order, ok := m.orders[id]
	if !ok || order.Status != entities.OrderStatusPending {
		return false, nil
	}
	order.UpdatedAt = time.Now()
	return true, nil
}

func (m *memoryStore) CompletePendingOrder(_ context.Context, id uuid.UUID) (bool, error) {
	order, ok := m.orders[id]
	if !ok || order.Status != entities.OrderStatusPending {
		return false, nil
	}
	order.Status = entities.OrderStatusCompleted
	order.UpdatedAt = time.Now()
	return true, nil
}

// TransactionsRepository

func (m *memoryStore) FindUserTransactions(_ context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]entities.Transaction, error) {
	var transactions []entities.Transaction
	for _, t := range m.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Year != 0 && t.CreatedAt.Year() != filter.Year {
			continue
		}
		if filter.Month != 0 && t.CreatedAt.Month() != filter.Month {
			continue
		}
		transactions = append(transactions, *t)
	}
	return transactions, nil
}

func (m *memoryStore) FindTransactionByID(_ context.Context, id uuid.UUID) (*entities.Transaction, error) {
	for _, t := range m.transactions {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrTransactionNotFound
}

func (m *memoryStore) InsertTransaction(_ context.Context, t *entities.Transaction) error {
	if m.references[t.ReferenceID] {
		return repository.ErrDuplicateReference
	}
	m.references[t.ReferenceID] = true
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	copied := *t
	m.transactions = append(m.transactions, &copied)
	return nil
}

func (m *memoryStore) UpdateTransactionStatus(_ context.Context, id uuid.UUID, status string) (bool, error) {
	for _, t := range m.transactions {
		if t.ID == id {
			if t.Status != entities.TransactionStatusPending {
				return false, nil
			}
			t.Status = status
			t.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

// WithdrawalsRepository

func (m *memoryStore) InsertWithdrawalRequest(_ context.Context, wr *entities.WithdrawalRequest) error {
	wr.ID = uuid.New()
	wr.CreatedAt = time.Now()
	wr.UpdatedAt = wr.CreatedAt
	copied := *wr
	m.withdrawals[wr.ID] = &copied
	return nil
}

func (m *memoryStore) FindUserWithdrawalRequests(_ context.Context, userID uuid.UUID) ([]entities.WithdrawalRequest, error) {
	var requests []entities.WithdrawalRequest
	for _, wr := range m.withdrawals {
		if wr.UserID == userID {
			requests = append(requests, *wr)
		}
	}
	return requests, nil
}

func (m *memoryStore) FindWithdrawalRequestByID(_ context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	wr, ok := m.withdrawals[id]
	if !ok {
		return nil, repository.ErrWithdrawalNotFound
	}
	copied := *wr
	return &copied, nil
}

func (m *memoryStore) ResolvePendingRequest(_ context.Context, id uuid.UUID, status string, adminNotes *string) (bool, error) {
	wr, ok := m.withdrawals[id]
	if !ok || wr.Status != entities.WithdrawalStatusPending {
		return false, nil
	}
	wr.Status = status
	wr.AdminNotes = adminNotes
	wr.UpdatedAt = time.Now()
	return true, nil
}

// BankAccountsRepository

func (m *memoryStore) FindUserBankAccounts(_ context.Context, userID uuid.UUID) ([]entities.BankAccount, error) {
	var accounts []entities.BankAccount
	for _, account := range m.bankAccounts {
		if account.UserID == userID {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (m *memoryStore) FindBankAccountByID(_ context.Context, id uuid.UUID) (*entities.BankAccount, error) {
	account, ok := m.bankAccounts[id]
	if !ok {
		return nil, repository.ErrBankAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *memoryStore) InsertBankAccount(_ context.Context, account *entities.BankAccount) error {
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	copied := *account
	m.bankAccounts[account.ID] = &copied
	return nil
}

// InvitationsRepository

func (m *memoryStore) InsertInvitation(_ context.Context, inv *entities.Invitation) error {
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now()
	copied := *inv
	m.invitations = append(m.invitations, &copied)
	return nil
}

// DepositProofsRepository

func (m *memoryStore) InsertDepositProof(_ context.Context, proof *entities.DepositProof) error {
	proof.ID = uuid.New()
	proof.CreatedAt = time.Now()
	copied := *proof
	m.proofs = append(m.proofs, &copied)
	return nil
}
