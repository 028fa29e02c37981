package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/finledger/commission-app/backend/internal/core/ports"
	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/internal/usecases"
	"github.com/finledger/commission-app/backend/internal/usecases/repository"
)

var (
	_ ports.OrderService        = (*usecases.OrderService)(nil)
	_ ports.SettlementService   = (*usecases.SettlementService)(nil)
	_ ports.WithdrawalService   = (*usecases.WithdrawalService)(nil)
	_ ports.DepositService      = (*usecases.DepositService)(nil)
	_ ports.TransactionService  = (*usecases.TransactionService)(nil)
	_ ports.RegistrationService = (*usecases.RegistrationService)(nil)
	_ ports.UserService         = (*usecases.AccountService)(nil)
	_ ports.BankAccountService  = (*usecases.AccountService)(nil)
)

type HTTPHandler struct {
	logger              *slog.Logger
	registrationService ports.RegistrationService
	userService         ports.UserService
	orderService        ports.OrderService
	settlementService   ports.SettlementService
	withdrawalService   ports.WithdrawalService
	depositService      ports.DepositService
	transactionService  ports.TransactionService
	bankAccountService  ports.BankAccountService
}

func NewHTTPHandler(
	logger *slog.Logger,
	registrationService ports.RegistrationService,
	userService ports.UserService,
	orderService ports.OrderService,
	settlementService ports.SettlementService,
	withdrawalService ports.WithdrawalService,
	depositService ports.DepositService,
	transactionService ports.TransactionService,
	bankAccountService ports.BankAccountService,
) *HTTPHandler {
	return &HTTPHandler{
		logger:              logger,
		registrationService: registrationService,
		userService:         userService,
		orderService:        orderService,
		settlementService:   settlementService,
		withdrawalService:   withdrawalService,
		depositService:      depositService,
		transactionService:  transactionService,
		bankAccountService:  bankAccountService,
	}
}

func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	// API endpoints.

	// Registration, users
	router.HandleFunc("/register", h.Register).Methods("POST")
	router.HandleFunc("/users/{userId}", h.GetUser).Methods("GET")

	// Orders
	router.HandleFunc("/orders/user", h.GetUserOrders).Methods("GET")
	router.HandleFunc("/orders", h.AssignOrder).Methods("POST")
	router.HandleFunc("/orders/next", h.GetSequencerView).Methods("GET")
	router.HandleFunc("/orders/{orderId}/activate", h.ActivateOrder).Methods("POST")
	router.HandleFunc("/orders/{orderId}/settle", h.SettleOrder).Methods("POST")

	// Withdrawals
	router.HandleFunc("/withdrawals/eligibility", h.GetWithdrawalEligibility).Methods("GET")
	router.HandleFunc("/withdrawals/user", h.GetUserWithdrawals).Methods("GET")
	router.HandleFunc("/withdrawals", h.RequestWithdrawal).Methods("POST")
	router.HandleFunc("/withdrawals/{requestId}/approve", h.ApproveWithdrawal).Methods("POST")
	router.HandleFunc("/withdrawals/{requestId}/reject", h.RejectWithdrawal).Methods("POST")

	// Deposits
	router.HandleFunc("/deposits", h.SubmitDeposit).Methods("POST")
	router.HandleFunc("/deposits/{transactionId}/confirm", h.ConfirmDeposit).Methods("POST")

	// Transactions, stats
	router.HandleFunc("/transactions/user", h.GetUserTransactions).Methods("GET")
	router.HandleFunc("/stats/user", h.GetUserStats).Methods("GET")

	// Bank accounts
	router.HandleFunc("/banks/accounts", h.GetUserBankAccounts).Methods("GET")
	router.HandleFunc("/banks/accounts", h.AddBankAccount).Methods("POST")
}

func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usecases.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.registrationService.Register(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, user)
}

func (h *HTTPHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUUID(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

func (h *HTTPHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	orders, err := h.orderService.GetUserOrders(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

func (h *HTTPHandler) AssignOrder(w http.ResponseWriter, r *http.Request) {
	var order entities.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orderService.AssignOrder(r.Context(), &order); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, order)
}

func (h *HTTPHandler) GetSequencerView(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	view, err := h.orderService.SequencerView(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *HTTPHandler) ActivateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathUUID(w, r, "orderId")
	if !ok {
		return
	}
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	if err := h.orderService.Activate(r.Context(), userID, orderID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

func (h *HTTPHandler) SettleOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathUUID(w, r, "orderId")
	if !ok {
		return
	}
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	result, err := h.settlementService.Settle(r.Context(), userID, orderID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) GetWithdrawalEligibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	eligibility, err := h.withdrawalService.Eligibility(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, eligibility)
}

func (h *HTTPHandler) GetUserWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	requests, err := h.withdrawalService.GetUserWithdrawalRequests(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, requests)
}

func (h *HTTPHandler) RequestWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req usecases.WithdrawalSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.withdrawalService.RequestWithdrawal(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, request)
}

// adminResolution carries the optional note an administrator attaches when
// approving or rejecting a withdrawal.
type adminResolution struct {
	AdminNotes string `json:"admin_notes"`
}

func (h *HTTPHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.resolveWithdrawal(w, r, h.withdrawalService.Approve, "approved")
}

func (h *HTTPHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.resolveWithdrawal(w, r, h.withdrawalService.Reject, "rejected")
}

func (h *HTTPHandler) resolveWithdrawal(
	w http.ResponseWriter,
	r *http.Request,
	resolve func(ctx context.Context, requestID uuid.UUID, adminNotes string) error,
	status string,
) {
	requestID, ok := h.pathUUID(w, r, "requestId")
	if !ok {
		return
	}

	var body adminResolution
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	if err := resolve(r.Context(), requestID, body.AdminNotes); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *HTTPHandler) SubmitDeposit(w http.ResponseWriter, r *http.Request) {
	var req usecases.DepositSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	transaction, err := h.depositService.SubmitDeposit(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, transaction)
}

func (h *HTTPHandler) ConfirmDeposit(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := h.pathUUID(w, r, "transactionId")
	if !ok {
		return
	}

	if err := h.depositService.ConfirmDeposit(r.Context(), transactionID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

func (h *HTTPHandler) GetUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	filter, err := transactionFilterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, err := h.transactionService.GetUserTransactions(r.Context(), userID, filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, transactions)
}

func (h *HTTPHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.transactionService.AccountStats(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	todaysIncome, err := h.transactionService.TodaysIncome(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"stats":         stats,
		"todays_income": todaysIncome,
	})
}

func (h *HTTPHandler) GetUserBankAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryUserID(w, r)
	if !ok {
		return
	}

	accounts, err := h.bankAccountService.GetUserBankAccounts(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, accounts)
}

func (h *HTTPHandler) AddBankAccount(w http.ResponseWriter, r *http.Request) {
	var account entities.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.bankAccountService.AddBankAccount(r.Context(), &account); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, account)
}

func transactionFilterFromQuery(r *http.Request) (entities.TransactionFilter, error) {
	filter := entities.TransactionFilter{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}

	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			return filter, errors.New("invalid year parameter")
		}
		filter.Year = year
	}

	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		month, err := strconv.Atoi(monthParam)
		if err != nil || month < 1 || month > 12 {
			return filter, errors.New("invalid month parameter")
		}
		filter.Month = time.Month(month)
	}

	return filter, nil
}

func (h *HTTPHandler) queryUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userIDParam := r.URL.Query().Get("user_id")
	if userIDParam == "" {
		http.Error(w, "Missing required parameters: user_id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDParam)
	if err != nil {
		http.Error(w, "Invalid user ID format", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return userID, true
}

func (h *HTTPHandler) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		http.Error(w, "Invalid ID format", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// writeServiceError maps service errors onto HTTP statuses: validation
// failures are 400, precondition and idempotency conflicts are 409, missing
// rows are 404 and everything else is a generic 500.
func (h *HTTPHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecases.ErrUsernameRequired),
		errors.Is(err, usecases.ErrInvitationRequired),
		errors.Is(err, usecases.ErrInvalidInvitation),
		errors.Is(err, usecases.ErrInvalidAmount),
		errors.Is(err, usecases.ErrAmountBelowMinimum),
		errors.Is(err, usecases.ErrAmountExceedsBalance),
		errors.Is(err, usecases.ErrMissingBankDetails),
		errors.Is(err, repository.ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, usecases.ErrOrderNotEligible),
		errors.Is(err, usecases.ErrOrderNotPending),
		errors.Is(err, usecases.ErrAlreadySettled),
		errors.Is(err, usecases.ErrWithdrawalLocked),
		errors.Is(err, usecases.ErrWithdrawalResolved),
		errors.Is(err, usecases.ErrTransactionResolved),
		errors.Is(err, repository.ErrDuplicateUsername),
		errors.Is(err, repository.ErrDuplicateReference):
		http.Error(w, err.Error(), http.StatusConflict)

	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrWithdrawalNotFound),
		errors.Is(err, repository.ErrBankAccountNotFound),
		errors.Is(err, repository.ErrTransactionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)

	default:
		h.logger.Error("Unhandled service error", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
