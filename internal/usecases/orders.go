package usecases

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finledger/commission-app/backend/internal/entities"
)

type OrdersRepository interface {
	FindUserOrders(ctx context.Context, userID uuid.UUID) ([]entities.Order, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	InsertOrder(ctx context.Context, order *entities.Order) error
	TouchPendingOrder(ctx context.Context, id uuid.UUID) (bool, error)
	CompletePendingOrder(ctx context.Context, id uuid.UUID) (bool, error)
}

// SequencerView is the order list as rendered: which order may be activated
// next and which one is currently in progress.
type SequencerView struct {
	Orders          []entities.Order `json:"orders"`
	NextEligible    *entities.Order  `json:"next_eligible"`
	ActiveOrder     *entities.Order  `json:"active_order"`
	CompletedOrders int              `json:"completed_orders"`
	TotalOrders     int              `json:"total_orders"`
}

type OrderService struct {
	logger *slog.Logger
	repo   OrdersRepository
}

func NewOrderService(logger *slog.Logger, repo OrdersRepository) *OrderService {
	return &OrderService{logger: logger, repo: repo}
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entities.Order, error) {
	return s.repo.FindUserOrders(ctx, userID)
}

func (s *OrderService) SequencerView(ctx context.Context, userID uuid.UUID) (*SequencerView, error) {
	orders, err := s.repo.FindUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, total := OrderProgress(orders)

	return &SequencerView{
		Orders:          orders,
		NextEligible:    NextEligibleOrder(orders),
		ActiveOrder:     ActiveOrder(orders, time.Now()),
		CompletedOrders: completed,
		TotalOrders:     total,
	}, nil
}

// AssignOrder appends an order to the end of a user's sequence. Orders are
// provisioned administratively; users only work through what was assigned.
func (s *OrderService) AssignOrder(ctx context.Context, order *entities.Order) error {
	if !order.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	orders, err := s.repo.FindUserOrders(ctx, order.UserID)
	if err != nil {
		return err
	}

	order.OrderNumber = len(orders) + 1
	order.Status = entities.OrderStatusPending

	if err = s.repo.InsertOrder(ctx, order); err != nil {
		return err
	}

	s.logger.Info("Order assigned",
		"user_id", order.UserID, "order_id", order.ID, "order_number", order.OrderNumber)

	return nil
}

// Activate flips the next eligible order into the in-progress state. The
// order must be the sequencer's current pick; stale clients and concurrent
// activations get ErrOrderNotEligible instead of a silently-succeeding write.
func (s *OrderService) Activate(ctx context.Context, userID, orderID uuid.UUID) error {
	orders, err := s.repo.FindUserOrders(ctx, userID)
	if err != nil {
		return err
	}

	next := NextEligibleOrder(orders)
	if next == nil || next.ID != orderID {
		return ErrOrderNotEligible
	}

	touched, err := s.repo.TouchPendingOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !touched {
		// Completed or cancelled between the eligibility check and the write.
		return ErrOrderNotEligible
	}

	s.logger.Info("Order activated", "user_id", userID, "order_id", orderID, "order_number", next.OrderNumber)

	return nil
}
