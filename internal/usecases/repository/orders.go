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

type OrdersRepository struct {
	logger *slog.Logger

	db         tx.DBGetter
	transactor *tx.Transactor
}

func NewOrdersRepository(logger *slog.Logger, pg *database.Postgres) *OrdersRepository {
	return &OrdersRepository{logger: logger, db: pg.DBGetter, transactor: pg.Transactor}
}

const orderColumns = `id, user_id, order_number, order_type, amount, commission, status, created_at, updated_at`

// FindUserOrders returns all of a user's orders sorted by sequence position.
func (r *OrdersRepository) FindUserOrders(ctx context.Context, userID uuid.UUID) ([]entities.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_number`

	rows, err := r.db(ctx).Query(ctx, query, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Order])
	if err != nil {
		r.logger.Error("failed to collect orders rows", "error", err)
		return nil, err
	}

	return orders, nil
}

func (r *OrdersRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	rows, err := r.db(ctx).Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	order, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.Order])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to collect order row: %w", err)
	}

	return &order, nil
}

// InsertOrder seeds an order at a sequence position. Used by account
// provisioning; the activation and settlement workflows never create orders.
func (r *OrdersRepository) InsertOrder(ctx context.Context, order *entities.Order) error {
	query := `INSERT INTO orders (user_id, order_number, order_type, amount, commission, status)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, created_at, updated_at`

	err := r.db(ctx).QueryRow(ctx, query,
		order.UserID, order.OrderNumber, order.OrderType, order.Amount, order.Commission, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// TouchPendingOrder refreshes updated_at on a still-pending order, marking it
// as the activated in-progress order. Reports whether a row was updated.
func (r *OrdersRepository) TouchPendingOrder(ctx context.Context, id uuid.UUID) (bool, error) {
	ct, err := r.db(ctx).Exec(ctx,
		`UPDATE orders SET updated_at = NOW() WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, fmt.Errorf("failed to touch order: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}

// CompletePendingOrder flips a pending order to completed. Reports whether
// the transition happened; false means the order was not pending anymore.
func (r *OrdersRepository) CompletePendingOrder(ctx context.Context, id uuid.UUID) (bool, error) {
	ct, err := r.db(ctx).Exec(ctx,
		`UPDATE orders SET status = 'completed', updated_at = NOW() WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, fmt.Errorf("failed to complete order: %w", err)
	}

	return ct.RowsAffected() > 0, nil
}
