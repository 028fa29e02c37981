package usecases

import (
	"slices"
	"time"

	"github.com/finledger/commission-app/backend/internal/entities"
)

// ActiveOrderFreshness is how long an activated order counts as the
// "in progress" order for display purposes.
const ActiveOrderFreshness = 5 * time.Minute

// sortedByNumber returns a copy of the orders sorted by sequence position.
func sortedByNumber(orders []entities.Order) []entities.Order {
	sorted := slices.Clone(orders)
	slices.SortFunc(sorted, func(a, b entities.Order) int {
		return a.OrderNumber - b.OrderNumber
	})
	return sorted
}

// NextEligibleOrder returns the single order eligible for activation: the
// first pending order whose strictly-earlier orders are all completed. A
// cancelled order freezes the sequence past it; nothing after it is ever
// eligible. Returns nil when no order qualifies.
func NextEligibleOrder(orders []entities.Order) *entities.Order {
	sorted := sortedByNumber(orders)

	for i := range sorted {
		if sorted[i].Status != entities.OrderStatusPending {
			continue
		}

		allPreviousCompleted := true
		for j := range i {
			if sorted[j].Status != entities.OrderStatusCompleted {
				allPreviousCompleted = false
				break
			}
		}

		if allPreviousCompleted {
			return &sorted[i]
		}
	}

	return nil
}

// ActiveOrder returns the order currently shown as in progress: the next
// eligible order, but only if it was activated recently or is the very first
// in the sequence. This recency rule governs the display view only, not
// eligibility for transition.
func ActiveOrder(orders []entities.Order, now time.Time) *entities.Order {
	candidate := NextEligibleOrder(orders)
	if candidate == nil {
		return nil
	}

	if now.Sub(candidate.UpdatedAt) <= ActiveOrderFreshness || candidate.OrderNumber == 1 {
		return candidate
	}

	return nil
}

// OrderProgress counts completed orders against the total.
func OrderProgress(orders []entities.Order) (completed, total int) {
	for _, order := range orders {
		if order.Status == entities.OrderStatusCompleted {
			completed++
		}
	}
	return completed, len(orders)
}
