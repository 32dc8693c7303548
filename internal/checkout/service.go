package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartshoplabs/smartshop-backend/internal/cart"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
)

// OrderSummary is the receipt returned by a confirmed checkout.
type OrderSummary struct {
	OrderID   string          `json:"order_id"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	PlacedAt  time.Time       `json:"placed_at"`
}

// Service turns the current cart into an order. There is no payment
// integration; confirming records a summary and empties the cart.
type Service struct {
	cart *cart.Manager
	logg *logger.Logger
	now  func() time.Time
}

func NewService(manager *cart.Manager, logg *logger.Logger) *Service {
	return &Service{cart: manager, logg: logg, now: time.Now}
}

// Confirm places the order for the cart's current contents and clears
// the cart. An empty cart cannot be checked out.
func (s *Service) Confirm(ctx context.Context) (OrderSummary, error) {
	snap := s.cart.Snapshot()
	if snap.ItemCount == 0 {
		return OrderSummary{}, pkgerrors.New(pkgerrors.CodeConflict, "cart is empty")
	}

	summary := OrderSummary{
		OrderID:   uuid.NewString(),
		ItemCount: snap.ItemCount,
		Subtotal:  snap.Subtotal,
		PlacedAt:  s.now().UTC(),
	}

	if err := s.cart.Clear(ctx); err != nil {
		return OrderSummary{}, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":   summary.OrderID,
			"item_count": summary.ItemCount,
			"subtotal":   summary.Subtotal.String(),
		})
		s.logg.Info(logCtx, "checkout.confirmed")
	}
	return summary, nil
}
