package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smartshoplabs/smartshop-backend/internal/cart"
	"github.com/smartshoplabs/smartshop-backend/internal/catalog"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
)

type nopStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *nopStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.data[key]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return payload, nil
}

func (s *nopStore) Set(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = map[string][]byte{}
	}
	s.data[key] = payload
	return nil
}

func cartFixture(t *testing.T) *cart.Manager {
	t.Helper()
	m, err := cart.NewManager(cart.Options{Store: &nopStore{}, Key: "test:cart"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Rehydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestConfirmEmptyCartFails(t *testing.T) {
	svc := NewService(cartFixture(t), nil)

	_, err := svc.Confirm(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestConfirmClearsCartAndReportsTotals(t *testing.T) {
	m := cartFixture(t)
	ctx := context.Background()

	p := catalog.Product{ID: "p1", Name: "Wallet", Price: decimal.NewFromInt(499)}
	if err := m.Add(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Add(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := NewService(m, nil)
	summary, err := svc.Confirm(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.OrderID == "" {
		t.Fatal("expected an order id")
	}
	if summary.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", summary.ItemCount)
	}
	if !summary.Subtotal.Equal(decimal.NewFromInt(998)) {
		t.Fatalf("unexpected subtotal %s", summary.Subtotal)
	}
	if m.ItemCount() != 0 {
		t.Fatalf("expected cart to be cleared, got %d items", m.ItemCount())
	}

	// A second confirm sees the now-empty cart.
	if _, err := svc.Confirm(ctx); err == nil {
		t.Fatal("expected second confirm to fail")
	}
}
