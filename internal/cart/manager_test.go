package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/smartshoplabs/smartshop-backend/internal/catalog"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
)

// memStore is the in-memory test double for the persistence contract.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	sets   chan struct{}
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, sets: make(chan struct{}, 64)}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	payload, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return payload, nil
}

func (s *memStore) Set(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		select {
		case s.sets <- struct{}{}:
		default:
		}
	}()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = append([]byte(nil), payload...)
	return nil
}

func (s *memStore) payload(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

func waitForSet(t *testing.T, s *memStore) {
	t.Helper()
	select {
	case <-s.sets:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a write-through")
	}
}

func product(id string, price int64) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		Category: "Test",
		Price:    decimal.NewFromInt(price),
	}
}

func readyManager(t *testing.T, store Store, policy DuplicatePolicy) *Manager {
	t.Helper()
	m, err := NewManager(Options{Store: store, Key: "test:cart", Policy: policy})
	require.NoError(t, err)
	require.NoError(t, m.Rehydrate(context.Background()))
	return m
}

func TestAddIncrementsExistingLine(t *testing.T) {
	store := newMemStore()
	m := readyManager(t, store, DuplicateIncrement)
	ctx := context.Background()

	p := product("p1", 10)
	require.NoError(t, m.Add(ctx, p))
	require.NoError(t, m.Add(ctx, p))

	snap := m.Snapshot()
	require.Len(t, snap.Lines, 1)
	require.Equal(t, 2, snap.Lines[0].Quantity)
	require.Equal(t, 2, snap.ItemCount)
	require.True(t, snap.Subtotal.Equal(decimal.NewFromInt(20)), "subtotal %s", snap.Subtotal)
}

func TestAddKeepsOriginalProductSnapshot(t *testing.T) {
	store := newMemStore()
	m := readyManager(t, store, DuplicateIncrement)
	ctx := context.Background()

	first := product("p1", 10)
	require.NoError(t, m.Add(ctx, first))

	mutated := first
	mutated.Name = "Renamed"
	mutated.Price = decimal.NewFromInt(99)
	require.NoError(t, m.Add(ctx, mutated))

	snap := m.Snapshot()
	require.Equal(t, "Product p1", snap.Lines[0].Product.Name)
	require.True(t, snap.Lines[0].Product.Price.Equal(decimal.NewFromInt(10)))
	require.True(t, snap.Subtotal.Equal(decimal.NewFromInt(20)))
}

func TestAddValidation(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateIncrement)
	ctx := context.Background()

	err := m.Add(ctx, catalog.Product{ID: "   "})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	err = m.Add(ctx, catalog.Product{ID: "p1", Price: decimal.NewFromInt(-5)})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRejectPolicyRefusesDuplicates(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateReject)
	ctx := context.Background()

	p := product("p1", 10)
	require.NoError(t, m.Add(ctx, p))
	err := m.Add(ctx, p)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok, "expected string details, got %T", typed.Details())
	require.Equal(t, "p1", details["product_id"])

	snap := m.Snapshot()
	require.Equal(t, 1, snap.ItemCount)
}

func TestRemoveDecrementsThenDeletes(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateIncrement)
	ctx := context.Background()

	p := product("p1", 10)
	require.NoError(t, m.Add(ctx, p))
	require.NoError(t, m.Add(ctx, p))

	require.NoError(t, m.Remove(ctx, "p1"))
	require.Equal(t, 1, m.ItemCount())

	require.NoError(t, m.Remove(ctx, "p1"))
	require.Equal(t, 0, m.ItemCount())
	require.Empty(t, m.Lines())

	// Removing past empty stays a no-op; the count never goes negative.
	require.NoError(t, m.Remove(ctx, "p1"))
	require.Equal(t, 0, m.ItemCount())
}

func TestRemoveAbsentIsStructuralNoOp(t *testing.T) {
	store := newMemStore()
	m := readyManager(t, store, DuplicateIncrement)
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, product("p1", 10)))
	waitForSet(t, store)
	before := m.Snapshot()

	require.NoError(t, m.Remove(ctx, "ghost"))
	require.Equal(t, before, m.Snapshot())

	// An absent remove must not schedule another write-through.
	select {
	case <-store.sets:
		t.Fatal("unexpected persist for a no-op remove")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRemoveAllDeletesWholeLine(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateIncrement)
	ctx := context.Background()

	p := product("p1", 10)
	require.NoError(t, m.Add(ctx, p))
	require.NoError(t, m.Add(ctx, p))
	require.NoError(t, m.Add(ctx, product("p2", 5)))

	require.NoError(t, m.RemoveAll(ctx, "p1"))
	snap := m.Snapshot()
	require.Len(t, snap.Lines, 1)
	require.Equal(t, "p2", snap.Lines[0].Product.ID)
}

func TestAddThenRemoveAllRestoresPriorState(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateIncrement)
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, product("p1", 10)))
	before := m.Snapshot()

	require.NoError(t, m.Add(ctx, product("p2", 20)))
	require.NoError(t, m.RemoveAll(ctx, "p2"))
	require.Equal(t, before, m.Snapshot())
}

func TestClearEmptiesTheCart(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateIncrement)
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, product("p1", 10)))
	require.NoError(t, m.Add(ctx, product("p2", 20)))
	require.NoError(t, m.Clear(ctx))

	snap := m.Snapshot()
	require.Empty(t, snap.Lines)
	require.Equal(t, 0, snap.ItemCount)
	require.True(t, snap.Subtotal.IsZero())

	// Clearing an already-empty cart is fine.
	require.NoError(t, m.Clear(ctx))
}

func TestSubtotalTracksQuantityTimesPrice(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateIncrement)
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, product("p1", 499)))
	require.NoError(t, m.Add(ctx, product("p2", 129)))
	require.NoError(t, m.Add(ctx, product("p1", 499)))

	require.True(t, m.Subtotal().Equal(decimal.NewFromInt(1127)), "subtotal %s", m.Subtotal())
	require.Equal(t, 3, m.ItemCount())
}

func TestLoadingGateRejectsMutations(t *testing.T) {
	m, err := NewManager(Options{Store: newMemStore(), Key: "test:cart"})
	require.NoError(t, err)
	require.True(t, m.Loading())

	addErr := m.Add(context.Background(), product("p1", 10))
	typed := pkgerrors.As(addErr)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())

	require.NoError(t, m.Rehydrate(context.Background()))
	require.False(t, m.Loading())
	require.NoError(t, m.Add(context.Background(), product("p1", 10)))
}

func TestRehydrateRoundTrip(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	first := readyManager(t, store, DuplicateIncrement)
	require.NoError(t, first.Add(ctx, product("p1", 10)))
	require.NoError(t, first.Add(ctx, product("p1", 10)))
	require.NoError(t, first.Add(ctx, product("p2", 20)))
	require.NoError(t, first.Close(ctx))

	second := readyManager(t, store, DuplicateIncrement)
	require.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestRehydrateMissingBlobStartsEmpty(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateIncrement)
	require.Empty(t, m.Lines())
	require.False(t, m.Loading())
}

func TestRehydrateFailureStillOpensGate(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("backend down")

	m, err := NewManager(Options{Store: store, Key: "test:cart"})
	require.NoError(t, err)

	rehydrateErr := m.Rehydrate(context.Background())
	typed := pkgerrors.As(rehydrateErr)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeStorage, typed.Code())

	// The session continues on an empty in-memory cart.
	require.False(t, m.Loading())
	require.NoError(t, m.Add(context.Background(), product("p1", 10)))
}

func TestPersistFailureDoesNotAffectState(t *testing.T) {
	store := newMemStore()
	m := readyManager(t, store, DuplicateIncrement)
	store.setErr = errors.New("backend down")

	require.NoError(t, m.Add(context.Background(), product("p1", 10)))
	waitForSet(t, store)
	require.Equal(t, 1, m.ItemCount())
}

func TestSubscriberReceivesSnapshots(t *testing.T) {
	m := readyManager(t, newMemStore(), DuplicateIncrement)

	var mu sync.Mutex
	var seen []int
	m.Subscribe(func(snap Snapshot) {
		mu.Lock()
		seen = append(seen, snap.ItemCount)
		mu.Unlock()
	})

	ctx := context.Background()
	require.NoError(t, m.Add(ctx, product("p1", 10)))
	require.NoError(t, m.Add(ctx, product("p1", 10)))
	require.NoError(t, m.Clear(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{1, 2, 0}, seen)
}

func TestCloseFlushesFinalState(t *testing.T) {
	store := newMemStore()
	m := readyManager(t, store, DuplicateIncrement)
	ctx := context.Background()

	require.NoError(t, m.Add(ctx, product("p1", 10)))
	require.NoError(t, m.Close(ctx))

	lines, err := decodeLines(store.payload("test:cart"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "p1", lines[0].Product.ID)
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager(Options{Key: "test:cart"})
	require.Error(t, err)

	_, err = NewManager(Options{Store: newMemStore()})
	require.Error(t, err)

	_, err = NewManager(Options{Store: newMemStore(), Key: "test:cart", Policy: "merge"})
	require.Error(t, err)
}
