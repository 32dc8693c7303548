package cart

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/smartshoplabs/smartshop-backend/internal/catalog"
	pkgerrors "github.com/smartshoplabs/smartshop-backend/pkg/errors"
	"github.com/smartshoplabs/smartshop-backend/pkg/logger"
	"github.com/smartshoplabs/smartshop-backend/pkg/metrics"
)

// DuplicatePolicy decides what a repeated add of the same product does.
type DuplicatePolicy string

const (
	// DuplicateIncrement bumps the stored quantity by one. Primary contract.
	DuplicateIncrement DuplicatePolicy = "increment"
	// DuplicateReject refuses the add and keeps the quantity at 1.
	DuplicateReject DuplicatePolicy = "reject"
)

const defaultPersistTimeout = 5 * time.Second

// Line is one cart entry: a product snapshot plus its quantity.
// The snapshot is decoupled from the catalog, so later catalog changes
// do not affect lines already in the cart.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Snapshot is an immutable view of the cart handed to subscribers and
// the transport layer.
type Snapshot struct {
	Lines     []Line          `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Subscriber receives a snapshot after every applied mutation.
type Subscriber func(Snapshot)

// Options wires the manager's collaborators.
type Options struct {
	Store          Store
	Key            string
	Policy         DuplicatePolicy
	PersistTimeout time.Duration
	Logger         *logger.Logger
	Metrics        *metrics.CartMetrics
}

// Manager owns the session cart: a mapping from product id to line,
// mutated only through its methods, persisted whole after every
// mutation. The original screens relied on the UI event loop to
// serialize access; behind an HTTP surface a mutex takes that role.
type Manager struct {
	mu      sync.Mutex
	lines   map[string]*Line
	order   []string
	ready   bool
	seq     uint64
	subs    []Subscriber
	pending sync.WaitGroup

	// persistMu serializes blob writes; written tracks the newest
	// sequence flushed so a slow goroutine cannot clobber fresher state.
	persistMu sync.Mutex
	written   uint64

	store          Store
	key            string
	policy         DuplicatePolicy
	persistTimeout time.Duration
	logg           *logger.Logger
	metrics        *metrics.CartMetrics
}

// NewManager builds an empty, not-yet-rehydrated cart manager.
func NewManager(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store required")
	}
	if strings.TrimSpace(opts.Key) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart storage key required")
	}
	policy := opts.Policy
	if policy == "" {
		policy = DuplicateIncrement
	}
	if policy != DuplicateIncrement && policy != DuplicateReject {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "unknown duplicate policy")
	}
	timeout := opts.PersistTimeout
	if timeout <= 0 {
		timeout = defaultPersistTimeout
	}
	return &Manager{
		lines:          map[string]*Line{},
		store:          opts.Store,
		key:            opts.Key,
		policy:         policy,
		persistTimeout: timeout,
		logg:           opts.Logger,
		metrics:        opts.Metrics,
	}, nil
}

// Rehydrate loads the persisted cart before first use. A missing blob
// starts an empty session; a storage failure also opens the gate, since
// the in-memory cart is authoritative for the running session.
func (m *Manager) Rehydrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ready {
		return nil
	}
	m.ready = true

	payload, err := m.store.Get(ctx, m.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load cart")
	}

	lines, err := decodeLines(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode cart blob")
	}
	for i := range lines {
		line := lines[i]
		m.lines[line.Product.ID] = &line
		m.order = append(m.order, line.Product.ID)
	}
	return nil
}

// Loading reports whether the initial rehydration is still outstanding.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.ready
}

// Subscribe registers a change listener. Subscribers are invoked after
// each applied mutation, in no guaranteed order.
func (m *Manager) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Add inserts the product with quantity 1, or bumps the quantity of an
// existing line while keeping the original snapshot untouched. Under
// the reject policy a repeated add returns a conflict instead.
func (m *Manager) Add(ctx context.Context, product catalog.Product) error {
	if strings.TrimSpace(product.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if product.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price must be non-negative")
	}

	m.mu.Lock()
	if err := m.gateLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	if line, ok := m.lines[product.ID]; ok {
		if m.policy == DuplicateReject {
			m.mu.Unlock()
			return pkgerrors.New(pkgerrors.CodeConflict, "product is already in the cart").
				WithDetails(map[string]string{"product_id": product.ID})
		}
		line.Quantity++
	} else {
		m.lines[product.ID] = &Line{Product: product, Quantity: 1}
		m.order = append(m.order, product.ID)
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.afterMutation(ctx, "add", snap)
	return nil
}

// Remove decrements the line's quantity, deleting it when the quantity
// reaches zero. Removing an absent id is a no-op.
func (m *Manager) Remove(ctx context.Context, productID string) error {
	m.mu.Lock()
	if err := m.gateLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	line, ok := m.lines[productID]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	if line.Quantity > 1 {
		line.Quantity--
	} else {
		m.deleteLocked(productID)
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.afterMutation(ctx, "remove", snap)
	return nil
}

// RemoveAll deletes the whole line regardless of quantity.
func (m *Manager) RemoveAll(ctx context.Context, productID string) error {
	m.mu.Lock()
	if err := m.gateLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	if _, ok := m.lines[productID]; !ok {
		m.mu.Unlock()
		return nil
	}
	m.deleteLocked(productID)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.afterMutation(ctx, "remove_all", snap)
	return nil
}

// Clear empties the cart. Used by checkout confirmation and the
// explicit clear-cart action.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	if err := m.gateLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.lines = map[string]*Line{}
	m.order = nil
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.afterMutation(ctx, "clear", snap)
	return nil
}

// ItemCount sums the quantities across all lines.
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.itemCountLocked()
}

// Subtotal sums quantity times snapshot price across all lines.
func (m *Manager) Subtotal() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subtotalLocked()
}

// Lines returns the cart lines in first-add order.
func (m *Manager) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.linesLocked()
}

// Snapshot returns a consistent view of lines, count and subtotal.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Close waits for in-flight write-throughs, flushes the final state
// synchronously and closes the store when it owns a connection.
func (m *Manager) Close(ctx context.Context) error {
	m.pending.Wait()

	var err error
	m.mu.Lock()
	snap := m.snapshotLocked()
	ready := m.ready
	m.mu.Unlock()

	if ready {
		err = multierr.Append(err, m.persist(ctx, snap))
	}
	if closer, ok := m.store.(io.Closer); ok {
		err = multierr.Append(err, closer.Close())
	}
	return err
}

func (m *Manager) gateLocked() error {
	if !m.ready {
		return pkgerrors.New(pkgerrors.CodeConflict, "cart is still loading")
	}
	return nil
}

func (m *Manager) deleteLocked(productID string) {
	delete(m.lines, productID)
	for i, id := range m.order {
		if id == productID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Manager) itemCountLocked() int {
	total := 0
	for _, line := range m.lines {
		total += line.Quantity
	}
	return total
}

func (m *Manager) subtotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, line := range m.lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func (m *Manager) linesLocked() []Line {
	out := make([]Line, 0, len(m.order))
	for _, id := range m.order {
		if line, ok := m.lines[id]; ok {
			out = append(out, *line)
		}
	}
	return out
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		Lines:     m.linesLocked(),
		ItemCount: m.itemCountLocked(),
		Subtotal:  m.subtotalLocked(),
	}
}

// afterMutation runs outside the state lock: it counts the mutation,
// notifies subscribers and schedules the best-effort write-through.
func (m *Manager) afterMutation(ctx context.Context, op string, snap Snapshot) {
	m.metrics.IncMutation(op)

	m.mu.Lock()
	m.seq++
	seq := m.seq
	subs := make([]Subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}

	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.persistTimeout)
		defer cancel()
		if err := m.persistSeq(persistCtx, seq, snap); err != nil {
			m.metrics.IncPersistFailure()
			if m.logg != nil {
				logCtx := m.logg.WithFields(persistCtx, map[string]any{"cart_key": m.key, "op": op})
				m.logg.Error(logCtx, "cart.persist.failed", err)
			}
		}
	}()
}

func (m *Manager) persistSeq(ctx context.Context, seq uint64, snap Snapshot) error {
	m.persistMu.Lock()
	defer m.persistMu.Unlock()

	if seq <= m.written {
		return nil
	}
	if err := m.persist(ctx, snap); err != nil {
		return err
	}
	m.written = seq
	return nil
}

func (m *Manager) persist(ctx context.Context, snap Snapshot) error {
	payload, err := encodeLines(snap.Lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode cart blob")
	}
	start := time.Now()
	err = m.store.Set(ctx, m.key, payload)
	m.metrics.ObservePersistDuration(time.Since(start))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write cart blob")
	}
	return nil
}
