package inventory

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemStore keeps products in a slice behind a single mutex.
//
// A critical section that panics leaves the store marked poisoned. The lock
// itself is always released; the next caller to acquire it logs the event,
// reports it through the recovery hook and carries on with the data as left.
type MemStore struct {
	mu       sync.Mutex
	products []Product
	poisoned bool

	newID     IDFunc
	log       *zap.Logger
	onRecover func()
}

type MemOption func(*MemStore)

// WithIDFunc replaces the random generator. f is only called with the store
// lock held, so it may keep unsynchronized state.
func WithIDFunc(f IDFunc) MemOption {
	return func(s *MemStore) { s.newID = f }
}

func WithProducts(ps []Product) MemOption {
	return func(s *MemStore) { s.products = append([]Product(nil), ps...) }
}

func WithLogger(l *zap.Logger) MemOption {
	return func(s *MemStore) { s.log = l }
}

// WithRecoveryHook registers f to run each time a poisoned lock is reclaimed.
func WithRecoveryHook(f func()) MemOption {
	return func(s *MemStore) { s.onRecover = f }
}

func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		products: []Product{},
		newID:    RandomID,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	var out []Product
	s.locked(func() {
		out = make([]Product, len(s.products))
		copy(out, s.products)
	})
	return out, nil
}

func (s *MemStore) Add(ctx context.Context, name string, price float64) (Product, error) {
	var p Product
	s.locked(func() {
		p = newProduct(s.newID, name, price)
		s.products = append(s.products, p)
	})
	return p, nil
}

func (s *MemStore) Len(ctx context.Context) (int, error) {
	var n int
	s.locked(func() { n = len(s.products) })
	return n, nil
}

func (s *MemStore) locked(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		s.poisoned = false
		s.log.Warn("recovered product store lock after aborted critical section",
			zap.Int("products", len(s.products)))
		if s.onRecover != nil {
			s.onRecover()
		}
	}

	done := false
	defer func() {
		if !done {
			s.poisoned = true
		}
	}()

	fn()
	done = true
}
