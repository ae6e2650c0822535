// Package ledger applies every balance-affecting operation of the shop:
// sales, purchases, expenses and debt payments, plus the product, customer and
// supplier records they refer to.
package ledger

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
	"go.uber.org/zap"
)

// Recorder observes the outcome of each ledger operation.
type Recorder interface {
	ObserveOperation(op string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, error) {}

type Engine struct {
	store    *store.Store
	ids      func() string
	now      func() time.Time
	validate *validator.Validate
	recorder Recorder
	logger   *zap.Logger
}

type Option func(*Engine)

func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.ids = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		ids:      func() string { return uuid.Must(uuid.NewV7()).String() },
		now:      time.Now,
		validate: newValidator(),
		recorder: nopRecorder{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today is the current local date in canonical form.
func (e *Engine) Today() string {
	return shop.FormatDate(e.now())
}

// mutate runs fn against a fresh copy of the store and commits the
// collections it reports as changed. The store's write lock covers the whole
// cycle, so restores and other writers cannot land in between. Nothing is
// written when fn fails.
func (e *Engine) mutate(ctx context.Context, op string, fn func(st *store.State) ([]store.Collection, error)) error {
	err := e.store.Update(ctx, fn)
	e.recorder.ObserveOperation(op, err)
	if err != nil {
		e.logger.Debug("operation rejected", zap.String("op", op), zap.Error(err))
	}
	return err
}

func (e *Engine) view(ctx context.Context) (*store.State, error) {
	return e.store.State(ctx)
}

func removeAt[T any](s []T, i int) []T {
	return append(s[:i:i], s[i+1:]...)
}
