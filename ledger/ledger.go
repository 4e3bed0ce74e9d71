// Package ledger owns the equipment and party registries and the loan records
// that tie them together.
//
// All operations run under one mutex. A mutating operation works on a clone of
// the current state, persists the documents it touched, and only then swaps the
// clone in. A failed write therefore leaves memory and storage unchanged.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lab_loan_tool/models"

	"github.com/google/uuid"
)

// Store is the persistence adapter the ledger needs.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, s *models.Snapshot, docs ...models.Document) error
}

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Ledger struct {
	mu     sync.Mutex
	store  Store
	state  *models.Snapshot
	now    func() time.Time
	newID  func() string
	logger Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

func WithLogger(l Logger) Option {
	return func(led *Ledger) { led.logger = l }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(led *Ledger) { led.now = now }
}

// Open loads the current state from store.
func Open(ctx context.Context, store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %w", ErrPersistence, err)
	}
	l.state = snap
	l.logInfo("ledger loaded",
		"loans", len(snap.Loans),
		"requesters", len(snap.Requesters),
		"custodians", len(snap.Custodians),
	)
	return l, nil
}

// Snapshot returns a copy of the whole state.
func (l *Ledger) Snapshot() *models.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// txn is the working copy of one mutating operation.
type txn struct {
	*models.Snapshot
	now   time.Time
	dirty map[models.Document]bool
}

func (t *txn) touch(docs ...models.Document) {
	for _, d := range docs {
		t.dirty[d] = true
	}
}

func (t *txn) documents() []models.Document {
	var out []models.Document
	for _, d := range models.Documents {
		if t.dirty[d] {
			out = append(out, d)
		}
	}
	return out
}

// update runs fn on a working copy and commits it when fn succeeds.
func (l *Ledger) update(ctx context.Context, op string, fn func(t *txn) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := &txn{Snapshot: l.state.Clone(), now: l.now(), dirty: map[models.Document]bool{}}
	if err := fn(t); err != nil {
		l.logDebug("operation rejected", "op", op, "error", err)
		return err
	}
	docs := t.documents()
	if len(docs) == 0 {
		return nil
	}
	if err := l.store.Save(ctx, t.Snapshot, docs...); err != nil {
		l.logError("persist failed", "op", op, "error", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	l.state = t.Snapshot
	l.logInfo("committed", "op", op, "documents", docs)
	return nil
}

// view runs fn against the current state under the lock. fn must copy what it returns.
func (l *Ledger) view(fn func(s *models.Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.state)
}

func (l *Ledger) logDebug(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}

func (l *Ledger) logInfo(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Ledger) logError(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Error(msg, args...)
	}
}

// nextID is max(existing id) + 1.
func nextID[T any](xs []T, id func(T) int) int {
	top := 0
	for _, x := range xs {
		if v := id(x); v > top {
			top = v
		}
	}
	return top + 1
}
