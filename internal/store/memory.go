package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-ledger-service/internal/models"
	"github.com/cypherlabdev/bet-ledger-service/pkg/trigram"
)

// MemoryStore implements Store with in-memory state. Used for testing and
// development. Units of work are serialized by a single mutex and rolled
// back via snapshot on error, so the atomicity contract holds.
type MemoryStore struct {
	mu         sync.Mutex
	bankrolls  map[uuid.UUID]*models.Bankroll
	operations []*models.Operation
	legs       []*models.Leg
	events     []*models.Event
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bankrolls: make(map[uuid.UUID]*models.Bankroll),
	}
}

type memorySnapshot struct {
	bankrolls  map[uuid.UUID]*models.Bankroll
	operations []*models.Operation
	legs       []*models.Leg
	events     []*models.Event
}

func (s *MemoryStore) snapshot() memorySnapshot {
	snap := memorySnapshot{
		bankrolls:  make(map[uuid.UUID]*models.Bankroll, len(s.bankrolls)),
		operations: make([]*models.Operation, 0, len(s.operations)),
		legs:       make([]*models.Leg, 0, len(s.legs)),
		events:     make([]*models.Event, 0, len(s.events)),
	}
	for id, b := range s.bankrolls {
		snap.bankrolls[id] = copyBankroll(b)
	}
	for _, op := range s.operations {
		snap.operations = append(snap.operations, copyOperation(op))
	}
	for _, leg := range s.legs {
		snap.legs = append(snap.legs, copyLeg(leg))
	}
	for _, ev := range s.events {
		snap.events = append(snap.events, copyEvent(ev))
	}
	return snap
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.bankrolls = snap.bankrolls
	s.operations = snap.operations
	s.legs = snap.legs
	s.events = snap.events
}

// WithinTx runs fn under the store mutex; on error the pre-transaction
// snapshot is restored, discarding every write fn made.
func (s *MemoryStore) WithinTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&memoryTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *MemoryStore) InsertBankroll(_ context.Context, b *models.Bankroll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bankrolls {
		if existing.UserID == b.UserID && existing.BookmakerName == b.BookmakerName {
			return ErrDuplicate
		}
	}
	s.bankrolls[b.ID] = copyBankroll(b)
	return nil
}

func (s *MemoryStore) ListBankrolls(_ context.Context, userID uuid.UUID) ([]models.Bankroll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Bankroll
	for _, b := range s.bankrolls {
		if b.UserID == userID {
			out = append(out, *copyBankroll(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookmakerName < out[j].BookmakerName })
	return out, nil
}

func (s *MemoryStore) ListOperations(_ context.Context, userID uuid.UUID) ([]models.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Operation
	// Newest first: reverse insertion order.
	for i := len(s.operations) - 1; i >= 0; i-- {
		op := s.operations[i]
		if op.UserID != userID {
			continue
		}
		c := copyOperation(op)
		for _, leg := range s.legs {
			if leg.OperationID == op.ID {
				c.Legs = append(c.Legs, *copyLeg(leg))
			}
		}
		out = append(out, *c)
	}
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// memoryTx mutates the store directly; WithinTx holds the lock and owns
// rollback.
type memoryTx struct {
	s *MemoryStore
}

func (t *memoryTx) BankrollsForUpdate(_ context.Context, userID uuid.UUID, ids []uuid.UUID) ([]models.Bankroll, error) {
	var out []models.Bankroll
	for _, id := range ids {
		b, ok := t.s.bankrolls[id]
		if !ok || b.UserID != userID {
			continue
		}
		out = append(out, *copyBankroll(b))
	}
	return out, nil
}

func (t *memoryTx) AdjustBankrollBalance(_ context.Context, bankrollID uuid.UUID, delta decimal.Decimal) error {
	b, ok := t.s.bankrolls[bankrollID]
	if !ok {
		return ErrNotFound
	}
	b.CurrentBalance = b.CurrentBalance.Add(delta)
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (t *memoryTx) OperationWithLegs(_ context.Context, userID, operationID uuid.UUID) (*models.Operation, error) {
	for _, op := range t.s.operations {
		if op.ID != operationID {
			continue
		}
		if op.UserID != userID {
			return nil, ErrNotFound
		}
		c := copyOperation(op)
		for _, leg := range t.s.legs {
			if leg.OperationID == operationID {
				c.Legs = append(c.Legs, *copyLeg(leg))
			}
		}
		return c, nil
	}
	return nil, ErrNotFound
}

func (t *memoryTx) InsertOperation(_ context.Context, op *models.Operation) error {
	t.s.operations = append(t.s.operations, copyOperation(op))
	return nil
}

func (t *memoryTx) UpdateOperationTotals(_ context.Context, op *models.Operation) error {
	for i, existing := range t.s.operations {
		if existing.ID == op.ID {
			c := copyOperation(op)
			c.UpdatedAt = time.Now().UTC()
			t.s.operations[i] = c
			return nil
		}
	}
	return ErrNotFound
}

func (t *memoryTx) DeleteOperation(_ context.Context, operationID uuid.UUID) error {
	for i, op := range t.s.operations {
		if op.ID == operationID {
			t.s.operations = append(t.s.operations[:i], t.s.operations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (t *memoryTx) InsertLeg(_ context.Context, leg *models.Leg) error {
	t.s.legs = append(t.s.legs, copyLeg(leg))
	return nil
}

func (t *memoryTx) LegByID(_ context.Context, userID, legID uuid.UUID) (*models.Leg, error) {
	for _, leg := range t.s.legs {
		if leg.ID != legID {
			continue
		}
		for _, op := range t.s.operations {
			if op.ID == leg.OperationID && op.UserID == userID {
				return copyLeg(leg), nil
			}
		}
		return nil, ErrNotFound
	}
	return nil, ErrNotFound
}

func (t *memoryTx) UpdateLeg(_ context.Context, leg *models.Leg) error {
	for i, existing := range t.s.legs {
		if existing.ID == leg.ID {
			t.s.legs[i] = copyLeg(leg)
			return nil
		}
	}
	return ErrNotFound
}

func (t *memoryTx) UpdateLegResult(_ context.Context, legID uuid.UUID, status models.BetStatus, resultValue decimal.Decimal) error {
	for _, leg := range t.s.legs {
		if leg.ID == legID {
			leg.Status = status
			v := resultValue
			leg.ResultValue = &v
			return nil
		}
	}
	return ErrNotFound
}

func (t *memoryTx) DeleteLeg(_ context.Context, legID uuid.UUID) error {
	for i, leg := range t.s.legs {
		if leg.ID == legID {
			t.s.legs = append(t.s.legs[:i], t.s.legs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (t *memoryTx) CountLegs(_ context.Context, operationID uuid.UUID) (int, error) {
	count := 0
	for _, leg := range t.s.legs {
		if leg.OperationID == operationID {
			count++
		}
	}
	return count, nil
}

func (t *memoryTx) BestEventMatch(_ context.Context, name string, date time.Time) (*models.Event, float64, error) {
	day := date.UTC().Truncate(24 * time.Hour)

	var best *models.Event
	bestScore := 0.0
	for _, ev := range t.s.events {
		if !ev.Date.UTC().Truncate(24 * time.Hour).Equal(day) {
			continue
		}
		score := trigram.Similarity(ev.Name, name)
		if best == nil || score > bestScore {
			best = ev
			bestScore = score
		}
	}
	if best == nil {
		return nil, 0, ErrNotFound
	}
	return copyEvent(best), bestScore, nil
}

func (t *memoryTx) InsertEvent(_ context.Context, ev *models.Event) error {
	t.s.events = append(t.s.events, copyEvent(ev))
	return nil
}

// Copies guard against external mutation of shared state.

func copyBankroll(b *models.Bankroll) *models.Bankroll {
	c := *b
	return &c
}

func copyOperation(op *models.Operation) *models.Operation {
	c := *op
	c.Legs = nil
	if op.ActualReturn != nil {
		v := *op.ActualReturn
		c.ActualReturn = &v
	}
	if op.ROI != nil {
		v := *op.ROI
		c.ROI = &v
	}
	return &c
}

func copyLeg(leg *models.Leg) *models.Leg {
	c := *leg
	if leg.ResultValue != nil {
		v := *leg.ResultValue
		c.ResultValue = &v
	}
	return &c
}

func copyEvent(ev *models.Event) *models.Event {
	c := *ev
	return &c
}
