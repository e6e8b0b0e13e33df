package badge_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/startupquest/quest-api/internal/domain/badge"
)

type pairKey struct {
	userID    uuid.UUID
	badgeType string
}

// memRepo mirrors the Postgres ledger: a unique (user, type) index and a
// conditional pending-only update, both under one lock.
type memRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*badge.Award
	byPair map[pairKey]uuid.UUID
	seq    map[uuid.UUID]int
	next   int
}

func newMemRepo() *memRepo {
	return &memRepo{
		byID:   map[uuid.UUID]*badge.Award{},
		byPair: map[pairKey]uuid.UUID{},
		seq:    map[uuid.UUID]int{},
	}
}

func (r *memRepo) Create(_ context.Context, a *badge.Award) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{a.UserID, a.BadgeType}
	if _, exists := r.byPair[key]; exists {
		return badge.ErrDuplicateAward
	}
	cp := *a
	r.byID[a.ID] = &cp
	r.byPair[key] = a.ID
	r.next++
	r.seq[a.ID] = r.next
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*badge.Award, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memRepo) list(match func(*badge.Award) bool) []*badge.Award {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*badge.Award{}
	for _, a := range r.byID {
		if match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out
}

func (r *memRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*badge.Award, error) {
	return r.list(func(a *badge.Award) bool { return a.UserID == userID }), nil
}

func (r *memRepo) ListByType(_ context.Context, badgeType string) ([]*badge.Award, error) {
	return r.list(func(a *badge.Award) bool { return a.BadgeType == badgeType }), nil
}

func (r *memRepo) Transition(_ context.Context, id, owner uuid.UUID, status badge.Status, txRef sql.NullString, at time.Time) (*badge.Award, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || a.Status != badge.StatusPending || (owner != uuid.Nil && a.UserID != owner) {
		return nil, nil
	}
	a.Status = status
	a.TransactionRef = txRef
	a.UpdatedAt = at
	cp := *a
	return &cp, nil
}

func (r *memRepo) CountPendingOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, a := range r.byID {
		if a.Status == badge.StatusPending && a.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []badge.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e badge.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []badge.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]badge.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

const (
	walletA = "0x52908400098527886E0F7030069857D2E4169EE7"
	walletB = "0xde709f2102306220921060314715629080e2fb77"
)
