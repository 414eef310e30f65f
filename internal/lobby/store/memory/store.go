// Package memory is the in-process store backend used for local runs and
// tests. Visitors and badges share one lock so a transaction commit is a
// single atomic compare-and-swap across both.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"frontdesk/internal/lobby/lock"
	"frontdesk/internal/lobby/models"
	id "frontdesk/pkg/domain"
	"frontdesk/pkg/platform/sentinel"
)

const defaultTxTimeout = 5 * time.Second

type Store struct {
	mu       sync.RWMutex
	visitors map[id.VisitorID]*models.Visitor
	badges   map[id.BadgeID]*models.Badge

	locker  lock.Locker
	timeout time.Duration
}

type Option func(*Store)

// WithLocker replaces the in-process badge type lock, e.g. with lock.Redis
// when several instances front the same data.
func WithLocker(l lock.Locker) Option {
	return func(s *Store) {
		if l != nil {
			s.locker = l
		}
	}
}

func WithTxTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		visitors: make(map[id.VisitorID]*models.Visitor),
		badges:   make(map[id.BadgeID]*models.Badge),
		locker:   lock.NewLocal(),
		timeout:  defaultTxTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Visitors returns the non-transactional visitor store. Each call is atomic
// on its own.
func (s *Store) Visitors() *Visitors {
	return &Visitors{s: s}
}

// Badges returns the non-transactional badge store.
func (s *Store) Badges() *Badges {
	return &Badges{s: s}
}

type Visitors struct {
	s *Store
}

func (v *Visitors) FindByID(_ context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	found, ok := v.s.visitors[visitorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return found.Clone(), nil
}

func (v *Visitors) List(_ context.Context, filter models.VisitorFilter) ([]*models.Visitor, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*models.Visitor, 0, len(v.s.visitors))
	for _, visitor := range v.s.visitors {
		if filter.Matches(visitor) {
			out = append(out, visitor.Clone())
		}
	}
	sortVisitors(out)
	return out, nil
}

func (v *Visitors) Create(_ context.Context, visitor *models.Visitor) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, exists := v.s.visitors[visitor.ID]; exists {
		return sentinel.ErrConflict
	}
	v.s.visitors[visitor.ID] = visitor.Clone()
	return nil
}

func (v *Visitors) UpdateIfStatus(_ context.Context, visitor *models.Visitor, expected models.VisitorStatus) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cur, ok := v.s.visitors[visitor.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if cur.Status != expected {
		return sentinel.ErrConflict
	}
	v.s.visitors[visitor.ID] = visitor.Clone()
	return nil
}

type Badges struct {
	s *Store
}

func (b *Badges) FindByID(_ context.Context, badgeID id.BadgeID) (*models.Badge, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	found, ok := b.s.badges[badgeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return found.Clone(), nil
}

func (b *Badges) FindAvailable(_ context.Context, badgeType models.BadgeType) (*models.Badge, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	var best *models.Badge
	for _, badge := range b.s.badges {
		if isCandidate(badge, badgeType) && (best == nil || badge.Number < best.Number) {
			best = badge
		}
	}
	if best == nil {
		return nil, sentinel.ErrNotFound
	}
	return best.Clone(), nil
}

func (b *Badges) List(_ context.Context) ([]*models.Badge, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()
	out := make([]*models.Badge, 0, len(b.s.badges))
	for _, badge := range b.s.badges {
		out = append(out, badge.Clone())
	}
	sortBadges(out)
	return out, nil
}

func (b *Badges) Create(_ context.Context, badge *models.Badge) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	if b.s.badgeExistsLocked(badge) {
		return sentinel.ErrConflict
	}
	b.s.badges[badge.ID] = badge.Clone()
	return nil
}

func (b *Badges) UpdateIfStatus(_ context.Context, badge *models.Badge, expected models.BadgeStatus) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	cur, ok := b.s.badges[badge.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if cur.Status != expected {
		return sentinel.ErrConflict
	}
	b.s.badges[badge.ID] = badge.Clone()
	return nil
}

// badgeExistsLocked reports an id or number collision. Caller holds s.mu.
func (s *Store) badgeExistsLocked(badge *models.Badge) bool {
	if _, exists := s.badges[badge.ID]; exists {
		return true
	}
	for _, other := range s.badges {
		if other.Number == badge.Number {
			return true
		}
	}
	return false
}

func isCandidate(b *models.Badge, t models.BadgeType) bool {
	return b.Type == t && b.Status == models.BadgeAvailable
}

func sortVisitors(vs []*models.Visitor) {
	sort.Slice(vs, func(i, j int) bool {
		if !vs[i].CreatedAt.Equal(vs[j].CreatedAt) {
			return vs[i].CreatedAt.Before(vs[j].CreatedAt)
		}
		return vs[i].VisitorCode < vs[j].VisitorCode
	})
}

func sortBadges(bs []*models.Badge) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].Number < bs[j].Number })
}
