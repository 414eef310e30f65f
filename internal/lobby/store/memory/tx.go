package memory

import (
	"context"

	"frontdesk/internal/lobby/lock"
	"frontdesk/internal/lobby/models"
	"frontdesk/internal/lobby/ports"
	id "frontdesk/pkg/domain"
	dErrors "frontdesk/pkg/domain-errors"
	"frontdesk/pkg/platform/sentinel"
)

// RunInTx stages every write fn makes and applies them in one step once fn
// returns nil. The commit re-checks each expected status against committed
// state, so a concurrent writer that got there first turns the whole
// transaction into sentinel.ErrConflict with nothing applied.
func (s *Store) RunInTx(ctx context.Context, scope ports.TxScope, fn func(stores ports.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if scope.BadgeType != "" {
		release, err := s.locker.Lock(ctx, lock.Key(string(scope.BadgeType)))
		if err != nil {
			return err
		}
		defer release()
	}

	t := &txn{
		s:        s,
		visitors: make(map[id.VisitorID]*stagedVisitor),
		badges:   make(map[id.BadgeID]*stagedBadge),
	}
	if err := fn(ports.TxStores{Visitors: &txVisitors{t}, Badges: &txBadges{t}}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted before commit")
	}
	return t.commit()
}

type stagedVisitor struct {
	v        *models.Visitor
	expected models.VisitorStatus
	create   bool
}

type stagedBadge struct {
	b        *models.Badge
	expected models.BadgeStatus
	create   bool
}

type txn struct {
	s        *Store
	visitors map[id.VisitorID]*stagedVisitor
	badges   map[id.BadgeID]*stagedBadge
}

func (t *txn) visitor(visitorID id.VisitorID) (*models.Visitor, bool) {
	if st, ok := t.visitors[visitorID]; ok {
		return st.v, true
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	v, ok := t.s.visitors[visitorID]
	return v, ok
}

func (t *txn) badge(badgeID id.BadgeID) (*models.Badge, bool) {
	if st, ok := t.badges[badgeID]; ok {
		return st.b, true
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	b, ok := t.s.badges[badgeID]
	return b, ok
}

func (t *txn) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for visitorID, st := range t.visitors {
		cur, exists := t.s.visitors[visitorID]
		switch {
		case st.create && exists:
			return sentinel.ErrConflict
		case !st.create && (!exists || cur.Status != st.expected):
			return sentinel.ErrConflict
		}
	}
	for badgeID, st := range t.badges {
		if st.create {
			if t.s.badgeExistsLocked(st.b) {
				return sentinel.ErrConflict
			}
			continue
		}
		cur, exists := t.s.badges[badgeID]
		if !exists || cur.Status != st.expected {
			return sentinel.ErrConflict
		}
	}

	for visitorID, st := range t.visitors {
		t.s.visitors[visitorID] = st.v
	}
	for badgeID, st := range t.badges {
		t.s.badges[badgeID] = st.b
	}
	return nil
}

type txVisitors struct{ t *txn }

func (x *txVisitors) FindByID(_ context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	v, ok := x.t.visitor(visitorID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return v.Clone(), nil
}

func (x *txVisitors) List(ctx context.Context, filter models.VisitorFilter) ([]*models.Visitor, error) {
	committed, err := x.t.s.Visitors().List(ctx, models.VisitorFilter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[id.VisitorID]bool, len(committed))
	out := make([]*models.Visitor, 0, len(committed))
	for _, v := range committed {
		seen[v.ID] = true
		if st, ok := x.t.visitors[v.ID]; ok {
			v = st.v.Clone()
		}
		if filter.Matches(v) {
			out = append(out, v)
		}
	}
	for visitorID, st := range x.t.visitors {
		if !seen[visitorID] && filter.Matches(st.v) {
			out = append(out, st.v.Clone())
		}
	}
	sortVisitors(out)
	return out, nil
}

func (x *txVisitors) Create(_ context.Context, visitor *models.Visitor) error {
	if _, exists := x.t.visitor(visitor.ID); exists {
		return sentinel.ErrConflict
	}
	x.t.visitors[visitor.ID] = &stagedVisitor{v: visitor.Clone(), create: true}
	return nil
}

func (x *txVisitors) UpdateIfStatus(_ context.Context, visitor *models.Visitor, expected models.VisitorStatus) error {
	cur, ok := x.t.visitor(visitor.ID)
	if !ok {
		return sentinel.ErrNotFound
	}
	if cur.Status != expected {
		return sentinel.ErrConflict
	}
	if st, staged := x.t.visitors[visitor.ID]; staged {
		st.v = visitor.Clone()
		return nil
	}
	x.t.visitors[visitor.ID] = &stagedVisitor{v: visitor.Clone(), expected: expected}
	return nil
}

type txBadges struct{ t *txn }

func (x *txBadges) FindByID(_ context.Context, badgeID id.BadgeID) (*models.Badge, error) {
	b, ok := x.t.badge(badgeID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return b.Clone(), nil
}

func (x *txBadges) FindAvailable(_ context.Context, badgeType models.BadgeType) (*models.Badge, error) {
	x.t.s.mu.RLock()
	var best *models.Badge
	for badgeID, badge := range x.t.s.badges {
		if st, ok := x.t.badges[badgeID]; ok {
			badge = st.b
		}
		if isCandidate(badge, badgeType) && (best == nil || badge.Number < best.Number) {
			best = badge
		}
	}
	x.t.s.mu.RUnlock()
	for _, st := range x.t.badges {
		if st.create && isCandidate(st.b, badgeType) && (best == nil || st.b.Number < best.Number) {
			best = st.b
		}
	}
	if best == nil {
		return nil, sentinel.ErrNotFound
	}
	return best.Clone(), nil
}

func (x *txBadges) List(ctx context.Context) ([]*models.Badge, error) {
	committed, err := x.t.s.Badges().List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[id.BadgeID]bool, len(committed))
	for i, b := range committed {
		seen[b.ID] = true
		if st, ok := x.t.badges[b.ID]; ok {
			committed[i] = st.b.Clone()
		}
	}
	for badgeID, st := range x.t.badges {
		if !seen[badgeID] {
			committed = append(committed, st.b.Clone())
		}
	}
	sortBadges(committed)
	return committed, nil
}

func (x *txBadges) Create(_ context.Context, badge *models.Badge) error {
	if _, exists := x.t.badge(badge.ID); exists {
		return sentinel.ErrConflict
	}
	x.t.badges[badge.ID] = &stagedBadge{b: badge.Clone(), create: true}
	return nil
}

func (x *txBadges) UpdateIfStatus(_ context.Context, badge *models.Badge, expected models.BadgeStatus) error {
	cur, ok := x.t.badge(badge.ID)
	if !ok {
		return sentinel.ErrNotFound
	}
	if cur.Status != expected {
		return sentinel.ErrConflict
	}
	if st, staged := x.t.badges[badge.ID]; staged {
		st.b = badge.Clone()
		return nil
	}
	x.t.badges[badge.ID] = &stagedBadge{b: badge.Clone(), expected: expected}
	return nil
}

var (
	_ ports.StoreTx      = (*Store)(nil)
	_ ports.VisitorStore = (*Visitors)(nil)
	_ ports.BadgeStore   = (*Badges)(nil)
	_ ports.VisitorStore = (*txVisitors)(nil)
	_ ports.BadgeStore   = (*txBadges)(nil)
)
