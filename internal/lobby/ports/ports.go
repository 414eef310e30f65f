// Package ports declares the collaborators the lobby service depends on.
// Store backends implement these without importing the service.
package ports

import (
	"context"

	"frontdesk/internal/lobby/models"
	id "frontdesk/pkg/domain"
)

// VisitorStore persists visitor records. Lookups return sentinel.ErrNotFound
// for unknown ids; UpdateIfStatus returns sentinel.ErrConflict when the
// stored status is no longer expected.
type VisitorStore interface {
	FindByID(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error)
	List(ctx context.Context, filter models.VisitorFilter) ([]*models.Visitor, error)
	Create(ctx context.Context, visitor *models.Visitor) error
	UpdateIfStatus(ctx context.Context, visitor *models.Visitor, expected models.VisitorStatus) error
}

// BadgeStore persists the badge inventory. FindAvailable returns the
// lowest-numbered available badge of a type, or sentinel.ErrNotFound when
// the pool is exhausted.
type BadgeStore interface {
	FindByID(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error)
	FindAvailable(ctx context.Context, badgeType models.BadgeType) (*models.Badge, error)
	List(ctx context.Context) ([]*models.Badge, error)
	Create(ctx context.Context, badge *models.Badge) error
	UpdateIfStatus(ctx context.Context, badge *models.Badge, expected models.BadgeStatus) error
}

// TxStores are the stores bound to one transaction.
type TxStores struct {
	Visitors VisitorStore
	Badges   BadgeStore
}

// TxScope names what a transaction contends on. A non-empty BadgeType
// serializes the transaction against every other one on the same pool.
type TxScope struct {
	BadgeType models.BadgeType
}

// StoreTx runs fn as one atomic unit. Either every write fn made is applied
// or none is. A lost race surfaces as sentinel.ErrConflict.
type StoreTx interface {
	RunInTx(ctx context.Context, scope TxScope, fn func(stores TxStores) error) error
}

// EventSink receives domain events after a transaction commits.
type EventSink interface {
	Publish(ctx context.Context, event models.Event) error
}
