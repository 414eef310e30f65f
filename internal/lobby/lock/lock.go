// Package lock serializes badge reservation per badge type, in-process or
// across instances through Redis.
package lock

import (
	"context"

	dErrors "frontdesk/pkg/domain-errors"
)

// Locker acquires an exclusive lock on key until the returned release is
// called or ctx ends, whichever comes first for a pending acquire.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// Key namespaces a badge type lock.
func Key(badgeType string) string {
	return "frontdesk:lock:badge-type:" + badgeType
}

func acquireTimeout(err error) error {
	return dErrors.Wrap(err, dErrors.CodeTimeout, "timed out waiting for badge lock")
}
