package sentinel

import "errors"

// Sentinel errors for storage facts. Stores and lock backends return these
// (optionally wrapped) and the lobby service translates them into coded
// domain errors:
//   - ErrNotFound: visitor or badge does not exist
//   - ErrConflict: a conditional write lost a race (status changed underneath)
//   - ErrUnavailable: backend or lock temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
