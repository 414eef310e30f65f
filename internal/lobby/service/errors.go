package service

import (
	"errors"

	dErrors "frontdesk/pkg/domain-errors"
	"frontdesk/pkg/platform/sentinel"
)

// translate maps store facts to coded domain errors. Errors that already
// carry a code pass through unchanged.
func translate(err error, notFoundMsg, internalMsg string) error {
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeStorageConflict, "concurrent update; please retry")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "storage temporarily unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
	}
}

// conflictOr keeps sentinel.ErrConflict visible to withRetry and translates
// everything else.
func conflictOr(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, sentinel.ErrConflict) {
		return err
	}
	return translate(err, notFoundMsg, internalMsg)
}
