package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	dErrors "frontdesk/pkg/domain-errors"
	"frontdesk/pkg/platform/sentinel"
	"frontdesk/pkg/requestcontext"
)

// withRetry re-runs fn while it fails with sentinel.ErrConflict, up to
// maxAttempts in total, sleeping a short jittered backoff in between.
// Exhaustion surfaces as CodeStorageConflict. Any other error returns
// immediately.
func (s *Service) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, sentinel.ErrConflict) {
			return err
		}
		if attempt == s.maxAttempts {
			break
		}
		s.metrics.IncConflictRetry(op)
		if s.logger != nil {
			s.logger.WarnContext(ctx, "storage conflict; retrying",
				"request_id", requestcontext.RequestID(ctx),
				"operation", op,
				"attempt", attempt,
			)
		}
		if werr := s.wait(ctx, attempt); werr != nil {
			return werr
		}
	}
	return dErrors.Wrap(err, dErrors.CodeStorageConflict, "concurrent update; please retry")
}

func (s *Service) wait(ctx context.Context, attempt int) error {
	if s.retryBackoff <= 0 {
		return nil
	}
	d := time.Duration(attempt)*s.retryBackoff + rand.N(s.retryBackoff)
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "gave up retrying: context done")
	case <-timer.C:
		return nil
	}
}
