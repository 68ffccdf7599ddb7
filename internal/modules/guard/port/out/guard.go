package out

import (
	"context"
	"time"

	"humanguard/internal/modules/guard/domain"
)

// ScheduleReader returns apperrors.ErrNoConfig when no configuration is
// in effect.
type ScheduleReader interface {
	Evaluate(ctx context.Context, at time.Time) (domain.Evaluation, error)
}

type SessionLedger interface {
	CleanupOrphans(ctx context.Context, at time.Time) error
	CheckBreak(ctx context.Context, minBreak, maxContinuous int, at time.Time) (domain.BreakStatus, error)
}

type StateWriter interface {
	Write(ctx context.Context, snapshot domain.Snapshot) error
}
