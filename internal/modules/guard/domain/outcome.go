package domain

import (
	"time"

	scheduledomain "humanguard/internal/modules/schedule/domain"
)

type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeBlocked  Outcome = "blocked"
	OutcomeWindDown Outcome = "wind_down"
)

// ExitCode is the process status hooks expect for the outcome.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeBlocked:
		return 1
	case OutcomeWindDown:
		return 2
	default:
		return 0
	}
}

// Evaluation is a schedule verdict together with the configuration and the
// zoned instant it was reached at.
type Evaluation struct {
	Config  scheduledomain.Config
	Verdict scheduledomain.Verdict
	At      time.Time
}

type BreakStatus struct {
	OK          bool
	MinutesLeft int
}
