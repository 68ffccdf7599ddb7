package dto

import (
	"time"

	"humanguard/internal/modules/guard/domain"
)

type CheckInput struct {
	Force bool
}

// ReportOutput is shared by check and status. Break is nil when the break
// policy was not consulted.
type ReportOutput struct {
	ConfigFound  bool
	ConfigPath   string
	At           time.Time
	Status       string
	Reason       string
	PeriodName   string
	Enforcement  string
	Outcome      domain.Outcome
	ExitCode     int
	Message      string
	Break        *domain.BreakStatus
	Snapshot     *domain.Snapshot
	StateWritten bool
}
