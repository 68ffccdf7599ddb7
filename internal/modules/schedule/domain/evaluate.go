package domain

import (
	"slices"
	"time"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusBlocked  Status = "blocked"
	StatusWindDown Status = "wind_down"
)

type Reason string

const (
	ReasonNone          Reason = ""
	ReasonOutsideHours  Reason = "outside_hours"
	ReasonBlockedPeriod Reason = "blocked_period"
	ReasonBlockedDay    Reason = "blocked_day"
)

type Verdict struct {
	Status     Status
	Reason     Reason
	PeriodName string
}

func (v Verdict) Blocked() bool { return v.Status == StatusBlocked }

// Evaluate classifies the wall-clock reading of now. Checks run in a fixed
// order and the first match wins: blocked day, allowed hours, blocked
// periods, wind-down.
func Evaluate(s Schedule, now time.Time) Verdict {
	if len(s.BlockedDays) > 0 && slices.Contains(s.BlockedDays, now.Weekday().String()) {
		return Verdict{Status: StatusBlocked, Reason: ReasonBlockedDay}
	}

	minute := MinuteOf(now)
	end := s.AllowedEnd()
	if !(Window{Start: s.AllowedHours.Start, End: end}).Contains(minute) {
		return Verdict{Status: StatusBlocked, Reason: ReasonOutsideHours}
	}

	for _, p := range s.BlockedPeriods {
		if p.Contains(minute) {
			return Verdict{Status: StatusBlocked, Reason: ReasonBlockedPeriod, PeriodName: p.Name}
		}
	}

	if s.WindDown != nil && (Window{Start: *s.WindDown, End: end}).Contains(minute) {
		return Verdict{Status: StatusWindDown}
	}
	return Verdict{Status: StatusOK}
}
