package domain

import (
	"time"

	scheduledomain "humanguard/internal/modules/schedule/domain"
)

// WarnRatio is the share of the session limit after which the hook layer
// warns.
const WarnRatio = 0.8

type BlockedPeriod struct {
	Name       string `json:"name"`
	StartEpoch int64  `json:"start_epoch"`
	EndEpoch   int64  `json:"end_epoch"`
}

type Messages struct {
	SessionLimit  string `json:"session_limit"`
	WindDown      string `json:"wind_down"`
	BlockedPeriod string `json:"blocked_period"`
	BreakReminder string `json:"break_reminder"`
	OutsideHours  string `json:"outside_hours"`
}

// Snapshot is the state document the hook layer reads to time its
// notifications during a session.
type Snapshot struct {
	SessionID       string          `json:"session_id"`
	StartEpoch      int64           `json:"start_epoch"`
	MaxEpoch        int64           `json:"max_epoch"`
	WarnEpoch       int64           `json:"warn_epoch"`
	WindDownEpoch   int64           `json:"wind_down_epoch"`
	EndAllowedEpoch int64           `json:"end_allowed_epoch"`
	BlockedPeriods  []BlockedPeriod `json:"blocked_periods"`
	Enforcement     string          `json:"enforcement"`
	MinBreakSeconds int             `json:"min_break_seconds"`
	Messages        Messages        `json:"messages"`
}

// Project anchors the configured times of day to absolute instants around
// now in the configured zone. Day shifts are calendar days, so instants
// keep their wall-clock time across DST transitions.
func Project(cfg scheduledomain.Config, now time.Time, sessionID string) Snapshot {
	now = now.In(cfg.Location())
	nowEpoch := now.Unix()
	limit := int64(cfg.Sessions.MaxContinuousMinutes) * 60

	snapshot := Snapshot{
		SessionID:       sessionID,
		StartEpoch:      nowEpoch,
		MaxEpoch:        nowEpoch + limit,
		WarnEpoch:       nowEpoch + int64(float64(limit)*WarnRatio),
		WindDownEpoch:   windDownEpoch(cfg.Schedule, now),
		EndAllowedEpoch: endAllowedEpoch(cfg.Schedule, now),
		BlockedPeriods:  blockedPeriods(cfg.Schedule, now),
		Enforcement:     string(cfg.Enforcement),
		MinBreakSeconds: cfg.Sessions.MinBreakMinutes * 60,
		Messages: Messages{
			SessionLimit:  cfg.Message(scheduledomain.MessageSessionLimit),
			WindDown:      cfg.Message(scheduledomain.MessageWindDown),
			BlockedPeriod: cfg.Message(scheduledomain.MessageBlockedPeriod),
			BreakReminder: cfg.Message(scheduledomain.MessageBreakReminder),
			OutsideHours:  cfg.Message(scheduledomain.MessageOutsideHours),
		},
	}
	return snapshot
}

func today(now time.Time, t scheduledomain.TimeOfDay) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
}

// overnight reports whether the allowed window runs past midnight. An end
// of 00:00 means end of day and does not count.
func overnight(s scheduledomain.Schedule) bool {
	return s.AllowedHours.End != 0 && s.AllowedHours.End < s.AllowedHours.Start
}

func windDownEpoch(s scheduledomain.Schedule, now time.Time) int64 {
	if s.WindDown == nil {
		return 0
	}
	at := today(now, *s.WindDown)
	if overnight(s) {
		minute := scheduledomain.MinuteOf(now)
		switch {
		case *s.WindDown >= s.AllowedHours.Start && minute < s.AllowedHours.End:
			// evening wind-down seen after midnight belongs to last night
			at = at.AddDate(0, 0, -1)
		case *s.WindDown < s.AllowedHours.Start && minute >= s.AllowedHours.Start:
			// morning wind-down seen before midnight belongs to tomorrow
			at = at.AddDate(0, 0, 1)
		}
	}
	return at.Unix()
}

func endAllowedEpoch(s scheduledomain.Schedule, now time.Time) int64 {
	if s.AllowedHours.End == 0 {
		return today(now, 0).AddDate(0, 0, 1).Unix()
	}
	end := today(now, s.AllowedHours.End)
	if overnight(s) && !end.After(now) {
		end = end.AddDate(0, 0, 1)
	}
	return end.Unix()
}

func blockedPeriods(s scheduledomain.Schedule, now time.Time) []BlockedPeriod {
	out := make([]BlockedPeriod, 0, len(s.BlockedPeriods))
	for _, period := range s.BlockedPeriods {
		start := today(now, period.Start)
		end := today(now, period.End)
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
		if start.After(now) {
			prevStart, prevEnd := start.AddDate(0, 0, -1), end.AddDate(0, 0, -1)
			if !now.Before(prevStart) && now.Before(prevEnd) {
				start, end = prevStart, prevEnd
			}
		}
		out = append(out, BlockedPeriod{Name: period.Name, StartEpoch: start.Unix(), EndEpoch: end.Unix()})
	}
	return out
}
