package domain

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zones resolve on hosts without zoneinfo

	"humanguard/internal/platform/document"
)

const (
	Marker      = "human-md"
	MarkerField = "framework"

	DefaultAllowedStart         = "00:00"
	DefaultAllowedEnd           = "23:59"
	DefaultMaxContinuousMinutes = 150
	DefaultMinBreakMinutes      = 15
	DefaultPeriodName           = "unknown"
	MinutesPerDay               = 24 * 60
)

type Enforcement string

const (
	EnforcementSoft     Enforcement = "soft"
	EnforcementAdvisory Enforcement = "advisory"
)

// Message keys understood by the hook layer.
const (
	MessageOutsideHours  = "outside_hours"
	MessageBlockedPeriod = "blocked_period"
	MessageBlockedDay    = "blocked_day"
	MessageWindDown      = "wind_down"
	MessageSessionLimit  = "session_limit"
	MessageBreakReminder = "break_reminder"
)

// TimeOfDay counts minutes since midnight.
type TimeOfDay int

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return 0, fmt.Errorf("time %q: expected HH:MM", raw)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("time %q: invalid hour", raw)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q: invalid minute", raw)
	}
	return TimeOfDay(hour*60 + minute), nil
}

func MinuteOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Window is a half-open [Start, End) span of the day. Start >= End wraps
// past midnight.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w Window) Contains(minute TimeOfDay) bool {
	if w.Start < w.End {
		return w.Start <= minute && minute < w.End
	}
	return minute >= w.Start || minute < w.End
}

type Period struct {
	Name string
	Window
}

type Schedule struct {
	AllowedHours   Window
	BlockedPeriods []Period
	BlockedDays    []string
	WindDown       *TimeOfDay
}

// AllowedEnd is the allowed-window end with 00:00 read as end of day.
func (s Schedule) AllowedEnd() TimeOfDay {
	if s.AllowedHours.End == 0 {
		return MinutesPerDay
	}
	return s.AllowedHours.End
}

type Sessions struct {
	MaxContinuousMinutes int
	MinBreakMinutes      int
}

type Config struct {
	Path        string
	Timezone    string
	Schedule    Schedule
	Sessions    Sessions
	Enforcement Enforcement
	Messages    map[string]string
	Document    document.Value
}

// HasMarker reports whether doc belongs to the guard schema.
func HasMarker(doc document.Value) bool {
	if !doc.IsMapping() {
		return false
	}
	marker, ok := doc.Get(MarkerField).Str()
	return ok && marker == Marker
}

// FromDocument builds a typed Config, defaulting every missing or malformed
// field. ok is false when doc lacks the schema marker.
func FromDocument(doc document.Value) (Config, bool) {
	if !HasMarker(doc) {
		return Config{}, false
	}
	cfg := Config{
		Timezone:    doc.Path("operator", "timezone").StrOr("UTC"),
		Schedule:    scheduleFrom(doc.Get("schedule")),
		Enforcement: enforcementFrom(doc.Get("enforcement")),
		Sessions: Sessions{
			MaxContinuousMinutes: doc.Path("sessions", "max_continuous_minutes").IntOr(DefaultMaxContinuousMinutes),
			MinBreakMinutes:      doc.Path("sessions", "min_break_minutes").IntOr(DefaultMinBreakMinutes),
		},
		Messages: map[string]string{},
		Document: doc,
	}
	messages := doc.Get("messages")
	for _, key := range messages.Keys() {
		if text, ok := messages.Get(key).Str(); ok {
			cfg.Messages[key] = text
		}
	}
	return cfg, true
}

func scheduleFrom(v document.Value) Schedule {
	allowed := v.Get("allowed_hours")
	s := Schedule{
		AllowedHours: Window{
			Start: timeOr(allowed.Get("start"), DefaultAllowedStart),
			End:   timeOr(allowed.Get("end"), DefaultAllowedEnd),
		},
	}
	for _, item := range v.Get("blocked_periods").Items() {
		start, err := parseField(item.Get("start"))
		if err != nil {
			continue
		}
		end, err := parseField(item.Get("end"))
		if err != nil {
			continue
		}
		s.BlockedPeriods = append(s.BlockedPeriods, Period{
			Name:   item.Get("name").StrOr(DefaultPeriodName),
			Window: Window{Start: start, End: end},
		})
	}
	for _, day := range v.Get("blocked_days").Items() {
		if name, ok := day.Str(); ok {
			s.BlockedDays = append(s.BlockedDays, name)
		}
	}
	if wd := v.Get("wind_down"); wd.IsMapping() {
		if start, err := parseField(wd.Get("start")); err == nil {
			s.WindDown = &start
		}
	}
	return s
}

func parseField(v document.Value) (TimeOfDay, error) {
	raw, ok := v.Str()
	if !ok {
		return 0, fmt.Errorf("missing time")
	}
	return ParseTimeOfDay(raw)
}

func timeOr(v document.Value, fallback string) TimeOfDay {
	if t, err := parseField(v); err == nil {
		return t
	}
	t, _ := ParseTimeOfDay(fallback)
	return t
}

func enforcementFrom(v document.Value) Enforcement {
	if mode, ok := v.Str(); ok && Enforcement(strings.TrimSpace(mode)) == EnforcementAdvisory {
		return EnforcementAdvisory
	}
	return EnforcementSoft
}

// Location loads the operator timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Debug("unknown timezone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// Message returns the trimmed template for key, or "" when unset.
func (c Config) Message(key string) string {
	return strings.TrimSpace(c.Messages[key])
}
