package domain_test

import (
	"testing"
	"time"

	"humanguard/internal/modules/schedule/domain"
	"humanguard/internal/platform/document"
)

const guardDoc = `framework: human-md
operator:
  timezone: "Europe/London"
schedule:
  allowed_hours:
    start: "09:00"
    end: "00:00"
  blocked_periods:
    - name: "family"
      start: "18:00"
      end: "21:00"
    - start: "12:00"
      end: "13:00"
    - name: "broken"
      start: "25:00"
      end: "26:00"
  blocked_days:
    - Sunday
  wind_down:
    start: "23:30"
sessions:
  max_continuous_minutes: 120
enforcement: advisory
messages:
  outside_hours: >
    Fuera de horario.
  session_limit: 5
`

func TestFromDocumentTypesEveryField(t *testing.T) {
	t.Parallel()
	cfg, ok := domain.FromDocument(document.Parse(guardDoc))
	if !ok {
		t.Fatalf("marker should be recognized")
	}
	if cfg.Location().String() != "Europe/London" {
		t.Fatalf("unexpected location %s", cfg.Location())
	}
	if cfg.Schedule.AllowedHours.Start.String() != "09:00" || cfg.Schedule.AllowedEnd() != domain.MinutesPerDay {
		t.Fatalf("unexpected allowed hours %+v", cfg.Schedule.AllowedHours)
	}
	if len(cfg.Schedule.BlockedPeriods) != 2 {
		t.Fatalf("malformed period must be skipped, got %+v", cfg.Schedule.BlockedPeriods)
	}
	if cfg.Schedule.BlockedPeriods[1].Name != domain.DefaultPeriodName {
		t.Fatalf("unnamed period should default, got %q", cfg.Schedule.BlockedPeriods[1].Name)
	}
	if cfg.Schedule.WindDown == nil || cfg.Schedule.WindDown.String() != "23:30" {
		t.Fatalf("unexpected wind-down %v", cfg.Schedule.WindDown)
	}
	if len(cfg.Schedule.BlockedDays) != 1 || cfg.Schedule.BlockedDays[0] != "Sunday" {
		t.Fatalf("unexpected blocked days %v", cfg.Schedule.BlockedDays)
	}
	if cfg.Sessions.MaxContinuousMinutes != 120 || cfg.Sessions.MinBreakMinutes != domain.DefaultMinBreakMinutes {
		t.Fatalf("unexpected sessions %+v", cfg.Sessions)
	}
	if cfg.Enforcement != domain.EnforcementAdvisory {
		t.Fatalf("expected advisory, got %s", cfg.Enforcement)
	}
	if cfg.Message(domain.MessageOutsideHours) != "Fuera de horario." || cfg.Message(domain.MessageSessionLimit) != "5" {
		t.Fatalf("unexpected messages %v", cfg.Messages)
	}
	if cfg.Message(domain.MessageWindDown) != "" {
		t.Fatalf("absent message should be empty")
	}
}

func TestFromDocumentRequiresMarker(t *testing.T) {
	t.Parallel()
	for _, text := range []string{"", "framework: other", "schedule:\n  allowed_hours:\n    start: \"09:00\"", ": : ["} {
		if _, ok := domain.FromDocument(document.Parse(text)); ok {
			t.Fatalf("document %q should not be usable", text)
		}
	}
}

func TestFromDocumentDefaults(t *testing.T) {
	t.Parallel()
	cfg, ok := domain.FromDocument(document.Parse("framework: human-md\noperator:\n  timezone: Mars/Olympus\nenforcement: strict\nschedule:\n  allowed_hours:\n    start: nope"))
	if !ok {
		t.Fatalf("marker should be recognized")
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("invalid timezone should fall back to UTC, got %s", cfg.Location())
	}
	if cfg.Enforcement != domain.EnforcementSoft {
		t.Fatalf("unknown enforcement should fall back to soft, got %s", cfg.Enforcement)
	}
	if cfg.Schedule.AllowedHours.Start != 0 || cfg.Schedule.AllowedHours.End.String() != "23:59" {
		t.Fatalf("bad bounds should use defaults, got %+v", cfg.Schedule.AllowedHours)
	}
	if cfg.Schedule.WindDown != nil || cfg.Schedule.BlockedPeriods != nil {
		t.Fatalf("absent sections should stay empty")
	}
	if cfg.Sessions.MaxContinuousMinutes != 150 || cfg.Sessions.MinBreakMinutes != 15 {
		t.Fatalf("unexpected session defaults %+v", cfg.Sessions)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()
	if v, err := domain.ParseTimeOfDay("9:05"); err != nil || v != 545 {
		t.Fatalf("expected 545, got %d (%v)", v, err)
	}
	for _, raw := range []string{"", "24:00", "12:60", "noon", "12"} {
		if _, err := domain.ParseTimeOfDay(raw); err == nil {
			t.Fatalf("expected %q to fail", raw)
		}
	}
}
