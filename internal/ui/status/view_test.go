package status_test

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"humanguard/internal/modules/guard/domain"
	guarddto "humanguard/internal/modules/guard/dto"
	"humanguard/internal/ui/status"
)

type fakePort struct {
	report guarddto.ReportOutput
	calls  int
}

func (f *fakePort) Status(context.Context) (guarddto.ReportOutput, error) {
	f.calls++
	return f.report, nil
}

func sampleReport(now time.Time) guarddto.ReportOutput {
	return guarddto.ReportOutput{
		ConfigFound: true,
		ConfigPath:  "/home/op/human.md",
		At:          now,
		Status:      "blocked",
		Reason:      "blocked_period",
		PeriodName:  "family",
		Enforcement: "soft",
		Outcome:     domain.OutcomeBlocked,
		Message:     "Tiempo de familia.",
		Break:       &domain.BreakStatus{OK: true},
		Snapshot: &domain.Snapshot{
			EndAllowedEpoch: now.Add(5 * time.Hour).Unix(),
			BlockedPeriods:  []domain.BlockedPeriod{{Name: "family", StartEpoch: now.Add(-time.Hour).Unix(), EndEpoch: now.Add(90 * time.Minute).Unix()}},
		},
	}
}

func TestRenderReport(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 2, 22, 19, 0, 0, 0, time.UTC)
	out := status.Render(sampleReport(now), now)
	for _, want := range []string{"BLOCKED", "/home/op/human.md", "blocked (blocked_period: family)", "rested", "in 5h00m", "now, in 1h30m left", "Tiempo de familia."} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderWithoutConfig(t *testing.T) {
	t.Parallel()
	out := status.Render(guarddto.ReportOutput{Outcome: domain.OutcomeOK}, time.Now())
	if !strings.Contains(out, "no configuration found") {
		t.Fatalf("unexpected render:\n%s", out)
	}
}

func TestModelLoadsAndQuits(t *testing.T) {
	t.Parallel()
	now := time.Now()
	port := &fakePort{report: sampleReport(now)}
	m := status.New(port)
	if !strings.Contains(m.View(), "Evaluating") {
		t.Fatalf("expected loading view")
	}
	msg := m.Init()()
	if port.calls != 1 {
		t.Fatalf("expected one status call, got %d", port.calls)
	}
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("expected refresh tick after load")
	}
	if !strings.Contains(next.View(), "Tiempo de familia.") {
		t.Fatalf("expected report in view:\n%s", next.View())
	}
	_, quit := next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if quit == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := quit().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}
