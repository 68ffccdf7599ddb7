package service

import (
	"context"
	"errors"
	"fmt"

	"humanguard/internal/modules/guard/domain"
	guardout "humanguard/internal/modules/guard/port/out"
	scheduledomain "humanguard/internal/modules/schedule/domain"
	"humanguard/internal/platform/clock"
	apperrors "humanguard/internal/platform/errors"
	"humanguard/internal/platform/id"
)

// Report describes one pass of the guard. Message is meant for the
// operator and is empty when there is nothing to say.
type Report struct {
	ConfigFound  bool
	Evaluation   domain.Evaluation
	Break        *domain.BreakStatus
	Outcome      domain.Outcome
	Message      string
	Snapshot     *domain.Snapshot
	StateWritten bool
}

type GuardService struct {
	clock    clock.Clock
	idGen    id.Generator
	schedule guardout.ScheduleReader
	ledger   guardout.SessionLedger
	state    guardout.StateWriter
}

func NewGuardService(clock clock.Clock, idGen id.Generator, schedule guardout.ScheduleReader, ledger guardout.SessionLedger, state guardout.StateWriter) *GuardService {
	return &GuardService{clock: clock, idGen: idGen, schedule: schedule, ledger: ledger, state: state}
}

// Check runs the full gate before a session starts. force suppresses every
// block but still records the state snapshot.
func (s *GuardService) Check(ctx context.Context, force bool) (Report, error) {
	eval, found, err := s.evaluate(ctx)
	if err != nil || !found {
		return Report{Outcome: domain.OutcomeOK}, err
	}
	cfg := eval.Config
	report := Report{ConfigFound: true, Evaluation: eval, Outcome: domain.OutcomeOK}
	advisory := cfg.Enforcement == scheduledomain.EnforcementAdvisory

	if eval.Verdict.Blocked() && !force {
		report.Message = cfg.Message(string(eval.Verdict.Reason))
		if !advisory {
			report.Outcome = domain.OutcomeBlocked
			return report, nil
		}
		return s.record(ctx, report)
	}
	if eval.Verdict.Status == scheduledomain.StatusWindDown && !force {
		report.Message = cfg.Message(scheduledomain.MessageWindDown)
		report.Outcome = domain.OutcomeWindDown
		return s.record(ctx, report)
	}

	if err := s.ledger.CleanupOrphans(ctx, eval.At); err != nil {
		return Report{}, err
	}
	status, err := s.ledger.CheckBreak(ctx, cfg.Sessions.MinBreakMinutes, cfg.Sessions.MaxContinuousMinutes, eval.At)
	if err != nil {
		return Report{}, err
	}
	report.Break = &status
	if !status.OK && !force {
		report.Message = fmt.Sprintf("Need %d more minutes of break.", status.MinutesLeft)
		if !advisory {
			report.Outcome = domain.OutcomeBlocked
			return report, nil
		}
	}
	return s.record(ctx, report)
}

// Status evaluates the same gates as Check without writing anything.
func (s *GuardService) Status(ctx context.Context) (Report, error) {
	eval, found, err := s.evaluate(ctx)
	if err != nil || !found {
		return Report{Outcome: domain.OutcomeOK}, err
	}
	cfg := eval.Config
	report := Report{ConfigFound: true, Evaluation: eval, Outcome: domain.OutcomeOK}
	status, err := s.ledger.CheckBreak(ctx, cfg.Sessions.MinBreakMinutes, cfg.Sessions.MaxContinuousMinutes, eval.At)
	if err != nil {
		return Report{}, err
	}
	report.Break = &status
	switch {
	case eval.Verdict.Blocked():
		report.Outcome = domain.OutcomeBlocked
		report.Message = cfg.Message(string(eval.Verdict.Reason))
	case eval.Verdict.Status == scheduledomain.StatusWindDown:
		report.Outcome = domain.OutcomeWindDown
		report.Message = cfg.Message(scheduledomain.MessageWindDown)
	case !status.OK:
		report.Outcome = domain.OutcomeBlocked
		report.Message = fmt.Sprintf("Need %d more minutes of break.", status.MinutesLeft)
	}
	snapshot := domain.Project(cfg, eval.At, s.idGen.New())
	report.Snapshot = &snapshot
	return report, nil
}

func (s *GuardService) evaluate(ctx context.Context) (domain.Evaluation, bool, error) {
	eval, err := s.schedule.Evaluate(ctx, s.clock.Now())
	if errors.Is(err, apperrors.ErrNoConfig) {
		return domain.Evaluation{}, false, nil
	}
	if err != nil {
		return domain.Evaluation{}, false, err
	}
	return eval, true, nil
}

func (s *GuardService) record(ctx context.Context, report Report) (Report, error) {
	snapshot := domain.Project(report.Evaluation.Config, report.Evaluation.At, s.idGen.New())
	if err := s.state.Write(ctx, snapshot); err != nil {
		return Report{}, err
	}
	report.Snapshot = &snapshot
	report.StateWritten = true
	return report, nil
}
