package usecase

import (
	"context"

	"humanguard/internal/modules/guard/dto"
	guardin "humanguard/internal/modules/guard/port/in"
	"humanguard/internal/modules/guard/service"
)

type Interactor struct {
	svc *service.GuardService
}

func NewInteractor(svc *service.GuardService) guardin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Check(ctx context.Context, input dto.CheckInput) (dto.ReportOutput, error) {
	report, err := i.svc.Check(ctx, input.Force)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return toOutput(report), nil
}

func (i *Interactor) Status(ctx context.Context) (dto.ReportOutput, error) {
	report, err := i.svc.Status(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return toOutput(report), nil
}

func toOutput(report service.Report) dto.ReportOutput {
	out := dto.ReportOutput{
		ConfigFound:  report.ConfigFound,
		Outcome:      report.Outcome,
		ExitCode:     report.Outcome.ExitCode(),
		Message:      report.Message,
		Break:        report.Break,
		Snapshot:     report.Snapshot,
		StateWritten: report.StateWritten,
	}
	if !report.ConfigFound {
		return out
	}
	eval := report.Evaluation
	out.ConfigPath = eval.Config.Path
	out.At = eval.At
	out.Status = string(eval.Verdict.Status)
	out.Reason = string(eval.Verdict.Reason)
	out.PeriodName = eval.Verdict.PeriodName
	out.Enforcement = string(eval.Config.Enforcement)
	return out
}
