package usecase

import (
	"context"

	"humanguard/internal/modules/session/domain"
	sessiondto "humanguard/internal/modules/session/dto"
	sessionin "humanguard/internal/modules/session/port/in"
	"humanguard/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	record, err := i.svc.Start(ctx, input.ProjectDir, input.Forced)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{SessionID: record.ID, StartTime: record.StartTime}, nil
}

func (i *Interactor) End(ctx context.Context, input sessiondto.EndInput) (sessiondto.EndOutput, error) {
	record, found, err := i.svc.End(ctx, input.SessionID)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	out := sessiondto.EndOutput{SessionID: input.SessionID, Found: found}
	if !found {
		return out, nil
	}
	if record.EndTime != nil {
		out.EndTime = *record.EndTime
	}
	if record.LastActivity != nil {
		out.LastActivity = *record.LastActivity
	}
	out.WorkSinceBreak = record.WorkSinceBreak
	return out, nil
}

func (i *Interactor) Touch(ctx context.Context, input sessiondto.TouchInput) (sessiondto.TouchOutput, error) {
	at, err := i.svc.Touch(ctx, input.SessionID)
	if err != nil {
		return sessiondto.TouchOutput{}, err
	}
	return sessiondto.TouchOutput{SessionID: input.SessionID, At: at}, nil
}

func (i *Interactor) CleanupOrphans(ctx context.Context, input sessiondto.CleanupInput) (sessiondto.CleanupOutput, error) {
	closed, err := i.svc.CleanupOrphans(ctx, input.At)
	if err != nil {
		return sessiondto.CleanupOutput{}, err
	}
	return sessiondto.CleanupOutput{Closed: closed}, nil
}

func (i *Interactor) CheckBreak(ctx context.Context, input sessiondto.BreakInput) (sessiondto.BreakOutput, error) {
	status, err := i.svc.CheckBreak(ctx, input.MinBreakMinutes, input.MaxContinuousMinutes, input.At)
	if err != nil {
		return sessiondto.BreakOutput{}, err
	}
	return sessiondto.BreakOutput{OK: status.OK, MinutesLeft: status.MinutesLeft}, nil
}

func (i *Interactor) History(ctx context.Context, input sessiondto.HistoryInput) ([]sessiondto.SessionSummary, error) {
	summaries, err := i.svc.History(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.SessionSummary, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, toSummary(summary))
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	indexed, err := i.svc.Reindex(ctx)
	if err != nil {
		return sessiondto.ReindexOutput{}, err
	}
	return sessiondto.ReindexOutput{Indexed: indexed}, nil
}

func toSummary(summary domain.Summary) sessiondto.SessionSummary {
	return sessiondto.SessionSummary{
		ID:             summary.ID,
		ProjectDir:     summary.ProjectDir,
		StartTime:      summary.StartTime,
		EndTime:        summary.EndTime,
		Open:           summary.Open,
		Forced:         summary.Forced,
		DurationMin:    summary.DurationMin,
		WorkSinceBreak: summary.WorkSinceBreak,
	}
}
