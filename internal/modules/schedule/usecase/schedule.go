package usecase

import (
	"context"

	"humanguard/internal/modules/schedule/dto"
	schedulein "humanguard/internal/modules/schedule/port/in"
	"humanguard/internal/modules/schedule/service"
)

type Interactor struct {
	svc *service.ScheduleService
}

func NewInteractor(svc *service.ScheduleService) schedulein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) LoadConfig(ctx context.Context) (dto.ConfigOutput, error) {
	cfg, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ConfigOutput{}, err
	}
	return dto.ConfigOutput{Path: cfg.Path, Config: cfg}, nil
}

func (i *Interactor) Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error) {
	cfg, verdict, at, err := i.svc.Evaluate(ctx, input.At)
	if err != nil {
		return dto.EvaluateOutput{}, err
	}
	return dto.EvaluateOutput{Path: cfg.Path, Config: cfg, Verdict: verdict, At: at}, nil
}

func (i *Interactor) Render(ctx context.Context) (dto.RenderOutput, error) {
	cfg, rendered, err := i.svc.Render(ctx)
	if err != nil {
		return dto.RenderOutput{}, err
	}
	return dto.RenderOutput{Path: cfg.Path, YAML: rendered}, nil
}
