package in

import (
	"context"

	"humanguard/internal/modules/schedule/dto"
)

type Usecase interface {
	LoadConfig(ctx context.Context) (dto.ConfigOutput, error)
	Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error)
	Render(ctx context.Context) (dto.RenderOutput, error)
}
