package in

import (
	"context"

	"humanguard/internal/modules/schedule/dto"
	schedulein "humanguard/internal/modules/schedule/port/in"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ShowConfig(ctx context.Context) (dto.RenderOutput, error) {
	return h.usecase.Render(ctx)
}

func (h CLIHandler) Evaluate(ctx context.Context) (dto.EvaluateOutput, error) {
	return h.usecase.Evaluate(ctx, dto.EvaluateInput{})
}
