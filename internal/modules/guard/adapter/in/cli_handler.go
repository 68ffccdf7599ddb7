package in

import (
	"context"

	"humanguard/internal/modules/guard/dto"
	guardin "humanguard/internal/modules/guard/port/in"
)

type CLIHandler struct {
	usecase guardin.Usecase
}

func NewCLIHandler(usecase guardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context, force bool) (dto.ReportOutput, error) {
	return h.usecase.Check(ctx, dto.CheckInput{Force: force})
}

func (h CLIHandler) Status(ctx context.Context) (dto.ReportOutput, error) {
	return h.usecase.Status(ctx)
}
