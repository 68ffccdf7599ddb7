package in

import (
	"context"

	"humanguard/internal/modules/guard/dto"
)

type Usecase interface {
	Check(ctx context.Context, input dto.CheckInput) (dto.ReportOutput, error)
	Status(ctx context.Context) (dto.ReportOutput, error)
}
