package in

import (
	"context"

	"humanguard/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	End(ctx context.Context, input dto.EndInput) (dto.EndOutput, error)
	Touch(ctx context.Context, input dto.TouchInput) (dto.TouchOutput, error)
	CleanupOrphans(ctx context.Context, input dto.CleanupInput) (dto.CleanupOutput, error)
	CheckBreak(ctx context.Context, input dto.BreakInput) (dto.BreakOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.SessionSummary, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
