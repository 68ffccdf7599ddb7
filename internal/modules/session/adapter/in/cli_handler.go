package in

import (
	"context"

	sessiondto "humanguard/internal/modules/session/dto"
	sessionin "humanguard/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, projectDir string, forced bool) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{ProjectDir: projectDir, Forced: forced})
}

func (h CLIHandler) End(ctx context.Context, sessionID string) (sessiondto.EndOutput, error) {
	return h.usecase.End(ctx, sessiondto.EndInput{SessionID: sessionID})
}

func (h CLIHandler) Touch(ctx context.Context, sessionID string) (sessiondto.TouchOutput, error) {
	return h.usecase.Touch(ctx, sessiondto.TouchInput{SessionID: sessionID})
}

func (h CLIHandler) Cleanup(ctx context.Context) (sessiondto.CleanupOutput, error) {
	return h.usecase.CleanupOrphans(ctx, sessiondto.CleanupInput{})
}

func (h CLIHandler) CheckBreak(ctx context.Context, minBreak, maxContinuous int) (sessiondto.BreakOutput, error) {
	return h.usecase.CheckBreak(ctx, sessiondto.BreakInput{MinBreakMinutes: minBreak, MaxContinuousMinutes: maxContinuous})
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]sessiondto.SessionSummary, error) {
	return h.usecase.History(ctx, sessiondto.HistoryInput{Limit: limit})
}

func (h CLIHandler) Reindex(ctx context.Context) (sessiondto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
