package out

import (
	"context"
	"time"

	"humanguard/internal/modules/guard/domain"
	guardout "humanguard/internal/modules/guard/port/out"
	scheduledto "humanguard/internal/modules/schedule/dto"
	schedulein "humanguard/internal/modules/schedule/port/in"
)

type ScheduleReaderAdapter struct {
	schedule schedulein.Usecase
}

func NewScheduleReaderAdapter(schedule schedulein.Usecase) guardout.ScheduleReader {
	return &ScheduleReaderAdapter{schedule: schedule}
}

func (a *ScheduleReaderAdapter) Evaluate(ctx context.Context, at time.Time) (domain.Evaluation, error) {
	out, err := a.schedule.Evaluate(ctx, scheduledto.EvaluateInput{At: at})
	if err != nil {
		return domain.Evaluation{}, err
	}
	return domain.Evaluation{Config: out.Config, Verdict: out.Verdict, At: out.At}, nil
}
