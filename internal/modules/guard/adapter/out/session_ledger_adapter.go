package out

import (
	"context"
	"time"

	"humanguard/internal/modules/guard/domain"
	guardout "humanguard/internal/modules/guard/port/out"
	sessiondto "humanguard/internal/modules/session/dto"
	sessionin "humanguard/internal/modules/session/port/in"
)

type SessionLedgerAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionLedgerAdapter(sessions sessionin.Usecase) guardout.SessionLedger {
	return &SessionLedgerAdapter{sessions: sessions}
}

func (a *SessionLedgerAdapter) CleanupOrphans(ctx context.Context, at time.Time) error {
	_, err := a.sessions.CleanupOrphans(ctx, sessiondto.CleanupInput{At: at})
	return err
}

func (a *SessionLedgerAdapter) CheckBreak(ctx context.Context, minBreak, maxContinuous int, at time.Time) (domain.BreakStatus, error) {
	out, err := a.sessions.CheckBreak(ctx, sessiondto.BreakInput{MinBreakMinutes: minBreak, MaxContinuousMinutes: maxContinuous, At: at})
	if err != nil {
		return domain.BreakStatus{}, err
	}
	return domain.BreakStatus{OK: out.OK, MinutesLeft: out.MinutesLeft}, nil
}
