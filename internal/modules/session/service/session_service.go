package service

import (
	"context"
	"fmt"
	"time"

	"humanguard/internal/modules/session/domain"
	sessionout "humanguard/internal/modules/session/port/out"
	"humanguard/internal/platform/clock"
	apperrors "humanguard/internal/platform/errors"
	"humanguard/internal/platform/id"
	"humanguard/internal/platform/timestamp"
)

const maxIDAttempts = 16

type SessionService struct {
	clock     clock.Clock
	idGen     id.Generator
	ledger    sessionout.LedgerStore
	sentinels sessionout.SentinelStore
	markers   sessionout.MarkerStore
	history   sessionout.HistoryProjector
}

func NewSessionService(
	clock clock.Clock,
	idGen id.Generator,
	ledger sessionout.LedgerStore,
	sentinels sessionout.SentinelStore,
	markers sessionout.MarkerStore,
	history sessionout.HistoryProjector,
) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, ledger: ledger, sentinels: sentinels, markers: markers, history: history}
}

func (s *SessionService) Start(ctx context.Context, projectDir string, forced bool) (domain.Record, error) {
	ledger, err := s.ledger.Load(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	sessionID, err := s.uniqueID(ledger)
	if err != nil {
		return domain.Record{}, err
	}
	record := domain.NewRecord(sessionID, projectDir, forced, s.clock.Now())
	ledger.Sessions = append(ledger.Sessions, record)
	if err := s.ledger.Save(ctx, ledger); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func (s *SessionService) uniqueID(ledger domain.Ledger) (string, error) {
	taken := ledger.IDs()
	for range maxIDAttempts {
		candidate := s.idGen.New()
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("generate session id: %d collisions", maxIDAttempts)
}

// End closes the most recent open record with sessionID. The ledger is
// rewritten and the id's markers cleared even when no such record exists;
// found reports whether one did.
func (s *SessionService) End(ctx context.Context, sessionID string) (record domain.Record, found bool, err error) {
	if sessionID == "" {
		return domain.Record{}, false, fmt.Errorf("end session: %w", apperrors.ErrInvalidSessionID)
	}
	ledger, err := s.ledger.Load(ctx)
	if err != nil {
		return domain.Record{}, false, err
	}
	if idx := ledger.LastOpen(sessionID); idx >= 0 {
		target := &ledger.Sessions[idx]
		end := timestamp.Format(s.clock.Now())
		target.Close(end)
		activity := end
		if recorded, ok := s.sentinels.TakeActivity(ctx, sessionID); ok {
			activity = recorded
		}
		target.LastActivity = &activity
		if minutes, ok := s.sentinels.TakeWorkSinceBreak(ctx, sessionID); ok {
			target.WorkSinceBreak = &minutes
		}
		record, found = *target, true
	}
	if err := s.ledger.Save(ctx, ledger); err != nil {
		return domain.Record{}, false, err
	}
	if _, err := s.markers.Clear(ctx, sessionID); err != nil {
		return domain.Record{}, false, err
	}
	return record, found, nil
}

func (s *SessionService) Touch(ctx context.Context, sessionID string) (time.Time, error) {
	now := s.clock.Now()
	if err := s.sentinels.WriteActivity(ctx, sessionID, now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// CleanupOrphans closes abandoned sessions as of now and always rewrites
// the ledger. A zero now samples the clock.
func (s *SessionService) CleanupOrphans(ctx context.Context, now time.Time) ([]string, error) {
	if now.IsZero() {
		now = s.clock.Now()
	}
	ledger, err := s.ledger.Load(ctx)
	if err != nil {
		return nil, err
	}
	closed := ledger.CloseOrphans(now)
	if err := s.ledger.Save(ctx, ledger); err != nil {
		return nil, err
	}
	for _, sessionID := range closed {
		if sessionID == "" {
			continue
		}
		if _, err := s.markers.Clear(ctx, sessionID); err != nil {
			return nil, err
		}
	}
	return closed, nil
}

func (s *SessionService) CheckBreak(ctx context.Context, minBreak, maxContinuous int, now time.Time) (domain.BreakStatus, error) {
	if now.IsZero() {
		now = s.clock.Now()
	}
	ledger, err := s.ledger.Load(ctx)
	if err != nil {
		return domain.BreakStatus{}, err
	}
	return ledger.CheckBreak(minBreak, maxContinuous, now), nil
}

// Reindex rebuilds the history projection from the ledger.
func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	if s.history == nil {
		return 0, fmt.Errorf("history projector is not configured")
	}
	ledger, err := s.ledger.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.history.Reset(ctx); err != nil {
		return 0, err
	}
	summaries := ledger.Summarize()
	for _, summary := range summaries {
		if err := s.history.Upsert(ctx, summary); err != nil {
			return 0, err
		}
	}
	return len(summaries), nil
}

func (s *SessionService) History(ctx context.Context, limit int) ([]domain.Summary, error) {
	if limit < 0 {
		return nil, fmt.Errorf("history limit %d: %w", limit, apperrors.ErrInvalidInput)
	}
	if _, err := s.Reindex(ctx); err != nil {
		return nil, err
	}
	return s.history.List(ctx, limit)
}
