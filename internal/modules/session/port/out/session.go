package out

import (
	"context"
	"time"

	"humanguard/internal/modules/session/domain"
)

// LedgerStore persists the whole session ledger. Load never fails on a
// missing or corrupt document; it yields an empty ledger instead.
type LedgerStore interface {
	Load(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}

// SentinelStore holds the small per-session files the hook layer updates
// while a session is live.
type SentinelStore interface {
	WriteActivity(ctx context.Context, sessionID string, at time.Time) error
	TakeActivity(ctx context.Context, sessionID string) (string, bool)
	TakeWorkSinceBreak(ctx context.Context, sessionID string) (int, bool)
}

type MarkerStore interface {
	Clear(ctx context.Context, sessionID string) (int, error)
}

type HistoryProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, summary domain.Summary) error
	List(ctx context.Context, limit int) ([]domain.Summary, error)
}
