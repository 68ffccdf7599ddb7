package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"humanguard/internal/modules/session/domain"
	sessionout "humanguard/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteHistoryProjector mirrors the ledger into a queryable table. The
// database is opened on first use so hook invocations that never read
// history do not touch it.
type SQLiteHistoryProjector struct {
	path string

	once    sync.Once
	db      *sql.DB
	openErr error
}

func NewSQLiteHistoryProjector(dbPath string) sessionout.HistoryProjector {
	return &SQLiteHistoryProjector{path: dbPath}
}

func (s *SQLiteHistoryProjector) open(ctx context.Context) (*sql.DB, error) {
	s.once.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			s.openErr = fmt.Errorf("create db dir: %w", err)
			return
		}
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			s.openErr = fmt.Errorf("open sqlite: %w", err)
			return
		}
		if err := ensureSchema(ctx, db); err != nil {
			db.Close()
			s.openErr = err
			return
		}
		s.db = db
	})
	return s.db, s.openErr
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  project_dir TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT,
  forced INTEGER NOT NULL,
  open INTEGER NOT NULL,
  duration_minutes INTEGER NOT NULL,
  work_since_break INTEGER
);
CREATE INDEX IF NOT EXISTS sessions_id ON sessions(id);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Reset(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Upsert(ctx context.Context, summary domain.Summary) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	const stmt = `
INSERT INTO sessions (position, id, project_dir, start_time, end_time, forced, open, duration_minutes, work_since_break)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(position) DO UPDATE SET
  id=excluded.id,
  project_dir=excluded.project_dir,
  start_time=excluded.start_time,
  end_time=excluded.end_time,
  forced=excluded.forced,
  open=excluded.open,
  duration_minutes=excluded.duration_minutes,
  work_since_break=excluded.work_since_break;
`
	var endTime sql.NullString
	if !summary.Open {
		endTime = sql.NullString{String: summary.EndTime, Valid: true}
	}
	var wsb sql.NullInt64
	if summary.WorkSinceBreak != nil {
		wsb = sql.NullInt64{Int64: int64(*summary.WorkSinceBreak), Valid: true}
	}
	_, err = db.ExecContext(ctx, stmt,
		summary.Position,
		summary.ID,
		summary.ProjectDir,
		summary.StartTime,
		endTime,
		summary.Forced,
		summary.Open,
		summary.DurationMin,
		wsb,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// List returns up to limit sessions, most recent ledger entries first.
// A limit of zero or less returns every row.
func (s *SQLiteHistoryProjector) List(ctx context.Context, limit int) ([]domain.Summary, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `
SELECT position, id, project_dir, start_time, end_time, forced, open, duration_minutes, work_since_break
FROM sessions ORDER BY position DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Summary
	for rows.Next() {
		var (
			summary domain.Summary
			endTime sql.NullString
			wsb     sql.NullInt64
		)
		if err := rows.Scan(&summary.Position, &summary.ID, &summary.ProjectDir, &summary.StartTime, &endTime, &summary.Forced, &summary.Open, &summary.DurationMin, &wsb); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		summary.EndTime = endTime.String
		if wsb.Valid {
			minutes := int(wsb.Int64)
			summary.WorkSinceBreak = &minutes
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (s *SQLiteHistoryProjector) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
