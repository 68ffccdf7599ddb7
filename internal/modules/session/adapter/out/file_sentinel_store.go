package out

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"humanguard/internal/modules/session/domain"
	sessionout "humanguard/internal/modules/session/port/out"
	apperrors "humanguard/internal/platform/errors"
	"humanguard/internal/platform/timestamp"
)

const (
	activityPrefix       = ".activity."
	workSinceBreakPrefix = ".work-since-break."
)

type FileSentinelStore struct {
	dir string
}

func NewFileSentinelStore(guardDir string) sessionout.SentinelStore {
	return &FileSentinelStore{dir: guardDir}
}

func (s *FileSentinelStore) WriteActivity(_ context.Context, sessionID string, at time.Time) error {
	if !domain.SafeID(sessionID) {
		return fmt.Errorf("touch %q: %w", sessionID, apperrors.ErrInvalidSessionID)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create guard dir: %w", err)
	}
	path := filepath.Join(s.dir, activityPrefix+sessionID)
	if err := os.WriteFile(path, []byte(timestamp.Format(at)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write activity sentinel: %w", err)
	}
	return nil
}

func (s *FileSentinelStore) TakeActivity(_ context.Context, sessionID string) (string, bool) {
	content, ok := s.take(activityPrefix, sessionID)
	if !ok || content == "" {
		return "", false
	}
	return content, true
}

func (s *FileSentinelStore) TakeWorkSinceBreak(_ context.Context, sessionID string) (int, bool) {
	content, ok := s.take(workSinceBreakPrefix, sessionID)
	if !ok {
		return 0, false
	}
	minutes, err := strconv.Atoi(content)
	if err != nil {
		slog.Debug("ignore malformed work-since-break sentinel", "session", sessionID, "content", content)
		return 0, false
	}
	return minutes, true
}

// take reads and removes a sentinel. The file is removed even when its
// content turns out to be unusable.
func (s *FileSentinelStore) take(prefix, sessionID string) (string, bool) {
	if !domain.SafeID(sessionID) {
		return "", false
	}
	path := filepath.Join(s.dir, prefix+sessionID)
	payload, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("sentinel unreadable", "path", path, "error", err)
		}
		return "", false
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Debug("sentinel not removed", "path", path, "error", err)
	}
	return strings.TrimSpace(string(payload)), true
}
