package out

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"humanguard/internal/modules/session/domain"
	sessionout "humanguard/internal/modules/session/port/out"
)

const markerPrefix = ".notified."

// FileMarkerStore removes the one-shot notification markers the hook layer
// creates as empty directories named .notified.<kind>.<id>. Kinds never
// contain a dot, so everything after the kind is the id.
type FileMarkerStore struct {
	dir string
}

func NewFileMarkerStore(guardDir string) sessionout.MarkerStore {
	return &FileMarkerStore{dir: guardDir}
}

func (s *FileMarkerStore) Clear(_ context.Context, sessionID string) (int, error) {
	if !domain.SafeID(sessionID) {
		return 0, nil
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, markerPrefix+"*."+sessionID))
	if err != nil {
		return 0, fmt.Errorf("glob markers: %w", err)
	}
	removed := 0
	for _, marker := range matches {
		if !ownsMarker(filepath.Base(marker), sessionID) {
			continue
		}
		if err := os.Remove(marker); err != nil {
			slog.Debug("marker not removed", "path", marker, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

func ownsMarker(name, sessionID string) bool {
	kind, id, ok := strings.Cut(strings.TrimPrefix(name, markerPrefix), ".")
	return ok && kind != "" && id == sessionID
}
