package out

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"humanguard/internal/modules/session/domain"
	sessionout "humanguard/internal/modules/session/port/out"
)

type JSONLedgerStore struct {
	path string
}

func NewJSONLedgerStore(path string) sessionout.LedgerStore {
	return &JSONLedgerStore{path: path}
}

func (s *JSONLedgerStore) Load(_ context.Context) (domain.Ledger, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("ledger unreadable, starting empty", "path", s.path, "error", err)
		}
		return domain.Ledger{}, nil
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(payload, &top); err != nil {
		slog.Debug("ledger corrupt, starting empty", "path", s.path, "error", err)
		return domain.Ledger{}, nil
	}
	sessions, ok := top["sessions"]
	if !ok {
		return domain.Ledger{}, nil
	}
	ledger := domain.Ledger{}
	if err := json.Unmarshal(sessions, &ledger.Sessions); err != nil {
		slog.Debug("ledger sessions malformed, starting empty", "path", s.path, "error", err)
		return domain.Ledger{}, nil
	}
	return ledger, nil
}

// Save replaces the ledger through a temp file in the same directory so
// readers never observe a partially written document.
func (s *JSONLedgerStore) Save(_ context.Context, ledger domain.Ledger) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}
	if ledger.Sessions == nil {
		ledger.Sessions = []domain.Record{}
	}
	payload, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-log-*.json")
	if err != nil {
		return fmt.Errorf("create ledger temp: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close ledger temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
