package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"humanguard/internal/modules/guard/domain"
	guardout "humanguard/internal/modules/guard/port/out"
)

type JSONStateWriter struct {
	path string
}

func NewJSONStateWriter(path string) guardout.StateWriter {
	return &JSONStateWriter{path: path}
}

func (w *JSONStateWriter) Write(_ context.Context, snapshot domain.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}
	if err := os.WriteFile(w.path, payload, 0o644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
