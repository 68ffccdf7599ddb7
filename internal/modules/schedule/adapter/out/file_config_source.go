package out

import (
	"context"
	"log/slog"
	"os"

	"humanguard/internal/modules/schedule/domain"
	scheduleout "humanguard/internal/modules/schedule/port/out"
	"humanguard/internal/platform/document"
	apperrors "humanguard/internal/platform/errors"
)

type FileConfigSource struct {
	paths []string
}

func NewFileConfigSource(paths []string) scheduleout.ConfigSource {
	return &FileConfigSource{paths: append([]string(nil), paths...)}
}

// Load walks the search path in order. Unreadable files and documents
// without the framework marker are passed over.
func (s *FileConfigSource) Load(_ context.Context) (domain.Config, error) {
	for _, path := range s.paths {
		if path == "" {
			continue
		}
		payload, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Debug("skip unreadable config", "path", path, "error", err)
			}
			continue
		}
		doc := document.Parse(string(payload))
		cfg, ok := domain.FromDocument(doc)
		if !ok {
			slog.Debug("skip config without marker", "path", path, "top_level_keys", doc.Len())
			continue
		}
		cfg.Path = path
		return cfg, nil
	}
	return domain.Config{}, apperrors.ErrNoConfig
}
