package out

import (
	"context"

	"humanguard/internal/modules/schedule/domain"
)

// ConfigSource resolves the active guard configuration. It returns
// apperrors.ErrNoConfig when no usable document exists.
type ConfigSource interface {
	Load(ctx context.Context) (domain.Config, error)
}
