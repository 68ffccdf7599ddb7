package dto

import (
	"time"

	"humanguard/internal/modules/schedule/domain"
)

type ConfigOutput struct {
	Path   string
	Config domain.Config
}

type EvaluateInput struct {
	At time.Time
}

type EvaluateOutput struct {
	Path    string
	Config  domain.Config
	Verdict domain.Verdict
	At      time.Time
}

type RenderOutput struct {
	Path string
	YAML string
}
