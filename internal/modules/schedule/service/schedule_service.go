package service

import (
	"context"
	"fmt"
	"time"

	"humanguard/internal/modules/schedule/domain"
	scheduleout "humanguard/internal/modules/schedule/port/out"
	"humanguard/internal/platform/clock"

	"gopkg.in/yaml.v3"
)

type ScheduleService struct {
	clock  clock.Clock
	source scheduleout.ConfigSource
}

func NewScheduleService(clock clock.Clock, source scheduleout.ConfigSource) *ScheduleService {
	return &ScheduleService{clock: clock, source: source}
}

func (s *ScheduleService) Load(ctx context.Context) (domain.Config, error) {
	return s.source.Load(ctx)
}

// Evaluate loads the configuration and judges at in the configured zone.
// A zero at samples the clock.
func (s *ScheduleService) Evaluate(ctx context.Context, at time.Time) (domain.Config, domain.Verdict, time.Time, error) {
	cfg, err := s.source.Load(ctx)
	if err != nil {
		return domain.Config{}, domain.Verdict{}, time.Time{}, err
	}
	if at.IsZero() {
		at = s.clock.Now()
	}
	at = at.In(cfg.Location())
	return cfg, domain.Evaluate(cfg.Schedule, at), at, nil
}

func (s *ScheduleService) Render(ctx context.Context) (domain.Config, string, error) {
	cfg, err := s.source.Load(ctx)
	if err != nil {
		return domain.Config{}, "", err
	}
	payload, err := yaml.Marshal(cfg.Document)
	if err != nil {
		return domain.Config{}, "", fmt.Errorf("render config: %w", err)
	}
	return cfg, string(payload), nil
}
