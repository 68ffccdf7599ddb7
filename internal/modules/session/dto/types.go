package dto

import "time"

type StartInput struct {
	ProjectDir string
	Forced     bool
}

type StartOutput struct {
	SessionID string
	StartTime string
}

type EndInput struct {
	SessionID string
}

type EndOutput struct {
	SessionID      string
	Found          bool
	EndTime        string
	LastActivity   string
	WorkSinceBreak *int
}

type TouchInput struct {
	SessionID string
}

type TouchOutput struct {
	SessionID string
	At        time.Time
}

type CleanupInput struct {
	At time.Time
}

type CleanupOutput struct {
	Closed []string
}

type BreakInput struct {
	MinBreakMinutes      int
	MaxContinuousMinutes int
	At                   time.Time
}

type BreakOutput struct {
	OK          bool
	MinutesLeft int
}

type HistoryInput struct {
	Limit int
}

type SessionSummary struct {
	ID             string
	ProjectDir     string
	StartTime      string
	EndTime        string
	Open           bool
	Forced         bool
	DurationMin    int
	WorkSinceBreak *int
}

type ReindexOutput struct {
	Indexed int
}
