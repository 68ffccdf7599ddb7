package domain

import (
	"math"
	"time"

	"humanguard/internal/platform/timestamp"
)

// OrphanThreshold is how long a session may stay open before cleanup
// treats it as abandoned.
const OrphanThreshold = 4 * time.Hour

type Ledger struct {
	Sessions []Record `json:"sessions"`
}

func (l Ledger) IDs() map[string]bool {
	ids := make(map[string]bool, len(l.Sessions))
	for _, record := range l.Sessions {
		if record.Valid() {
			ids[record.ID] = true
		}
	}
	return ids
}

// LastOpen returns the index of the most recent open record with id, or -1.
func (l Ledger) LastOpen(id string) int {
	for i := len(l.Sessions) - 1; i >= 0; i-- {
		if l.Sessions[i].Open() && l.Sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// CloseOrphans closes open records older than OrphanThreshold, using the
// start time as a synthetic end. Records whose start does not parse are
// closed the same way, or at now when they carry no start at all. It
// returns the ids of the records it closed.
func (l *Ledger) CloseOrphans(now time.Time) []string {
	wall := timestamp.Wall(now)
	var closed []string
	for i := range l.Sessions {
		record := &l.Sessions[i]
		if !record.Open() {
			continue
		}
		start, err := record.Start()
		switch {
		case err != nil && record.StartTime == "":
			record.Close(timestamp.Format(now))
		case err != nil, wall.Sub(start) > OrphanThreshold:
			record.Close(record.StartTime)
		default:
			continue
		}
		closed = append(closed, record.ID)
	}
	return closed
}

type BreakStatus struct {
	OK          bool
	MinutesLeft int
}

// CheckBreak decides whether the operator has rested enough to start
// working again. A break is only owed once work accumulated since the last
// real break (a gap of at least minBreak minutes) reaches maxContinuous.
func (l Ledger) CheckBreak(minBreak, maxContinuous int, now time.Time) BreakStatus {
	wall := timestamp.Wall(now)
	ok := BreakStatus{OK: true}
	threshold := float64(minBreak)

	for _, record := range l.Sessions {
		if !record.Open() || record.StartTime == "" {
			continue
		}
		start, err := record.Start()
		if err != nil {
			continue
		}
		if age := wall.Sub(start); age >= 0 && age < OrphanThreshold {
			return ok
		}
	}

	var (
		cumulative      float64
		lastInteraction *time.Time
		prevStart       *time.Time
	)
	for i := len(l.Sessions) - 1; i >= 0; i-- {
		record := l.Sessions[i]
		if !record.Valid() || record.EndTime == nil || *record.EndTime == "" || record.StartTime == "" {
			continue
		}
		start, err := record.Start()
		if err != nil {
			continue
		}
		end, err := record.End()
		if err != nil {
			continue
		}
		interaction, err := record.Interaction()
		if err != nil {
			continue
		}
		if prevStart != nil && prevStart.Sub(interaction).Minutes() >= threshold {
			break
		}
		duration := end.Sub(start).Minutes()
		if record.WorkSinceBreak != nil {
			duration = float64(*record.WorkSinceBreak)
		}
		if duration < threshold {
			prevStart = &start
			continue
		}
		cumulative += duration
		if lastInteraction == nil {
			lastInteraction = &interaction
		}
		prevStart = &start
	}

	if lastInteraction == nil || cumulative < float64(maxContinuous) {
		return ok
	}
	elapsed := wall.Sub(*lastInteraction).Minutes()
	if elapsed >= threshold {
		return ok
	}
	return BreakStatus{OK: false, MinutesLeft: int(math.Ceil(threshold - elapsed))}
}
