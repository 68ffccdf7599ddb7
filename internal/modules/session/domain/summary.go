package domain

// Summary is the flattened view of a record kept in the history index.
type Summary struct {
	Position       int
	ID             string
	ProjectDir     string
	StartTime      string
	EndTime        string
	Forced         bool
	Open           bool
	DurationMin    int
	WorkSinceBreak *int
}

// Summarize flattens the decodable records of the ledger, keeping their
// ledger position. Durations are wall-clock minutes and zero when either
// bound does not parse.
func (l Ledger) Summarize() []Summary {
	out := make([]Summary, 0, len(l.Sessions))
	for i, record := range l.Sessions {
		if !record.Valid() {
			continue
		}
		summary := Summary{
			Position:       i,
			ID:             record.ID,
			ProjectDir:     record.ProjectDir,
			StartTime:      record.StartTime,
			Forced:         record.Forced,
			Open:           record.EndTime == nil,
			WorkSinceBreak: record.WorkSinceBreak,
		}
		if record.EndTime != nil {
			summary.EndTime = *record.EndTime
		}
		start, startErr := record.Start()
		end, endErr := record.End()
		if startErr == nil && endErr == nil && end.After(start) {
			summary.DurationMin = int(end.Sub(start).Minutes())
		}
		out = append(out, summary)
	}
	return out
}
