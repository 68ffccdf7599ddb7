package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"humanguard/internal/platform/timestamp"
)

// Record is one entry of the session ledger. Entries that do not decode as
// a record are kept verbatim in raw so a rewrite never loses them.
type Record struct {
	ID             string
	StartTime      string
	EndTime        *string
	ProjectDir     string
	Forced         bool
	LastActivity   *string
	WorkSinceBreak *int

	extra map[string]json.RawMessage
	raw   json.RawMessage
}

var knownFields = []string{"id", "start_time", "end_time", "project_dir", "forced", "last_activity", "work_since_break"}

func NewRecord(id, projectDir string, forced bool, at time.Time) Record {
	return Record{ID: id, StartTime: timestamp.Format(at), ProjectDir: projectDir, Forced: forced}
}

// Valid reports whether the entry decoded as a record.
func (r Record) Valid() bool { return r.raw == nil }

func (r Record) Open() bool { return r.Valid() && r.EndTime == nil }

func (r *Record) Close(end string) {
	r.EndTime = &end
}

// Start returns the wall-clock start reading.
func (r Record) Start() (time.Time, error) {
	return timestamp.ParseWall(r.StartTime)
}

func (r Record) End() (time.Time, error) {
	if r.EndTime == nil {
		return time.Time{}, fmt.Errorf("session %s is open", r.ID)
	}
	return timestamp.ParseWall(*r.EndTime)
}

// Interaction is the last moment the operator was active: last_activity
// when it parses, else end_time.
func (r Record) Interaction() (time.Time, error) {
	if r.LastActivity != nil && *r.LastActivity != "" {
		if t, err := timestamp.ParseWall(*r.LastActivity); err == nil {
			return t, nil
		}
	}
	return r.End()
}

func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		r.raw = append(json.RawMessage(nil), data...)
		return nil
	}
	if err := r.decodeFields(fields); err != nil {
		*r = Record{raw: append(json.RawMessage(nil), data...)}
	}
	return nil
}

func (r *Record) decodeFields(fields map[string]json.RawMessage) error {
	for key, value := range fields {
		var err error
		switch key {
		case "id":
			err = json.Unmarshal(value, &r.ID)
		case "start_time":
			err = json.Unmarshal(value, &r.StartTime)
		case "end_time":
			r.EndTime, err = optional[string](value)
		case "project_dir":
			err = json.Unmarshal(value, &r.ProjectDir)
		case "forced":
			err = json.Unmarshal(value, &r.Forced)
		case "last_activity":
			r.LastActivity, err = optional[string](value)
		case "work_since_break":
			r.WorkSinceBreak, err = optional[int](value)
		default:
			if r.extra == nil {
				r.extra = map[string]json.RawMessage{}
			}
			r.extra[key] = value
		}
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
	}
	return nil
}

func optional[T any](value json.RawMessage) (*T, error) {
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// MarshalJSON writes known fields in ledger order followed by any fields
// this version does not understand. end_time is always present.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.raw != nil {
		return r.raw, nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value any) error {
		payload, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(key)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(payload)
		return nil
	}
	pairs := []struct {
		key   string
		value any
		skip  bool
	}{
		{"id", r.ID, false},
		{"start_time", r.StartTime, false},
		{"end_time", r.EndTime, false},
		{"project_dir", r.ProjectDir, false},
		{"forced", r.Forced, false},
		{"last_activity", r.LastActivity, r.LastActivity == nil},
		{"work_since_break", r.WorkSinceBreak, r.WorkSinceBreak == nil},
	}
	for _, pair := range pairs {
		if pair.skip {
			continue
		}
		if err := write(pair.key, pair.value); err != nil {
			return nil, err
		}
	}
	keys := make([]string, 0, len(r.extra))
	for key := range r.extra {
		if !slices.Contains(knownFields, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	for _, key := range keys {
		if err := write(key, r.extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SafeID reports whether id can be embedded in a sentinel or marker file
// name without escaping the guard directory.
func SafeID(id string) bool {
	if id == "" || id == "." || id == ".." || len(id) > 64 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
