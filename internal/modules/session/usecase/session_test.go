package usecase_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	sessionout "humanguard/internal/modules/session/adapter/out"
	sessiondto "humanguard/internal/modules/session/dto"
	sessionin "humanguard/internal/modules/session/port/in"
	"humanguard/internal/modules/session/service"
	"humanguard/internal/modules/session/usecase"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fakeID struct {
	values []string
	idx    int
}

func (f *fakeID) New() string {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type fixture struct {
	uc       sessionin.Usecase
	guardDir string
	ledger   string
}

func newFixture(t *testing.T, clk *fakeClock, ids ...string) fixture {
	t.Helper()
	home := t.TempDir()
	guardDir := filepath.Join(home, "human-guard")
	ledger := filepath.Join(home, "session-log.json")
	if len(ids) == 0 {
		ids = []string{"sess0001"}
	}
	svc := service.NewSessionService(
		clk,
		&fakeID{values: ids},
		sessionout.NewJSONLedgerStore(ledger),
		sessionout.NewFileSentinelStore(guardDir),
		sessionout.NewFileMarkerStore(guardDir),
		sessionout.NewSQLiteHistoryProjector(filepath.Join(guardDir, "history.db")),
	)
	return fixture{uc: usecase.NewInteractor(svc), guardDir: guardDir, ledger: ledger}
}

func (f fixture) sessions(t *testing.T) []map[string]any {
	t.Helper()
	payload, err := os.ReadFile(f.ledger)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	var doc struct {
		Sessions []map[string]any `json:"sessions"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("decode ledger: %v", err)
	}
	return doc.Sessions
}

func (f fixture) write(t *testing.T, name, content string) {
	t.Helper()
	if err := os.MkdirAll(f.guardDir, 0o755); err != nil {
		t.Fatalf("mkdir guard dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(f.guardDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func (f fixture) marker(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.guardDir, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("create marker: %v", err)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var (
	startAt = time.Date(2026, 2, 27, 21, 0, 0, 0, time.FixedZone("CET", 3600))
	endAt   = time.Date(2026, 2, 27, 22, 30, 0, 0, time.FixedZone("CET", 3600))
)

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{startAt, endAt}})
	ctx := context.Background()

	start, err := f.uc.Start(ctx, sessiondto.StartInput{ProjectDir: "/tmp/project"})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if start.SessionID != "sess0001" || start.StartTime != "2026-02-27T21:00:00+01:00" {
		t.Fatalf("unexpected start %+v", start)
	}
	records := f.sessions(t)
	if len(records) != 1 || records[0]["end_time"] != nil || records[0]["project_dir"] != "/tmp/project" {
		t.Fatalf("unexpected ledger after start %v", records)
	}

	f.write(t, ".activity.sess0001", "2026-02-27T22:28:00\n")
	f.write(t, ".work-since-break.sess0001", "88\n")
	end, err := f.uc.End(ctx, sessiondto.EndInput{SessionID: start.SessionID})
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if !end.Found || end.EndTime != "2026-02-27T22:30:00+01:00" || end.LastActivity != "2026-02-27T22:28:00" {
		t.Fatalf("unexpected end %+v", end)
	}
	records = f.sessions(t)
	if records[0]["work_since_break"] != float64(88) || records[0]["last_activity"] != "2026-02-27T22:28:00" {
		t.Fatalf("sentinels not stored: %v", records[0])
	}
	if exists(filepath.Join(f.guardDir, ".activity.sess0001")) || exists(filepath.Join(f.guardDir, ".work-since-break.sess0001")) {
		t.Fatalf("sentinels should be consumed")
	}
}

func TestEndWithoutSentinelsUsesEndTime(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{startAt, endAt}})
	ctx := context.Background()
	start, err := f.uc.Start(ctx, sessiondto.StartInput{ProjectDir: "/tmp"})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	f.write(t, ".work-since-break.sess0001", "lots\n")
	if _, err := f.uc.End(ctx, sessiondto.EndInput{SessionID: start.SessionID}); err != nil {
		t.Fatalf("end session: %v", err)
	}
	record := f.sessions(t)[0]
	if record["last_activity"] != record["end_time"] {
		t.Fatalf("last_activity should equal end_time, got %v", record)
	}
	if _, ok := record["work_since_break"]; ok {
		t.Fatalf("malformed work-since-break must not be stored: %v", record)
	}
	if exists(filepath.Join(f.guardDir, ".work-since-break.sess0001")) {
		t.Fatalf("malformed sentinel should still be removed")
	}
}

func TestEndUnknownSessionStillClearsMarkers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{endAt}})
	marker := f.marker(t, ".notified.session_limit.ghost")
	out, err := f.uc.End(context.Background(), sessiondto.EndInput{SessionID: "ghost"})
	if err != nil {
		t.Fatalf("end unknown session: %v", err)
	}
	if out.Found {
		t.Fatalf("ghost session should not be found")
	}
	if exists(marker) {
		t.Fatalf("marker should be removed")
	}
	if records := f.sessions(t); len(records) != 0 {
		t.Fatalf("ledger should be written empty, got %v", records)
	}
}

func TestEndOnlyClearsOwnMarkers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{startAt, startAt, endAt}}, "aaaa0001", "bbbb0002")
	ctx := context.Background()
	a, err := f.uc.Start(ctx, sessiondto.StartInput{ProjectDir: "/tmp"})
	if err != nil {
		t.Fatalf("start a: %v", err)
	}
	b, err := f.uc.Start(ctx, sessiondto.StartInput{ProjectDir: "/tmp"})
	if err != nil {
		t.Fatalf("start b: %v", err)
	}
	ownLimit := f.marker(t, ".notified.session_limit."+a.SessionID)
	ownWarn := f.marker(t, ".notified.warn_80."+a.SessionID)
	other := f.marker(t, ".notified.session_limit."+b.SessionID)
	if _, err := f.uc.End(ctx, sessiondto.EndInput{SessionID: a.SessionID}); err != nil {
		t.Fatalf("end a: %v", err)
	}
	if exists(ownLimit) || exists(ownWarn) {
		t.Fatalf("own markers should be removed")
	}
	if !exists(other) {
		t.Fatalf("other session's marker must survive")
	}
}

func TestStartRegeneratesCollidingID(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{startAt}}, "dup00001", "dup00001", "new00002")
	ctx := context.Background()
	first, err := f.uc.Start(ctx, sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	second, err := f.uc.Start(ctx, sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if first.SessionID != "dup00001" || second.SessionID != "new00002" {
		t.Fatalf("expected regenerated id, got %s and %s", first.SessionID, second.SessionID)
	}
}

func TestTouchWritesSentinelOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{endAt}})
	if _, err := f.uc.Touch(context.Background(), sessiondto.TouchInput{SessionID: "sess0001"}); err != nil {
		t.Fatalf("touch: %v", err)
	}
	payload, err := os.ReadFile(filepath.Join(f.guardDir, ".activity.sess0001"))
	if err != nil {
		t.Fatalf("read sentinel: %v", err)
	}
	if string(payload) != "2026-02-27T22:30:00+01:00\n" {
		t.Fatalf("unexpected sentinel %q", payload)
	}
	if exists(f.ledger) {
		t.Fatalf("touch must not write the ledger")
	}
	if _, err := f.uc.Touch(context.Background(), sessiondto.TouchInput{SessionID: "../escape"}); err == nil {
		t.Fatalf("unsafe id should be rejected")
	}
}

func TestCleanupClosesOrphansAndMarkers(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{endAt}})
	if err := os.WriteFile(f.ledger, []byte(`{"sessions":[{"id":"orphan1","start_time":"2026-02-22T06:00:00+00:00","end_time":null,"project_dir":"/tmp","forced":false}]}`), 0o644); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	limit := f.marker(t, ".notified.session_limit.orphan1")
	warn := f.marker(t, ".notified.warn_80.orphan1")
	out, err := f.uc.CleanupOrphans(context.Background(), sessiondto.CleanupInput{At: time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if len(out.Closed) != 1 || out.Closed[0] != "orphan1" {
		t.Fatalf("unexpected closed %v", out.Closed)
	}
	if f.sessions(t)[0]["end_time"] != "2026-02-22T06:00:00+00:00" {
		t.Fatalf("orphan should be closed at start time")
	}
	if exists(limit) || exists(warn) {
		t.Fatalf("orphan markers should be removed")
	}
}

func TestCorruptLedgerReadsEmpty(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{endAt}})
	for _, content := range []string{"not json at all {{{", `{"other":1}`, `{"sessions":"nope"}`, `[]`} {
		if err := os.WriteFile(f.ledger, []byte(content), 0o644); err != nil {
			t.Fatalf("seed ledger: %v", err)
		}
		out, err := f.uc.CheckBreak(context.Background(), sessiondto.BreakInput{MinBreakMinutes: 15, MaxContinuousMinutes: 150})
		if err != nil {
			t.Fatalf("check break on %q: %v", content, err)
		}
		if !out.OK {
			t.Fatalf("corrupt ledger %q should read as empty", content)
		}
	}
}

func TestHistoryListsMostRecentFirst(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &fakeClock{values: []time.Time{endAt}})
	seed := `{"sessions":[
{"id":"a","start_time":"2026-02-27T09:00:00","end_time":"2026-02-27T10:30:00","project_dir":"/one","forced":false},
"junk",
{"id":"b","start_time":"2026-02-27T11:00:00","end_time":"2026-02-27T11:20:00","project_dir":"/two","forced":true,"work_since_break":12},
{"id":"c","start_time":"2026-02-27T12:00:00","end_time":null,"project_dir":"/three","forced":false}
]}`
	if err := os.WriteFile(f.ledger, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed ledger: %v", err)
	}
	ctx := context.Background()
	reindexed, err := f.uc.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if reindexed.Indexed != 3 {
		t.Fatalf("expected 3 indexed sessions, got %d", reindexed.Indexed)
	}
	history, err := f.uc.History(ctx, sessiondto.HistoryInput{Limit: 2})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 || history[0].ID != "c" || history[1].ID != "b" {
		t.Fatalf("unexpected history %+v", history)
	}
	if !history[0].Open || history[0].EndTime != "" {
		t.Fatalf("open session should have no end %+v", history[0])
	}
	if !history[1].Forced || history[1].DurationMin != 20 || history[1].WorkSinceBreak == nil || *history[1].WorkSinceBreak != 12 {
		t.Fatalf("unexpected closed summary %+v", history[1])
	}
	all, err := f.uc.History(ctx, sessiondto.HistoryInput{})
	if err != nil {
		t.Fatalf("full history: %v", err)
	}
	if len(all) != 3 || all[2].DurationMin != 90 {
		t.Fatalf("unexpected full history %+v", all)
	}
}
