package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	sessionout "humanguard/internal/modules/session/adapter/out"
)

func TestMarkerClearLeavesOtherSessionsAlone(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{".notified.session_limit.a", ".notified.warn_80.a", ".notified.k.x.a", ".notified.session_limit.ba"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
	}
	store := sessionout.NewFileMarkerStore(dir)

	removed, err := store.Clear(context.Background(), "a")
	if err != nil {
		t.Fatalf("clear markers: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	for _, kept := range []string{".notified.k.x.a", ".notified.session_limit.ba"} {
		if _, err := os.Stat(filepath.Join(dir, kept)); err != nil {
			t.Fatalf("%s should survive: %v", kept, err)
		}
	}
}

func TestMarkerClearDottedID(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{".notified.k.x.a", ".notified.k.a"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
	}

	removed, err := sessionout.NewFileMarkerStore(dir).Clear(context.Background(), "x.a")
	if err != nil {
		t.Fatalf("clear markers: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(filepath.Join(dir, ".notified.k.x.a")); !os.IsNotExist(err) {
		t.Fatalf("own marker should be gone, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".notified.k.a")); err != nil {
		t.Fatalf("marker of session a should survive: %v", err)
	}
}
