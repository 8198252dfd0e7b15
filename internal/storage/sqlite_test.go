package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/coinrun/internal/config"
	"github.com/vovakirdan/coinrun/internal/core"
	"github.com/vovakirdan/coinrun/internal/runner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	rec := RunRecord{
		Variant:    "classic",
		Player:     "alice",
		Seed:       42,
		TickRate:   60,
		ConfigYAML: "world:\n  width: 800\n",
		Score:      12,
		Frames:     900,
		Coins:      3,
		Recycles:   9,
		Spawns:     4,
		EndReason:  "enemy",
		Spans:      []Span{{Mask: 0, Frames: 10}, {Mask: 6, Frames: 5}, {Mask: 2, Frames: 885}},
	}

	id, err := store.SaveRun(rec)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() returned an empty ID")
	}

	got, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}

	if got.ID != id {
		t.Errorf("ID = %q, want %q", got.ID, id)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	rec.ID, rec.CreatedAt = got.ID, got.CreatedAt
	if !reflect.DeepEqual(*got, rec) {
		t.Errorf("LoadRun() = %+v\nwant %+v", *got, rec)
	}
}

func TestLoadRunByPrefix(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{Variant: "classic", EndReason: "fell"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.LoadRun(id[:8])
	if err != nil {
		t.Fatalf("LoadRun(prefix) failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("LoadRun(prefix) found %q, want %q", got.ID, id)
	}

	if _, err := store.LoadRun("no-such-run"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRun(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := store.LoadRun(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRun(\"\") error = %v, want ErrNotFound", err)
	}
}

func TestRecentAndCountRuns(t *testing.T) {
	store := openTestStore(t)

	for i, variant := range []string{"classic", "spaced", "classic"} {
		if _, err := store.SaveRun(RunRecord{Variant: variant, Score: i, EndReason: "enemy"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d runs, want 3", len(all))
	}
	// Newest first
	if all[0].Score != 2 || all[2].Score != 0 {
		t.Errorf("unexpected order: %d, %d, %d", all[0].Score, all[1].Score, all[2].Score)
	}
	if all[0].Spans != nil {
		t.Error("RecentRuns should not load spans")
	}

	classic, err := store.RecentRuns("classic", 1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(classic) != 1 || classic[0].Variant != "classic" {
		t.Errorf("RecentRuns(classic, 1) = %+v", classic)
	}

	for variant, want := range map[string]int{"": 3, "classic": 2, "spaced": 1, "other": 0} {
		n, err := store.CountRuns(variant)
		if err != nil {
			t.Fatalf("CountRuns() failed: %v", err)
		}
		if n != want {
			t.Errorf("CountRuns(%q) = %d, want %d", variant, n, want)
		}
	}
}

func TestDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{Variant: "classic", EndReason: "fell", Spans: []Span{{Mask: 1, Frames: 3}}})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.LoadRun(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted run still loads, err=%v", err)
	}
	if err := store.DeleteRun(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRun() error = %v, want ErrNotFound", err)
	}

	var inputs int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM run_inputs").Scan(&inputs); err != nil {
		t.Fatal(err)
	}
	if inputs != 0 {
		t.Errorf("%d run inputs left after delete", inputs)
	}
}

func TestJournalReplayRoundTrip(t *testing.T) {
	store := openTestStore(t)

	g := runner.New(runner.VariantClassic)
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 2024, Player: "bob"})

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)

	for i := 0; i < 20000; i++ {
		in := core.NewInputFrame()
		if i%40 == 0 {
			in.Set(core.ActionJump)
		}
		if g.Step(in).Finished {
			break
		}
	}

	run, ok := g.LastRun()
	if !ok {
		t.Fatal("run did not finish")
	}

	rec, err := RecordFromRun(run)
	if err != nil {
		t.Fatalf("RecordFromRun() failed: %v", err)
	}
	id, err := store.SaveRun(rec)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	loaded, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	restored, err := loaded.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if restored.Outcome != run.Outcome {
		t.Errorf("outcome = %+v, want %+v", restored.Outcome, run.Outcome)
	}
	if !reflect.DeepEqual(restored.Trace.Spans(), run.Trace.Spans()) {
		t.Error("trace changed in the journal")
	}
	if got, ok := restored.Verify(); !ok {
		t.Errorf("replay gave %+v, recorded %+v", got, restored.Outcome)
	}
}

func TestRunRecordBadConfig(t *testing.T) {
	rec := RunRecord{ID: "x", ConfigYAML: "world: [1, 2"}
	if _, err := rec.Run(); err == nil {
		t.Error("Run() should fail on a broken config")
	}

	cfgYAML, err := config.Encode(config.DefaultRunnerConfig())
	if err != nil {
		t.Fatal(err)
	}
	rec.ConfigYAML = string(cfgYAML)
	if _, err := rec.Run(); err != nil {
		t.Errorf("Run() failed on default config: %v", err)
	}
}
