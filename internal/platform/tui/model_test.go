package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coinrun/internal/config"
	"github.com/vovakirdan/coinrun/internal/core"
	"github.com/vovakirdan/coinrun/internal/runner"
	"github.com/vovakirdan/coinrun/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) (Model, *runner.Game) {
	t.Helper()
	game := runner.New(runner.VariantClassic)
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 11, Player: "tester"}, Options{Store: store})
	m.Init()
	return m, game
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelPlaysAndRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, game := newTestModel(t, store)

	m = update(t, m, TickMsg{})
	if m.GameState().Started {
		t.Fatal("game should wait for Enter")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	if !m.GameState().Started {
		t.Fatal("Enter should start the run")
	}

	for i := 0; i < 20000 && !m.GameState().GameOver; i++ {
		m = update(t, m, TickMsg{})
	}
	if !m.GameState().GameOver {
		t.Fatal("idle run did not end")
	}

	if m.LastRunID() == "" {
		t.Fatal("finished run should be saved")
	}
	rec, err := store.LoadRun(m.LastRunID())
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if rec.Player != "tester" || rec.Variant != runner.VariantClassic {
		t.Errorf("record = %+v", rec)
	}

	run, _ := game.LastRun()
	if rec.Score != run.Outcome.Score || rec.Frames != run.Outcome.Stats.Frames {
		t.Errorf("stored score/frames %d/%d, game had %d/%d", rec.Score, rec.Frames, run.Outcome.Score, run.Outcome.Stats.Frames)
	}
}

func TestModelHeldKeyMovesPlayer(t *testing.T) {
	m, game := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})

	x0 := game.Session().Player().X
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for i := 0; i < 5; i++ {
		m = update(t, m, TickMsg{})
	}
	if dx := game.Session().Player().X - x0; dx != 25 {
		t.Errorf("player moved %v, want 25 over 5 held ticks", dx)
	}
}

func TestModelRestartIgnoredWhileRunning(t *testing.T) {
	m, game := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg{})
	for i := 0; i < 10; i++ {
		m = update(t, m, TickMsg{})
	}

	frames := game.Session().Stats().Frames
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	update(t, m, TickMsg{})
	if got := game.Session().Stats().Frames; got != frames+1 {
		t.Errorf("frames = %d, want %d (no restart mid-run)", got, frames+1)
	}
}

func TestModelConfigReload(t *testing.T) {
	m, game := newTestModel(t, nil)

	cfg := config.DefaultRunnerConfig()
	cfg.Physics.InitialGameSpeed = 3.5
	m.watcher = nil
	next, _ := m.Update(configReloadedMsg{path: "runner.yaml", cfg: cfg})
	if _, ok := next.(Model); !ok {
		t.Fatalf("Update returned %T", next)
	}

	if got := game.Session().GameSpeed(); got != 3.5 {
		t.Errorf("game speed = %v, want reloaded 3.5", got)
	}
}

func TestModelLogsConfigFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("world: [1, 2]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	runner.SetConfigPath(path)
	t.Cleanup(func() { runner.SetConfigPath("") })

	var buf bytes.Buffer
	game := runner.New(runner.VariantClassic)
	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}, Options{Logger: log.New(&buf)})
	m.Init()

	if !strings.Contains(buf.String(), "config load failed") {
		t.Errorf("log = %q, want a config fallback warning", buf.String())
	}
}

func TestModelViewAndResize(t *testing.T) {
	m, _ := newTestModel(t, nil)

	view := m.View()
	if !strings.Contains(view, "Press Enter to start") {
		t.Error("view should show the start prompt")
	}
	if !strings.Contains(view, "jump") {
		t.Error("view should include the key help")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawText(0, 0, "coin")
	scr.SetColored(5, 0, 'o', core.ColorBrightYellow)

	out := RenderScreen(scr)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "coin") || !strings.Contains(lines[0], "o") {
		t.Errorf("line 0 = %q", lines[0])
	}
}
