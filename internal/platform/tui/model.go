package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/coinrun/internal/config"
	"github.com/vovakirdan/coinrun/internal/core"
	"github.com/vovakirdan/coinrun/internal/registry"
	"github.com/vovakirdan/coinrun/internal/runner"
	"github.com/vovakirdan/coinrun/internal/storage"
)

// helpRows is the number of terminal rows below the playfield.
const helpRows = 1

// Reconfigurable is a game that accepts a new config between runs.
type Reconfigurable interface {
	SetConfig(cfg config.RunnerConfig)
}

// ConfigReporter is a game that can tell why it runs on default settings.
type ConfigReporter interface {
	ConfigError() error
}

// Recorder is a game that can hand out its last finished run.
type Recorder interface {
	LastRun() (runner.Run, bool)
}

// Options holds the optional collaborators of a Model.
type Options struct {
	Store      *storage.Store  // Run journal; nil disables recording
	Logger     *log.Logger     // Defaults to a discarding logger
	Watcher    *config.Watcher // Config file to reload between runs
	HoldWindow time.Duration   // Defaults to DefaultHoldWindow
}

// configReloadedMsg carries a config re-read after the file changed.
type configReloadedMsg struct {
	path string
	cfg  config.RunnerConfig
}

// configErrorMsg reports a failed reload or a watcher error.
type configErrorMsg struct{ err error }

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	watcher    *config.Watcher
	config     core.RuntimeConfig
	keys       GameKeyMap
	keyMapper  *KeyMapper
	latch      *KeyLatch
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastRunID  string // Journal ID of the last saved run
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hold := opts.HoldWindow
	if hold <= 0 {
		hold = DefaultHoldWindow
	}

	keys := DefaultGameKeyMap()
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		store:      opts.Store,
		logger:     logger,
		watcher:    opts.Watcher,
		config:     cfg,
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		latch:      NewKeyLatch(cfg.TickRate, hold),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	if g, ok := m.game.(ConfigReporter); ok {
		if err := g.ConfigError(); err != nil {
			m.logger.Warn("config load failed, using built-in defaults", "error", err)
		}
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.watcher != nil {
		cmds = append(cmds, watchConfigCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// watchConfigCmd waits for the next change of the watched config file.
func watchConfigCmd(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			cfg, err := config.Load(path)
			if err != nil {
				return configErrorMsg{err: err}
			}
			return configReloadedMsg{path: path, cfg: cfg}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrorMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case configReloadedMsg:
		if g, ok := m.game.(Reconfigurable); ok {
			g.SetConfig(msg.cfg)
			m.logger.Info("config reloaded", "path", msg.path, "applies", "next run")
		}
		return m, watchConfigCmd(m.watcher)

	case configErrorMsg:
		m.logger.Warn("config reload failed, keeping current config", "error", msg.err)
		return m, watchConfigCmd(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keyMapper.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionRestart && !m.gameState.GameOver {
		return m, nil
	}
	m.latch.Press(action)

	return m, nil
}

// handleResize processes window resize events. The world is scaled to the
// screen, so the run goes on.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.latch.Frame(&m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Finished {
		m.latch.Release()
		m.lastRunID = m.saveRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun writes the finished run to the journal. Failures are logged;
// the game continues regardless.
func (m Model) saveRun() string {
	rec, ok := m.game.(Recorder)
	if !ok || m.store == nil {
		return ""
	}
	run, ok := rec.LastRun()
	if !ok {
		return ""
	}

	record, err := storage.RecordFromRun(run)
	if err != nil {
		m.logger.Warn("cannot record run", "error", err)
		return ""
	}
	id, err := m.store.SaveRun(record)
	if err != nil {
		m.logger.Warn("cannot save run", "error", err)
		return ""
	}

	m.logger.Info("run saved",
		"id", id,
		"variant", run.Variant,
		"player", run.Player,
		"score", run.Outcome.Score,
		"end", run.Outcome.EndReason,
		"frames", run.Outcome.Stats.Frames,
	)
	return id
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".coinrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// LastRunID returns the journal ID of the most recently saved run.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// GameState returns the state reported by the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
