package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coinrun/internal/registry"
	"github.com/vovakirdan/coinrun/internal/storage"
)

// Journal browser layout constants
const (
	maxRuns     = 200 // Max runs to load
	shortIDLen  = 8   // ID prefix shown in the table; LoadRun accepts it
	chromeLines = 8   // Title, filter line, status, help and borders
)

// RunsKeyMap defines the key bindings for the journal browser.
type RunsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Verify     key.Binding
	Delete     key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextFilter, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextFilter, k.PrevFilter},
		{k.Verify, k.Delete, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevFilter: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for browsing the run journal.
type RunsModel struct {
	filters  []string // "" means all variants
	filter   int
	store    *storage.Store
	runs     []storage.RunRecord
	total    int
	status   string
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRunsModel creates a journal browser.
func NewRunsModel(store *storage.Store, width, height int) RunsModel {
	filters := []string{""}
	for _, g := range registry.List() {
		filters = append(filters, g.ID)
	}

	m := RunsModel{
		filters: filters,
		store:   store,
		keys:    DefaultRunsKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table sized to the window.
func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: shortIDLen},
		{Title: "Variant", Width: 8},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 6},
		{Title: "End", Width: 6},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-chromeLines, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads the journal for the current filter.
func (m *RunsModel) loadRuns() {
	m.runs, m.total = nil, 0
	if m.store == nil {
		m.updateTableRows()
		return
	}

	variant := m.filters[m.filter]
	runs, err := m.store.RecentRuns(variant, maxRuns)
	if err != nil {
		m.status = err.Error()
	} else {
		m.runs = runs
	}
	if n, err := m.store.CountRuns(variant); err == nil {
		m.total = n
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *RunsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			shortID(r.ID),
			r.Variant,
			r.Player,
			fmt.Sprintf("%d", r.Score),
			r.EndReason,
			formatFrames(r.Frames, r.TickRate),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// formatFrames shows a frame count as play time.
func formatFrames(frames, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	secs := frames / tickRate
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// selected returns the run under the cursor.
func (m RunsModel) selected() (storage.RunRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.RunRecord{}, false
	}
	return m.runs[i], true
}

// Init initializes the model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextFilter):
			m.filter = (m.filter + 1) % len(m.filters)
			m.status = ""
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevFilter):
			m.filter = (m.filter - 1 + len(m.filters)) % len(m.filters)
			m.status = ""
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Verify):
			m.status = m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.status = m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// verifySelected replays the selected run and reports the result.
func (m RunsModel) verifySelected() string {
	r, ok := m.selected()
	if !ok || m.store == nil {
		return ""
	}
	rec, err := m.store.LoadRun(r.ID)
	if err != nil {
		return err.Error()
	}
	run, err := rec.Run()
	if err != nil {
		return err.Error()
	}
	got, ok := run.Verify()
	if !ok {
		return fmt.Sprintf("%s: replay MISMATCH, got score %d (%s), stored %d (%s)",
			shortID(r.ID), got.Score, got.EndReason, r.Score, r.EndReason)
	}
	return fmt.Sprintf("%s: replay OK, score %d", shortID(r.ID), got.Score)
}

// deleteSelected removes the selected run from the journal.
func (m *RunsModel) deleteSelected() string {
	r, ok := m.selected()
	if !ok || m.store == nil {
		return ""
	}
	if err := m.store.DeleteRun(r.ID); err != nil {
		return err.Error()
	}
	m.loadRuns()
	return fmt.Sprintf("%s deleted", shortID(r.ID))
}

// View renders the journal browser.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("RUN JOURNAL", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.filterLine(), m.width))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// filterLine shows the variant tabs and the run count.
func (m RunsModel) filterLine() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.filters))
	for i, f := range m.filters {
		name := f
		if name == "" {
			name = "all"
		}
		if i == m.filter {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}
	return fmt.Sprintf("%s   %d runs", strings.Join(tabs, " "), m.total)
}

// renderTableContent renders the table or empty message.
func (m RunsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nFinish a run to see it here.")
	}
	return m.table.View()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunRuns runs the journal browser.
func RunRuns(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
