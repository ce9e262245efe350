// Package tui provides the Bubble Tea ROI calculator. Edits flow through the
// parameter store, the recomputation controller retargets the presenter and a
// frame tick advances the animation while it is in flight.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iwvelando/roi-forecast/internal/params"
	"github.com/iwvelando/roi-forecast/internal/presenter"
	"github.com/iwvelando/roi-forecast/internal/presets"
	"github.com/iwvelando/roi-forecast/internal/recompute"
	"github.com/iwvelando/roi-forecast/pkg/constants"
	"github.com/iwvelando/roi-forecast/pkg/format"
	"github.com/iwvelando/roi-forecast/pkg/output"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	panelStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// frameMsg is delivered by the frame tick.
type frameMsg time.Time

// Model implements the Bubble Tea ROI calculator.
type Model struct {
	store      *params.Store
	controller *recompute.Controller
	presenter  *presenter.Presenter
	library    *presets.Library

	keys     keyMap
	help     help.Model
	interval time.Duration

	cursor    int
	ticking   bool
	lastFrame time.Time
	errMsg    string
	width     int

	now func() time.Time
}

// NewModel wires store, controller and a presenter built from opts. The
// controller computes each preset with its library profile and is attached to
// the store here so the first result is animated.
func NewModel(store *params.Store, controller *recompute.Controller, library *presets.Library, opts presenter.Options, interval time.Duration) *Model {
	if library == nil {
		library = presets.Default()
	}
	if interval <= 0 {
		interval = constants.DefaultFrameInterval
	}
	m := &Model{
		store:      store,
		controller: controller,
		presenter:  presenter.New(opts),
		library:    library,
		keys:       newKeyMap(),
		help:       help.New(),
		interval:   interval,
		now:        time.Now,
	}
	controller.UseProfiles(library)
	controller.Subscribe(m.presenter.Retarget)
	controller.Attach(store)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.startTicking()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		return m, m.advance(time.Time(msg))
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.fieldUp):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.fieldDown):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.decrease):
		m.stepField(-1)
	case key.Matches(msg, m.keys.increase):
		m.stepField(1)
	case key.Matches(msg, m.keys.nextPreset):
		m.cyclePreset(1)
	case key.Matches(msg, m.keys.prevPreset):
		m.cyclePreset(-1)
	case key.Matches(msg, m.keys.pickPreset):
		n, err := strconv.Atoi(msg.String())
		if err == nil {
			m.applyPreset(n - 1)
		}
	}
	return m, m.startTicking()
}

func (m *Model) moveCursor(delta int) {
	paths := m.store.Snapshot().Paths()
	if len(paths) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(paths)) % len(paths)
}

func (m *Model) stepField(direction float64) {
	snap := m.store.Snapshot()
	paths := snap.Paths()
	if m.cursor >= len(paths) {
		m.cursor = 0
	}
	path := paths[m.cursor]
	field, err := snap.Describe(path)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	current, _ := snap.Get(path)
	if _, err := m.store.SetField(path, current+direction*field.Step); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

func (m *Model) cyclePreset(delta int) {
	names := m.library.Names()
	if len(names) == 0 {
		return
	}
	index := -1
	if name, ok := m.store.Selection().Preset(); ok {
		for i, n := range names {
			if n == name {
				index = i
				break
			}
		}
	}
	switch {
	case index < 0 && delta < 0:
		index = len(names) - 1
	case index < 0:
		index = 0
	default:
		index = (index + delta + len(names)) % len(names)
	}
	m.applyPreset(index)
}

func (m *Model) applyPreset(index int) {
	names := m.library.Names()
	if index < 0 || index >= len(names) {
		return
	}
	if _, err := m.store.SelectPreset(m.library, names[index]); err != nil {
		m.errMsg = err.Error()
		return
	}
	if paths := m.store.Snapshot().Paths(); m.cursor >= len(paths) {
		m.cursor = len(paths) - 1
	}
	m.errMsg = ""
}

// startTicking schedules the frame tick when a transition is in flight and no
// tick is pending.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.presenter.Animating() {
		return nil
	}
	m.ticking = true
	m.lastFrame = m.now()
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) advance(at time.Time) tea.Cmd {
	dt := at.Sub(m.lastFrame)
	m.lastFrame = at
	m.presenter.Advance(dt)
	if m.presenter.Animating() {
		return m.tick()
	}
	m.ticking = false
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ROI forecast"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  preset: %s", m.store.Selection())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.renderFields()),
		panelStyle.Render(m.renderResults()),
	))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderFields() string {
	snap := m.store.Snapshot()
	lines := make([]string, 0, len(snap.Paths()))
	for i, path := range snap.Paths() {
		field, err := snap.Describe(path)
		if err != nil {
			continue
		}
		value, _ := snap.Get(path)
		line := fmt.Sprintf("%-40s %s", field.Label, fieldValue(field, value))
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderResults() string {
	rows := output.Rows(m.presenter.Frame())
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		text := valueStyle.Render(row.Text)
		if !row.Applicable {
			text = mutedStyle.Render(row.Text)
		}
		lines = append(lines, fmt.Sprintf("%-30s %s", row.Label, text))
	}
	return strings.Join(lines, "\n")
}

func fieldValue(f params.Field, value float64) string {
	if f.Step < 1 {
		return format.Count(value, 1)
	}
	return format.Count(value, 0)
}
