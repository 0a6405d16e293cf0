package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/pulsefield/internal/config"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4d00")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8a3d")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb380"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8a3d")).Bold(true)
)

const (
	stateMenu = iota
	stateSim
)

// picker lists the presets and hands over to a live Model once one is chosen.
type picker struct {
	state, cursor int
	presets       []string
	base          *config.Config
	opt           Options
	width, height int
	sizeSeen      bool
	liveModel     Model
	err           error
}

// NewInteractiveApp builds the preset picker. base supplies everything the
// presets leave alone (data dir, audio, seed).
func NewInteractiveApp(base *config.Config, opt Options) tea.Model {
	return &picker{
		state:   stateMenu,
		presets: config.ListPresets(),
		base:    base,
		opt:     opt,
	}
}

func (m *picker) Init() tea.Cmd { return nil }

func (m *picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height, m.sizeSeen = size.Width, size.Height, true
	}
	if m.state == stateSim {
		next, cmd := m.liveModel.Update(msg)
		m.liveModel = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m, m.start(m.presets[m.cursor])
	}
	return m, nil
}

func (m *picker) start(name string) tea.Cmd {
	cfg := config.GetPreset(name)
	cfg.DataDir = m.base.DataDir
	cfg.Audio = m.base.Audio
	cfg.Seed = m.base.Seed

	field, err := cfg.NewField()
	if err != nil {
		m.err = err
		return nil
	}
	opt := m.opt
	if opt.Theme == "" {
		opt.Theme = cfg.Render.Theme
	}
	if opt.FPS <= 0 {
		opt.FPS = cfg.Render.FPS
	}
	m.liveModel = NewModel(field, opt)
	if m.sizeSeen {
		m.liveModel.resize(m.width, m.height)
	}
	m.state = stateSim
	return m.liveModel.Init()
}

func (m *picker) View() string {
	if m.state == stateSim {
		return m.liveModel.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("PULSEFIELD") + "\n    " + subStyle.Render("heartbeat wave field") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := config.PresetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), nameStyle.Render(fmt.Sprintf("%-12s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", dimStyle.Render(fmt.Sprintf("  %-12s", name)), dimStyle.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff2a2a")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyStyle.Render("j/k") + dimStyle.Render(" navigate  ") + keyStyle.Render("enter") + dimStyle.Render(" start  ") + keyStyle.Render("q") + dimStyle.Render(" quit") + "\n")
	return b.String()
}

func RunInteractive(base *config.Config, opt Options) error {
	_, err := tea.NewProgram(NewInteractiveApp(base, opt), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
