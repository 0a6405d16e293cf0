package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pulsefield/internal/loop"
	"github.com/san-kum/pulsefield/internal/raster"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

const (
	panelWidth      = 40
	historyCapacity = 240
	gifScale        = 0.5

	// canvas offset inside the terminal, from canvasStyle padding
	padLeft, padTop = 2, 1
)

type TickMsg time.Time

type Options struct {
	FPS       int
	Theme     string
	GIFDir    string
	Observers []loop.Observer
}

// Model hosts a field in the terminal. The field is only touched from Update.
type Model struct {
	field   *wavefield.Field
	driver  *loop.Driver
	surface *Surface
	opt     Options
	theme   Theme

	width, height int
	running       bool
	frame         int
	initial       map[string]float64
	paramKeys     []string
	selected      int

	last          wavefield.Sample
	dispHistory   []float64
	rippleHistory []float64

	recording bool
	raster    *raster.Canvas
	gif       *raster.GIFRecorder

	status   string
	showHelp bool
}

func NewModel(field *wavefield.Field, opt Options) Model {
	if opt.FPS <= 0 {
		opt.FPS = loop.DefaultFPS
	}
	if opt.GIFDir == "" {
		opt.GIFDir = "."
	}
	surface := NewSurface(NewCanvas(80, 24), field.Height())
	d := loop.New(field, surface, opt.FPS)
	for _, o := range opt.Observers {
		d.AddObserver(o)
	}
	m := Model{
		field:         field,
		driver:        d,
		surface:       surface,
		opt:           opt,
		theme:         GetTheme(opt.Theme),
		width:         80 + panelWidth,
		height:        26,
		running:       true,
		initial:       field.Params().Values(),
		paramKeys:     wavefield.ParamNames(),
		dispHistory:   make([]float64, 0, historyCapacity),
		rippleHistory: make([]float64, 0, historyCapacity),
	}
	m.applyTheme()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opt.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the field.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.startRecording()
			}
		case "t":
			m.theme = m.theme.Next()
			m.applyTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		m.frame++
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.driver.Frame(); err != nil {
		m.status = err.Error()
		glog.Warningf("tui: %v", err)
	}
	m.last = m.field.Sample()
	m.dispHistory = pushHistory(m.dispHistory, m.last.MeanDisplacement)
	m.rippleHistory = pushHistory(m.rippleHistory, float64(m.last.Ripples))

	if m.recording {
		m.field.Render(m.raster)
		m.gif.Add(m.raster.Img)
	}
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) click(x, y int) {
	col, row := x-padLeft, y-padTop
	c := m.surface.Canvas
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	if err := m.driver.Disturb(m.surface.FieldX(col)); err != nil {
		m.status = err.Error()
	}
}

// resize fits the canvas beside the stats panel and widens the field to
// match, keeping the field height.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := max(w-panelWidth-padLeft*2-1, 10)
	rows := max(h-padTop*2-1, 4)
	m.surface.Canvas = NewCanvas(cols, rows)
	m.surface.Scale = float64(rows*4) / m.field.Height()

	if m.recording {
		m.stopRecording()
	}
	if err := m.driver.Resize(m.surface.FieldWidth(), m.field.Height()); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	val := m.field.Params().Values()[key]
	if val == 0 {
		val = 0.01
	}
	if err := m.field.SetParam(key, val*factor); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

// reset restores the initial parameters and reseeds the points.
func (m *Model) reset() {
	if err := m.field.Tune(m.initial); err != nil {
		m.status = err.Error()
	}
	if err := m.field.Reset(); err != nil {
		m.status = err.Error()
	}
	m.dispHistory = m.dispHistory[:0]
	m.rippleHistory = m.rippleHistory[:0]
	m.last = wavefield.Sample{}
}

func (m *Model) applyTheme() {
	st := m.field.Style()
	st.Stroke = RGBA(m.theme.Wave)
	st.Marker = RGBA(m.theme.Marker)
	m.field.SetStyle(st)
}

func (m *Model) startRecording() {
	m.raster = raster.ForField(m.field, gifScale)
	st := m.field.Style()
	m.gif = raster.NewGIFRecorder(raster.Palette(st.Fade, st.Stroke), m.opt.FPS)
	m.recording = true
	m.status = ""
}

func (m *Model) stopRecording() {
	m.recording = false
	if m.gif == nil || m.gif.Len() == 0 {
		return
	}
	if err := os.MkdirAll(m.opt.GIFDir, 0755); err != nil {
		m.status = err.Error()
		return
	}
	path := filepath.Join(m.opt.GIFDir, fmt.Sprintf("pulsefield_%d.gif", time.Now().Unix()))
	if err := m.gif.Save(path); err != nil {
		m.status = err.Error()
		return
	}
	glog.Infof("tui: saved %d frames to %s", m.gif.Len(), path)
	m.status = "saved " + path
	m.gif = nil
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.renderCanvas())

	var s strings.Builder
	s.WriteString(GradientText("PULSEFIELD", m.theme.Wave, m.theme.Marker) + "\n")

	status := StatusRunning.Render(AnimatedSpinner(m.frame) + " RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += "  " + StatusRecording.Render(fmt.Sprintf("● REC %d", m.gif.Len()))
	}
	s.WriteString(status + "\n\n")

	pulse := "—"
	if m.last.Pulse != 0 {
		pulse = lipgloss.NewStyle().Foreground(m.theme.Alert).Render(fmt.Sprintf("♥ %+.1f", m.last.Pulse))
	}
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.field.Tick())) + "\n")
	s.WriteString(labelStyle.Render("Field") + valueStyle.Render(fmt.Sprintf("%.0f×%.0f", m.field.Width(), m.field.Height())) + "\n")
	s.WriteString(labelStyle.Render("Ripples") + valueStyle.Render(fmt.Sprintf("%d", m.field.RippleCount())) + "\n")
	s.WriteString(labelStyle.Render("Pulse") + pulse + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n")

	if len(m.dispHistory) > 1 {
		chart := asciigraph.Plot(m.dispHistory, asciigraph.Height(5), asciigraph.Width(panelWidth-12), asciigraph.Caption("mean displacement"))
		s.WriteString(graphStyle.Foreground(m.theme.Accent).Render(chart) + "\n")
		s.WriteString(SparklineChart(m.rippleHistory, panelWidth-8, 0) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	values := m.field.Params().Values()
	lo := max(0, m.selected-3)
	hi := min(len(m.paramKeys), lo+7)
	for i := lo; i < hi; i++ {
		k := m.paramKeys[i]
		line := fmt.Sprintf("%-16s %8.3f", k, values[k])
		if i == m.selected {
			s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true).Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(line) + "\n")
		}
	}

	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Alert).Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("click:Ripple SP:Pause R:Reset Q:Quit\nT:Theme G:Record Tab/↑↓:Tune ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

// renderCanvas tints wave cells and marker cells with the theme.
func (m Model) renderCanvas() string {
	c := m.surface.Canvas
	wave := lipgloss.NewStyle().Foreground(m.theme.Wave)
	marker := lipgloss.NewStyle().Foreground(m.theme.Marker).Bold(true)

	var b strings.Builder
	for row := range c.Grid {
		var run strings.Builder
		marked := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if marked {
				b.WriteString(marker.Render(run.String()))
			} else {
				b.WriteString(wave.Render(run.String()))
			}
			run.Reset()
		}
		for col, r := range c.Grid[row] {
			if c.Mark[row][col] != marked {
				flush()
				marked = c.Mark[row][col]
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Click    - Drop a ripple            ║
║  Space    - Pause/Resume             ║
║  R        - Reset field and params   ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the TUI on field until the user quits.
func Run(field *wavefield.Field, opt Options) error {
	p := tea.NewProgram(NewModel(field, opt), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
