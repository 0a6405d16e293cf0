package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/pulsefield/internal/config"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	p := wavefield.DefaultParams()
	p.Seed = 4
	f, err := wavefield.New(p)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(f, Options{FPS: 30, GIFDir: t.TempDir()})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 5; i++ {
		m = update(m, TickMsg{})
	}
	if m.field.Tick() != 5 {
		t.Errorf("expected tick 5, got %d", m.field.Tick())
	}

	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = update(m, TickMsg{})
	if m.field.Tick() != 5 {
		t.Errorf("expected paused field to stay at tick 5, got %d", m.field.Tick())
	}
}

func TestModelResizeAndClick(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.WindowSizeMsg{Width: 160, Height: 40})
	m = update(m, TickMsg{})

	cols := m.surface.Canvas.Width
	if cols != 160-panelWidth-padLeft*2-1 {
		t.Errorf("unexpected canvas width %d", cols)
	}
	if m.field.Height() != wavefield.DefaultHeight {
		t.Errorf("field height should stay fixed, got %f", m.field.Height())
	}
	if got, want := m.field.Width(), m.surface.FieldWidth(); got != want {
		t.Errorf("expected field width %f, got %f", want, got)
	}

	m = update(m, tea.MouseMsg{X: padLeft + 10, Y: padTop + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(m, TickMsg{})
	if m.field.RippleCount() != 1 {
		t.Fatalf("expected 1 ripple, got %d", m.field.RippleCount())
	}
	if got := m.field.Ripples()[0].OriginX; got != m.surface.FieldX(10) {
		t.Errorf("expected ripple at %f, got %f", m.surface.FieldX(10), got)
	}

	// clicks on the stats panel are ignored
	m = update(m, tea.MouseMsg{X: 150, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(m, TickMsg{})
	if m.field.RippleCount() != 1 {
		t.Errorf("expected panel click ignored, got %d ripples", m.field.RippleCount())
	}
}

func TestModelTuneAndReset(t *testing.T) {
	m := newTestModel(t)
	key := m.paramKeys[0]
	before := m.field.Params().Values()[key]

	m = update(m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.field.Params().Values()[key]; got <= before {
		t.Errorf("expected %s to grow from %f, got %f", key, before, got)
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != 1 {
		t.Errorf("expected selection 1, got %d", m.selected)
	}

	m = update(m, TickMsg{})
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.field.Tick() != 0 {
		t.Errorf("expected tick 0 after reset, got %d", m.field.Tick())
	}
	if got := m.field.Params().Values()[key]; got != before {
		t.Errorf("expected %s restored to %f, got %f", key, before, got)
	}
}

func TestModelThemeCycle(t *testing.T) {
	m := newTestModel(t)
	if m.theme.Name != "ember" {
		t.Fatalf("expected default ember, got %s", m.theme.Name)
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.theme.Name != "phosphor" {
		t.Errorf("expected phosphor, got %s", m.theme.Name)
	}
	if m.field.Style().Stroke != RGBA(ThemePhosphor.Wave) {
		t.Error("theme should restyle the field stroke")
	}
}

func TestModelRecording(t *testing.T) {
	m := newTestModel(t)
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if !m.recording {
		t.Fatal("expected recording")
	}
	for i := 0; i < 3; i++ {
		m = update(m, TickMsg{})
	}
	if m.gif.Len() != 3 {
		t.Errorf("expected 3 frames, got %d", m.gif.Len())
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	if m.recording || !strings.HasPrefix(m.status, "saved ") {
		t.Errorf("expected saved recording, status %q", m.status)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	view := m.View()
	for _, want := range []string{"Ripples", "PARAMETERS", "mean displacement"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestPickerStartsPreset(t *testing.T) {
	app := NewInteractiveApp(config.DefaultConfig(), Options{GIFDir: t.TempDir()})
	next, _ := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected the live model to start ticking")
	}
	p := next.(*picker)
	if p.state != stateSim {
		t.Fatal("expected picker to hand over to the live model")
	}
	if !strings.Contains(p.View(), "PARAMETERS") {
		t.Error("expected live view after start")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "ember" {
		t.Error("expected ember fallback")
	}
	if ThemeMono.Next().Name != "ember" {
		t.Error("expected themes to wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
	if c := RGBA("#ff4d00"); c.R != 0xff || c.G != 0x4d || c.B != 0 || c.A != 0xff {
		t.Errorf("unexpected color %v", c)
	}
}
