package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/config"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	dimmerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

// setupFields are editable on the config screen. size and seed feed the
// simulator config; the rest are kinetic parameters.
var setupFields = []string{"size", "seed", "du", "dv", "f", "k", "dt", "tmax"}

// App is the preset picker that leads into the live view.
type App struct {
	state, cursor int
	presets       []string
	base          *config.Config
	cfg           *config.Config
	fieldCursor   int
	editing       bool
	editBuf       string
	err           string
	width, height int
	liveModel     Model
	opts          Options
}

// NewInteractiveApp starts from base; its size, seed and workers are kept
// unless edited.
func NewInteractiveApp(base *config.Config, opts Options) *App {
	if base == nil {
		base = config.DefaultConfig()
	}
	return &App{
		state:   stateMenu,
		presets: config.ListPresets(),
		base:    base,
		width:   width,
		height:  height,
		opts:    opts,
	}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
		return m, nil
	default:
		if m.state == stateSim {
			newLive, cmd := m.liveModel.Update(msg)
			m.liveModel = newLive.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
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
		cfg := *m.base
		if err := cfg.ApplyPreset(m.presets[m.cursor]); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.cfg = &cfg
		m.state, m.fieldCursor, m.err = stateConfig, 0, ""
	}
	return m, nil
}

func (m App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err != nil {
				m.err = "not a number: " + m.editBuf
			} else {
				m.setField(setupFields[m.fieldCursor], val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(setupFields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", m.field(setupFields[m.fieldCursor]))
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m *App) field(name string) float64 {
	switch name {
	case "size":
		return float64(m.cfg.Size)
	case "seed":
		return float64(m.cfg.Seed)
	}
	return m.cfg.Params.Map()[name]
}

func (m *App) setField(name string, val float64) {
	m.err = ""
	switch name {
	case "size":
		if val < 1 || val != float64(int(val)) {
			m.err = "size must be a positive integer"
			return
		}
		m.cfg.Size = int(val)
	case "seed":
		m.cfg.Seed = int64(val)
	default:
		p, err := m.cfg.Params.With(name, val)
		if err != nil {
			m.err = err.Error()
			return
		}
		m.cfg.Params = p
	}
}

func (m *App) start() tea.Cmd {
	s, err := sim.New(m.cfg.SimConfig())
	if err != nil {
		m.err = err.Error()
		return nil
	}
	opts := m.opts
	opts.Title = m.cfg.Preset
	m.liveModel = NewModel(s, opts)
	m.liveModel.width, m.liveModel.height = m.width, m.height
	m.state = stateSim
	return m.liveModel.Init()
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + dimStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("TURING", CurrentTheme.Primary, CurrentTheme.Accent) + "\n    " + subStyle.Render("gray-scott reaction-diffusion") + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := config.Presets[name].Description
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), nameStyle.Render(fmt.Sprintf("%-10s", name)), descStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", dimStyle.Render(fmt.Sprintf("  %-10s", name)), dimmerStyle.Render(desc)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + StatusRecording.Render(m.err) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render(strings.ToUpper(m.cfg.Preset)) + "\n    " + subStyle.Render(config.Presets[m.cfg.Preset].Description) + "\n    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range setupFields {
		valStr := fmt.Sprintf("%10.4g", m.field(name))
		if m.editing && i == m.fieldCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), nameStyle.Render(fmt.Sprintf("%-8s", name)), descStyle.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", dimStyle.Render(fmt.Sprintf("  %-8s", name)), dimmerStyle.Render(valStr)))
		}
	}
	if m.err != "" {
		b.WriteString("\n    " + StatusRecording.Render(m.err) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func RunInteractive(base *config.Config, opts Options) error {
	_, err := tea.NewProgram(NewInteractiveApp(base, opts), tea.WithAltScreen()).Run()
	return err
}
