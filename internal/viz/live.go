package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/dynamo"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/export"
	"github.com/sblythe/Bio391-Reaction-Diffusion/internal/sim"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 46
	historyCapacity = 600
	maxStepsPerTick = 64
	frameRate       = 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Options configure a live view.
type Options struct {
	Title        string
	GIFPath      string
	StepsPerTick int
	AutoStart    bool
	Mode         RenderMode
}

// Model drives a simulator from the frame clock and draws it. The simulator
// advances only on ticks; keys change its run state and parameters.
type Model struct {
	sim           *sim.Simulator
	opts          Options
	initialParams dynamo.Params
	width, height int
	mode          RenderMode
	shader        *Shader
	paramKeys     []string
	selected      int
	stepsPerTick  int
	meanHistory   []float64
	activity      []float64
	lastMean      float64
	recorder      *export.Recorder
	lastErr       error
	message       string
	showHelp      bool
	frame         int
}

func NewModel(s *sim.Simulator, opts Options) Model {
	if opts.StepsPerTick <= 0 {
		opts.StepsPerTick = 1
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "turing.gif"
	}
	if opts.Title == "" {
		opts.Title = "gray-scott"
	}

	rec := export.NewRecorder(5, 2)
	rec.SetActive(false)
	s.AddObserver(rec)

	if opts.AutoStart {
		s.Start()
	}

	return Model{
		sim:           s,
		opts:          opts,
		initialParams: s.Params(),
		width:         width,
		height:        height,
		mode:          opts.Mode,
		shader:        NewShader(CurrentTheme, 32),
		paramKeys:     dynamo.ParamNames(),
		stepsPerTick:  min(opts.StepsPerTick, maxStepsPerTick),
		meanHistory:   make([]float64, 0, historyCapacity),
		activity:      make([]float64, 0, historyCapacity),
		recorder:      rec,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		m.frame++
		m.advance()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recorder.Active() {
			m.stopRecording()
		}
		return m, tea.Quit
	case "s":
		m.sim.Start()
	case " ":
		if m.sim.Status() == sim.Running {
			m.sim.Stop()
		} else {
			m.sim.Start()
		}
	case "r":
		m.reset()
	case "R":
		m.reset()
		if err := m.sim.SetParams(m.initialParams); err != nil {
			m.message = err.Error()
		}
	case "tab":
		m.selected = (m.selected + 1) % len(m.paramKeys)
	case "shift+tab":
		m.selected = (m.selected + len(m.paramKeys) - 1) % len(m.paramKeys)
	case "up", "k":
		m.adjustParam(1.05)
	case "down", "j":
		m.adjustParam(0.95)
	case "1", "2", "3":
		dt := dynamo.DtChoices[int(msg.String()[0]-'1')]
		if err := m.sim.SetParam("dt", dt); err != nil {
			m.message = err.Error()
		}
	case "+", "=":
		m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
	case "-", "_":
		m.stepsPerTick = max(m.stepsPerTick/2, 1)
	case "g":
		if m.recorder.Active() {
			m.stopRecording()
		} else {
			m.recorder.Clear()
			m.recorder.SetActive(true)
		}
	case "m":
		m.mode = m.mode.Next()
	case "t":
		SetTheme(NextTheme(CurrentTheme.Name))
		m.shader = NewShader(CurrentTheme, 32)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// advance runs up to stepsPerTick steps and records the chart series.
func (m *Model) advance() {
	for k := 0; k < m.stepsPerTick; k++ {
		ok, err := m.sim.Step()
		if err != nil {
			m.lastErr = err
			break
		}
		if !ok {
			break
		}
	}

	var mean float64
	m.sim.View(func(f *dynamo.Field, t int) {
		for _, u := range f.U {
			mean += u
		}
		mean /= float64(len(f.U))
	})
	if m.sim.Status() == sim.Running || len(m.meanHistory) == 0 {
		m.meanHistory = appendCapped(m.meanHistory, mean)
		m.activity = appendCapped(m.activity, math.Abs(mean-m.lastMean))
	}
	m.lastMean = mean
}

func appendCapped(xs []float64, x float64) []float64 {
	xs = append(xs, x)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) adjustParam(factor float64) {
	key := m.paramKeys[m.selected]
	val := m.sim.GetParams()[key]
	next := val * factor
	if val == 0 && factor > 1 {
		next = 1e-3
	}
	if key == "tmax" {
		next = math.Round(next)
		if next == val {
			if factor > 1 {
				next++
			} else {
				next--
			}
		}
	}
	if err := m.sim.SetParam(key, next); err != nil {
		m.message = err.Error()
	}
}

func (m *Model) reset() {
	m.sim.Reset()
	m.lastErr = nil
	m.meanHistory = m.meanHistory[:0]
	m.activity = m.activity[:0]
	m.lastMean = 0
}

func (m *Model) stopRecording() {
	m.recorder.SetActive(false)
	n := m.recorder.Len()
	err := m.recorder.Save(m.opts.GIFPath)
	switch {
	case errors.Is(err, export.ErrNoFrames):
		m.message = "recording empty, nothing saved"
	case err != nil:
		m.message = "gif: " + err.Error()
	default:
		m.message = fmt.Sprintf("saved %d frames to %s", n, m.opts.GIFPath)
	}
	m.recorder.Clear()
}

// fieldArea is the character budget left for the field next to the panel.
func (m Model) fieldArea() (cols, rows int) {
	cols = max(m.width-panelWidth-8, 16)
	rows = max(m.height-4, 8)
	return cols, rows
}

func (m Model) renderField() string {
	cols, rows := m.fieldArea()
	var out string
	m.sim.View(func(f *dynamo.Field, t int) {
		switch m.mode {
		case RampMode:
			out = RenderRamp(f, cols, rows)
		case ContourMode:
			out = RenderContour(f, cols, rows)
		default:
			out = m.shader.Render(f, cols, rows)
		}
	})
	return out
}

func (m Model) statusLine() string {
	st := m.sim.Status()
	label := strings.ToUpper(st.String())
	var line string
	switch st {
	case sim.Running:
		line = StatusRunning.Render(AnimatedSpinner(m.frame) + " " + label)
	case sim.Stopped:
		line = StatusPaused.Render(label)
	default:
		line = StatusIdle.Render(label)
	}
	if m.recorder.Active() {
		line += "  " + StatusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Len()))
	}
	return line
}

// View renders the TUI interface.
func (m Model) View() string {
	theme := CurrentTheme
	headerStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).MarginBottom(1)
	activeParamStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	p := m.sim.Params()
	t := m.sim.T()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.opts.Title)) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	progress := 0.0
	if p.TMax > 0 {
		progress = float64(t) / float64(p.TMax)
	}
	s.WriteString(ProgressBar(progress, 30) + fmt.Sprintf(" %d/%d", t, p.TMax) + "\n")

	if len(m.meanHistory) > 1 {
		chart := asciigraph.Plot(m.meanHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("mean U"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(labelStyle.Render("Activity") + SparklineChart(m.activity, 30) + "\n")
	s.WriteString(labelStyle.Render("Mean U") + valueStyle.Render(fmt.Sprintf("%.4f", m.lastMean)) + "\n")
	s.WriteString(labelStyle.Render("Steps/frame") + valueStyle.Render(fmt.Sprintf("%d", m.stepsPerTick)) + "\n")
	s.WriteString(labelStyle.Render("View") + valueStyle.Render(m.mode.String()+" / "+theme.Name) + "\n")

	s.WriteString("\nPARAMETERS\n")
	values := p.Map()
	for i, k := range m.paramKeys {
		val := values[k]
		initial := m.initialParams.Map()[k]
		barWidth, ratio := 10, 0.0
		if initial > 0 {
			ratio = val / (2.0 * initial)
		}
		ratio = math.Max(0, math.Min(1, ratio))
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-14s %s %.4g", k, bar, val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + MetricLabel.Render(line) + "\n")
		}
	}

	if m.lastErr != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(m.lastErr.Error()) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render(m.message) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nS:Start SP:Start/Stop R:Reset Q:Quit\n1/2/3:dt G:Record M:View ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.renderField()), statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  S        - Start                    ║
║  Space    - Start/Stop               ║
║  R        - Reseed field (shift: and ║
║             restore parameters)      ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  1 2 3    - dt = 0.5, 1, 2           ║
║  + -      - Steps per frame          ║
║  G        - Toggle GIF recording     ║
║  M        - Cycle view mode          ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run opens the live view on the alternate screen and blocks until the user
// quits.
func Run(s *sim.Simulator, opts Options) error {
	_, err := tea.NewProgram(NewModel(s, opts), tea.WithAltScreen()).Run()
	return err
}
