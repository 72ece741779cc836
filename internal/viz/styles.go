package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusIdle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#888899"))

	StatusRecording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var sparkRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// blend mixes two hex colours in RGB; t=0 gives from, t=1 gives to.
// Unparseable colours are treated as white.
func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	a, err := colorful.Hex(string(from))
	if err != nil {
		a = white
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		b = white
	}
	t = max(0, min(t, 1))
	return lipgloss.Color(a.BlendRgb(b, t).Clamped().Hex())
}

// GradientText colours each rune of text along a linear blend.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	var b strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(blend(startColor, endColor, t)).Render(string(c)))
	}
	return b.String()
}

func AnimatedSpinner(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}

// ProgressBar renders t/tmax as a filled bar of the given width, shading
// from the theme's muted colour towards its primary colour as the run
// approaches tmax.
func ProgressBar(percent float64, width int) string {
	filled := max(0, min(int(percent*float64(width)), width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	col := blend(CurrentTheme.Muted, CurrentTheme.Primary, percent)
	return lipgloss.NewStyle().Foreground(col).Render(bar)
}

// SparklineChart renders the last width values as a one-line chart,
// each rune tinted by its height.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := (v - lo) / span
		idx := max(0, min(int(norm*float64(len(sparkRunes)-1)), len(sparkRunes)-1))
		st := lipgloss.NewStyle().Foreground(blend(CurrentTheme.Muted, CurrentTheme.Accent, norm))
		b.WriteString(st.Render(string(sparkRunes[idx])))
	}
	return b.String()
}
