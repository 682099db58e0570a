package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/render"
)

const (
	panelWidth    = 34
	panFraction   = 0.1
	zoomFactor    = 1.5
	minIterations = 8
	maxIterations = 1 << 16
)

// frameMsg carries a finished frame back to the explorer. gen tags the view
// it was rendered for so stale frames can be dropped.
type frameMsg struct {
	gen     int
	frame   string
	elapsed time.Duration
	err     error
}

// Explorer is the Bubble Tea model of the interactive viewer. It renders
// through render.Streaming, so no image memory is held between frames.
type Explorer struct {
	start    config.Config
	cfg      config.Config
	dots     bool
	theme    Theme
	showHelp bool

	width, height int
	gen           int
	busy          bool
	frame         string
	elapsed       time.Duration
	err           error
}

func NewExplorer(cfg *config.Config) Explorer {
	return Explorer{
		start:  *cfg,
		cfg:    *cfg,
		theme:  ThemeCyberpunk,
		width:  80,
		height: 24,
	}
}

func (m Explorer) Init() tea.Cmd {
	return m.renderCmd()
}

// frameSize is the pixel size of the image area for the current terminal.
func (m Explorer) frameSize() (w, h int) {
	cols := m.width - panelWidth - 2
	rows := m.height - 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if m.dots {
		return cols * 2, rows * 4
	}
	return cols, rows * 2
}

func (m Explorer) renderCmd() tea.Cmd {
	cfg := m.cfg
	cfg.Width, cfg.Height = m.frameSize()
	gen, dots := m.gen, m.dots

	return func() tea.Msg {
		var sink interface {
			render.Sink
			String() string
		}
		if dots {
			sink = NewDots()
		} else {
			sink = NewTerminal()
		}

		began := time.Now()
		err := render.Streaming(cfg.RenderConfig(sink, nil))
		return frameMsg{
			gen:     gen,
			frame:   sink.String(),
			elapsed: time.Since(began),
			err:     err,
		}
	}
}

// rerender invalidates the current frame and schedules a new one.
func (m Explorer) rerender() (Explorer, tea.Cmd) {
	m.gen++
	m.busy = true
	return m, m.renderCmd()
}

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.rerender()
	case frameMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		m.frame, m.elapsed, m.err = msg.frame, msg.elapsed, msg.err
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pan := panFraction * 4 / m.cfg.Zoom

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "t":
		m.theme = m.theme.next()
		return m, nil
	case "left":
		m.cfg.Center.Real -= pan
	case "right":
		m.cfg.Center.Real += pan
	// Screen up is increasing imaginary part, which the mapper reaches by
	// lowering the center's imaginary component.
	case "up":
		m.cfg.Center.Imag -= pan
	case "down":
		m.cfg.Center.Imag += pan
	case "+", "=":
		m.cfg.Zoom *= zoomFactor
	case "-", "_":
		m.cfg.Zoom /= zoomFactor
	case "]":
		if m.cfg.Color.MaxIterations*2 <= maxIterations {
			m.cfg.Color.MaxIterations *= 2
		}
	case "[":
		if m.cfg.Color.MaxIterations/2 >= minIterations {
			m.cfg.Color.MaxIterations /= 2
		}
	case "j":
		m.cfg.Julia = !m.cfg.Julia
	case "c":
		m.cfg.JuliaConstant.Real = m.cfg.Center.Real
		m.cfg.JuliaConstant.Imag = -m.cfg.Center.Imag
		m.cfg.Julia = true
		m.cfg.Center = m.start.Center
		m.cfg.Zoom = m.start.Zoom
	case "d":
		m.dots = !m.dots
	case "r":
		m.cfg = m.start
	default:
		return m, nil
	}
	return m.rerender()
}

func (m Explorer) View() string {
	var s strings.Builder

	title := "MANDELBROT"
	if m.cfg.Julia {
		title = "JULIA"
	}
	s.WriteString(GradientText(title, m.theme.Primary, m.theme.Secondary) + "\n")
	s.WriteString(Separator(panelWidth-6) + "\n\n")

	s.WriteString(Metric("Center", fmt.Sprintf("%.6g%+.6gi", m.cfg.Center.Real, -m.cfg.Center.Imag)) + "\n")
	s.WriteString(Metric("Zoom", fmt.Sprintf("%.4g", m.cfg.Zoom)) + "\n")
	s.WriteString(Metric("Iterations", fmt.Sprintf("%d", m.cfg.Color.MaxIterations)) + "\n")
	if m.cfg.Julia {
		s.WriteString(Metric("Constant", m.cfg.JuliaConstant.String()) + "\n")
	}
	mode := "color"
	if m.dots {
		mode = "interior"
	}
	s.WriteString(Metric("Mode", mode) + "\n")
	s.WriteString(Metric("Frame", fmt.Sprintf("%dms", m.elapsed.Milliseconds())) + "\n\n")

	switch {
	case m.err != nil:
		s.WriteString(StatusError.Render(Truncate("render failed: "+m.err.Error(), panelWidth-6)) + "\n")
	case m.busy:
		s.WriteString(StatusBusy.Render("rendering...") + "\n")
	default:
		s.WriteString("\n")
	}

	s.WriteString("\n" + KeyHints("←↑↓→", "pan", "+/-", "zoom") + "\n")
	s.WriteString(KeyHints("[ ]", "iter", "j", "julia", "?", "help") + "\n")

	panel := GlassPanel.
		BorderForeground(m.theme.Border).
		Width(panelWidth - 4).
		Render(s.String())

	frame := lipgloss.NewStyle().Foreground(m.theme.Text).Render(strings.TrimSuffix(m.frame, "\n"))
	main := lipgloss.JoinHorizontal(lipgloss.Top, frame, " ", panel)
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Arrows   - Pan                      ║
║  + / -    - Zoom in/out              ║
║  [ / ]    - Halve/double iterations  ║
║  J        - Toggle Julia set         ║
║  C        - Julia at current center  ║
║  D        - Toggle interior mode     ║
║  T        - Cycle themes             ║
║  R        - Reset view               ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

func RunExplorer(cfg *config.Config) error {
	_, err := tea.NewProgram(NewExplorer(cfg), tea.WithAltScreen()).Run()
	return err
}
