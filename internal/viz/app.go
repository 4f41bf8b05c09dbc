package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/san-kum/conserve/internal/plot"
	"github.com/san-kum/conserve/internal/sim"
)

const (
	sidebarWidth = 40
	sliderWidth  = 18
	minPlotCols  = 20
	minPlotRows  = 8
	coarseSteps  = 10
)

const (
	focusSliders = iota
	focusPlot
)

const (
	inkMomentum = iota
	inkEnergy
	inkAxis
	inkMarker
)

type TickMsg time.Time

// Model is the terminal front end: slider panel on the left, plot on the
// right. It drives one session and re-evaluates the curves on every frame.
type Model struct {
	session    *sim.Session
	viewport   plot.Viewport
	home       plot.Viewport
	frame      sim.Frame
	canvas     *Canvas
	focus      int
	selected   int
	cursor     dynamo.Point
	showCursor bool
	showHelp   bool
	status     string
	fps        int
	width      int
	height     int
}

func NewModel(session *sim.Session) Model {
	cfg := session.Config()
	vp := plot.NewViewport(cfg.Plot.XMin, cfg.Plot.XMax, cfg.Plot.YMin, cfg.Plot.YMax)
	SetTheme(cfg.Theme)
	fps := cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	m := Model{
		session:  session,
		viewport: vp,
		home:     vp,
		fps:      fps,
		width:    120,
		height:   32,
	}
	m.resize()
	m.refresh()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles one host event. The frame is re-evaluated from the session
// state after every event so edits show up on the same redraw.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case TickMsg:
		cmd = m.tick()
	}
	m.refresh()
	return m, cmd
}

func (m *Model) handleKey(key string) {
	switch key {
	case "?":
		m.showHelp = !m.showHelp
		return
	case "tab":
		m.focus = 1 - m.focus
		return
	case "t":
		NextTheme()
		m.status = "theme: " + CurrentTheme.Name
		return
	case "p":
		m.status = "preset: " + m.session.NextPreset()
		return
	case "r":
		m.session.Reset()
		m.status = "reset"
		return
	case "z":
		m.session.Zero()
		m.status = "zeroed"
		return
	case "+", "=":
		m.viewport = m.viewport.Zoom(0.8, m.zoomAnchor())
		return
	case "-", "_":
		m.viewport = m.viewport.Zoom(1.25, m.zoomAnchor())
		return
	case "f":
		m.fit()
		return
	}

	if m.focus == focusSliders {
		m.sliderKey(key)
	} else {
		m.plotKey(key)
	}
}

func (m *Model) sliderKey(key string) {
	field := dynamo.Fields[m.selected]
	switch key {
	case "up", "k", "shift+tab":
		m.selected = (m.selected + len(dynamo.Fields) - 1) % len(dynamo.Fields)
	case "down", "j":
		m.selected = (m.selected + 1) % len(dynamo.Fields)
	case "left", "h":
		m.session.Nudge(field, -1)
	case "right", "l":
		m.session.Nudge(field, 1)
	case "H":
		m.session.Nudge(field, -coarseSteps)
	case "L":
		m.session.Nudge(field, coarseSteps)
	case "0":
		m.session.Edit(field, 0)
	}
}

func (m *Model) plotKey(key string) {
	step := m.viewport.Width() / 50
	switch key {
	case "left", "h":
		m.viewport = m.viewport.Pan(-0.1, 0)
	case "right", "l":
		m.viewport = m.viewport.Pan(0.1, 0)
	case "up", "k":
		m.viewport = m.viewport.Pan(0, 0.1)
	case "down", "j":
		m.viewport = m.viewport.Pan(0, -0.1)
	case "c":
		m.showCursor = !m.showCursor
		if m.showCursor && !m.viewport.Contains(m.cursor) {
			m.cursor = m.viewport.Center()
		}
	case "a":
		m.moveCursor(-step, 0)
	case "d":
		m.moveCursor(step, 0)
	case "w":
		m.moveCursor(0, step)
	case "s":
		m.moveCursor(0, -step)
	}
}

func (m *Model) moveCursor(dx, dy float64) {
	m.showCursor = true
	m.cursor.X += dx
	m.cursor.Y += dy
}

func (m Model) zoomAnchor() dynamo.Point {
	if m.showCursor {
		return m.cursor
	}
	return m.viewport.Center()
}

func (m *Model) plotSize() (int, int) {
	cols := m.width - sidebarWidth - 4
	rows := m.height - 6
	if cols < minPlotCols {
		cols = minPlotCols
	}
	if rows < minPlotRows {
		rows = minPlotRows
	}
	return cols, rows
}

func (m *Model) resize() {
	cols, rows := m.plotSize()
	m.canvas = NewCanvas(cols, rows)
	m.fit()
}

// fit restores the configured view with equal scale on both axes.
func (m *Model) fit() {
	pw, ph := m.canvas.PixelSize()
	m.viewport = m.home.Fit(float64(pw) / float64(ph))
}

// refresh is the per-frame callback: sample curves over the visible domain
// and redraw the canvas.
func (m *Model) refresh() {
	old := m.frame
	m.frame = m.session.Frame(m.viewport.Domain())
	m.session.Recycle(old)
	m.draw()
}

func (m *Model) draw() {
	c := m.canvas
	c.Clear()
	pw, ph := c.PixelSize()
	w, h := float64(pw), float64(ph)

	c.SetPen(inkAxis)
	ox, oy := m.viewport.ToScreen(dynamo.Point{}, w, h)
	c.DrawSegment(ox, 0, ox, h-1)
	c.DrawSegment(0, oy, w-1, oy)

	for i, series := range m.frame.Series() {
		ink := inkEnergy
		if i == 0 {
			ink = inkMomentum
		}
		c.SetPen(ink)
		drawSeries(c, m.viewport, series.Points)
	}

	if m.showCursor {
		c.SetPen(inkMarker)
		cx, cy := m.viewport.ToScreen(m.cursor, w, h)
		c.DrawSegment(cx-3, cy, cx+3, cy)
		c.DrawSegment(cx, cy-3, cx, cy+3)
	}
}

func drawSeries(c *Canvas, vp plot.Viewport, points []dynamo.Point) {
	pw, ph := c.PixelSize()
	w, h := float64(pw), float64(ph)
	for _, seg := range plot.Segments(points) {
		if len(seg) == 1 {
			x, y := vp.ToScreen(seg[0], w, h)
			c.DrawSegment(x, y, x, y)
			continue
		}
		for i := 1; i < len(seg); i++ {
			x0, y0 := vp.ToScreen(seg[i-1], w, h)
			x1, y1 := vp.ToScreen(seg[i], w, h)
			c.DrawSegment(x0, y0, x1, y1)
		}
	}
}

func (m Model) View() string {
	if m.showHelp {
		return helpView()
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), "  ", m.plotView())
	return main + "\n" + m.footerView()
}

func (m Model) sidebarView() string {
	var b strings.Builder
	b.WriteString(titleStyle().Render("CONSERVE") + "\n")
	b.WriteString(mutedStyle().Render("momentum & energy in a 1d collision") + "\n\n")

	for obj := 0; obj < 2; obj++ {
		b.WriteString(m.groupView(obj) + "\n")
	}

	sum := sim.Summarize(m.session.State())
	label := mutedStyle().Width(12)
	value := textStyle()
	b.WriteString(Separator(sidebarWidth-2) + "\n")
	b.WriteString(label.Render("Momentum") + value.Render(fmt.Sprintf("%.3f", sum.Momentum)) + "\n")
	b.WriteString(label.Render("Energy") + value.Render(fmt.Sprintf("%.3f", sum.Energy)) + "\n")
	b.WriteString(label.Render("Reach |v₁|") + value.Render(fmt.Sprintf("%.3f %s", sum.ReachableBound, plot.Unit)) + "\n")
	b.WriteString(label.Render("Elastic") + value.Render(fmt.Sprintf("(%.3f, %.3f)", sum.Elastic.X, sum.Elastic.Y)) + "\n")
	b.WriteString(label.Render("Inelastic") + value.Render(fmt.Sprintf("%.3f %s", sum.Inelastic.X, plot.Unit)) + "\n")

	return lipgloss.NewStyle().Width(sidebarWidth).Render(b.String())
}

func (m Model) groupView(obj int) string {
	cfg := m.session.Config()
	state := m.session.State()
	var rows []string
	rows = append(rows, textStyle().Bold(true).Render(fmt.Sprintf("Object %d:", obj+1)))
	active := false
	for i, f := range dynamo.Fields {
		if f.Object() != obj {
			continue
		}
		sel := m.focus == focusSliders && i == m.selected
		active = active || sel
		name := mutedStyle().Render(f.Label())
		if sel {
			name = lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).Render(f.Label())
		}
		rows = append(rows, fmt.Sprintf("%s %s %s",
			SliderBar(state.Get(f), cfg.Slider.Min, cfg.Slider.Max, sliderWidth, sel),
			textStyle().Render(formatValue(state.Get(f))),
			name))
	}
	return groupStyle(active).Render(strings.Join(rows, "\n"))
}

func (m Model) plotView() string {
	momentum := seriesColor(m.frame.Momentum.Style, CurrentTheme.Momentum)
	energy := seriesColor(m.frame.EnergyUpper.Style, CurrentTheme.Energy)
	inks := []lipgloss.Style{
		lipgloss.NewStyle().Foreground(momentum),
		lipgloss.NewStyle().Foreground(energy),
		lipgloss.NewStyle().Foreground(CurrentTheme.Axis),
		lipgloss.NewStyle().Foreground(CurrentTheme.Marker),
	}

	vp := m.viewport
	top := mutedStyle().Render(plot.AxisLabel(vp.YMax))
	bottomRow := m.xAxisLabels()
	canvas := m.canvas.Render(inks)

	legend := lipgloss.NewStyle().Foreground(momentum).Render("━━ ") + mutedStyle().Render(plot.MomentumLegend) + "   " +
		lipgloss.NewStyle().Foreground(energy).Render("━━ ") + mutedStyle().Render(plot.EnergyLegend)

	parts := []string{top, strings.TrimRight(canvas, "\n"), mutedStyle().Render(plot.AxisLabel(vp.YMin)), bottomRow, legend}
	if m.showCursor {
		tip := strings.ReplaceAll(plot.Tooltip(m.cursor), "\n", "   ")
		parts = append(parts, lipgloss.NewStyle().Foreground(CurrentTheme.Marker).Render(tip))
	}

	border := CurrentTheme.Border
	if m.focus == focusPlot {
		border = CurrentTheme.Primary
	}
	return lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(border).PaddingLeft(1).Render(strings.Join(parts, "\n"))
}

func (m Model) xAxisLabels() string {
	cols := m.canvas.Width
	left := plot.AxisLabel(m.viewport.XMin)
	mid := plot.AxisLabel(m.viewport.Center().X)
	right := plot.AxisLabel(m.viewport.XMax)
	gap := cols - len(left) - len(mid) - len(right)
	if gap < 2 {
		return mutedStyle().Render(left + " … " + right)
	}
	pad1 := gap / 2
	pad2 := gap - pad1
	return mutedStyle().Render(left + strings.Repeat(" ", pad1) + mid + strings.Repeat(" ", pad2) + right)
}

func (m Model) footerView() string {
	focus := "sliders"
	if m.focus == focusPlot {
		focus = "plot"
	}
	line := keyHint("tab", "focus:"+focus) + keyHint("h/l", "adjust/pan") + keyHint("j/k", "select/pan") +
		keyHint("+/-", "zoom") + keyHint("wasd", "cursor") + keyHint("p", "preset") + keyHint("?", "help") + keyHint("q", "quit")
	if m.status != "" {
		line += textStyle().Render(m.status)
	}
	return line
}

func helpView() string {
	return `
╔══════════════════════════════════════════╗
║            KEYBOARD SHORTCUTS            ║
╠══════════════════════════════════════════╣
║  Tab        - Switch sliders / plot      ║
║  j/k ↑/↓    - Select slider (sliders)    ║
║  h/l ←/→    - Adjust by one step         ║
║  H/L        - Adjust by ten steps        ║
║  0          - Zero the selected slider   ║
║  arrows     - Pan (plot)                 ║
║  w/a/s/d    - Move cursor (plot)         ║
║  c          - Toggle cursor (plot)       ║
║  +/-        - Zoom in / out              ║
║  f          - Reset the view             ║
║  p          - Next preset                ║
║  r / z      - Reset / zero all sliders   ║
║  t          - Cycle themes               ║
║  ?          - Toggle this help           ║
║  q          - Quit                       ║
╚══════════════════════════════════════════╝
`
}

// Run starts the terminal UI on the alternate screen and blocks until the
// user quits.
func Run(session *sim.Session) error {
	_, err := tea.NewProgram(NewModel(session), tea.WithAltScreen()).Run()
	return err
}
