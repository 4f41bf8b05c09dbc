package gui

import (
	"fmt"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/conserve/internal/dynamo"
	"github.com/san-kum/conserve/internal/plot"
	"github.com/san-kum/conserve/internal/sim"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColPanel   = rl.NewColor(18, 18, 18, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColAxis    = rl.NewColor(90, 90, 90, 255)
)

const (
	screenW    = 1280
	screenH    = 720
	sidebarW   = 320
	margin     = 20
	sliderW    = 200
	sliderH    = 8
	rowH       = 34
	zoomStep   = 0.9
	fontPath   = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	tickTarget = 10
)

type App struct {
	Session  *sim.Session
	View     plot.Viewport
	Home     plot.Viewport
	Frame    sim.Frame
	Font     rl.Font
	Selected int
	Dragging int
	Hover    dynamo.Point
	Hovering bool
	Status   string
	Quit     bool

	momentumCol rl.Color
	energyCol   rl.Color
}

// initWindow opens the 1280×720 window titled "conserve".
func initWindow(fps int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenW, screenH, "conserve")
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono with the subscript glyphs used by the
// tooltip, falling back to raylib's built-in font when it is not installed.
func loadFont() rl.Font {
	codepoints := make([]rune, 0, 100)
	for r := rune(32); r < 127; r++ {
		codepoints = append(codepoints, r)
	}
	codepoints = append(codepoints, '₁', '₂')
	font := rl.LoadFontEx(fontPath, 32, codepoints, int32(len(codepoints)))
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(session *sim.Session) *App {
	cfg := session.Config()
	vp := plot.NewViewport(cfg.Plot.XMin, cfg.Plot.XMax, cfg.Plot.YMin, cfg.Plot.YMax)
	a := &App{
		Session:     session,
		Home:        vp,
		Font:        loadFont(),
		Dragging:    -1,
		momentumCol: hexColor(cfg.Style.Momentum.Color, rl.Red),
		energyCol:   hexColor(cfg.Style.Energy.Color, rl.Blue),
	}
	a.fit()
	a.Frame = session.Frame(a.View.Domain())
	return a
}

// Run opens the window and blocks until it is closed. The session state is
// saved on the way out.
func Run(session *sim.Session) error {
	initWindow(session.Config().FPS)
	defer rl.CloseWindow()
	app := NewApp(session)
	app.RunLoop()
	return session.Close()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.Quit {
		a.Update()
		a.Draw()
	}
}

func plotRect() rl.Rectangle {
	return rl.NewRectangle(sidebarW+margin, margin, screenW-sidebarW-2*margin, screenH-2*margin)
}

func (a *App) fit() {
	r := plotRect()
	a.View = a.Home.Fit(float64(r.Width / r.Height))
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Quit = true
		return
	}
	a.handleKeys()
	a.handleSliders()
	a.handlePlot()
	old := a.Frame
	a.Frame = a.Session.Frame(a.View.Domain())
	a.Session.Recycle(old)
}

func (a *App) handleKeys() {
	n := len(dynamo.Fields)
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected = (a.Selected + 1) % n
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected = (a.Selected + n - 1) % n
	}

	step := 1.0
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 10
	}
	field := dynamo.Fields[a.Selected]
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.Session.Nudge(field, step)
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.Session.Nudge(field, -step)
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		a.Session.Edit(field, 0)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		a.Session.Reset()
		a.Status = "reset"
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		a.Session.Zero()
		a.Status = "zeroed"
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Status = "preset: " + a.Session.NextPreset()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.fit()
	}
}

// sliderRect is the track of field i in the sidebar.
func sliderRect(i int) rl.Rectangle {
	obj := i / 2
	y := float32(110 + obj*130 + 30 + (i%2)*rowH)
	return rl.NewRectangle(margin+80, y, sliderW, sliderH)
}

func (a *App) handleSliders() {
	cfg := a.Session.Config()
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		for i := range dynamo.Fields {
			r := sliderRect(i)
			hit := rl.NewRectangle(r.X-6, r.Y-8, r.Width+12, r.Height+16)
			if rl.CheckCollisionPointRec(mouse, hit) {
				a.Dragging = i
				a.Selected = i
			}
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Dragging = -1
	}
	if a.Dragging < 0 {
		return
	}

	r := sliderRect(a.Dragging)
	t := float64((mouse.X - r.X) / r.Width)
	v := cfg.Slider.Min + t*(cfg.Slider.Max-cfg.Slider.Min)
	a.Session.Edit(dynamo.Fields[a.Dragging], v)
}

func (a *App) handlePlot() {
	r := plotRect()
	mouse := rl.GetMousePosition()
	a.Hovering = rl.CheckCollisionPointRec(mouse, r)
	if !a.Hovering {
		return
	}

	w, h := float64(r.Width), float64(r.Height)
	a.Hover = a.View.FromScreen(float64(mouse.X-r.X), float64(mouse.Y-r.Y), w, h)

	if rl.IsMouseButtonDown(rl.MouseRightButton) || (a.Dragging < 0 && rl.IsMouseButtonDown(rl.MouseLeftButton)) {
		delta := rl.GetMouseDelta()
		dx := -float64(delta.X) / w * a.View.Width()
		dy := float64(delta.Y) / h * a.View.Height()
		a.View = a.View.PanBy(dx, dy)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := zoomStep
		if wheel < 0 {
			factor = 1 / zoomStep
		}
		a.View = a.View.Zoom(factor, a.Hover)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawSidebar()
	a.drawPlot()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) drawSidebar() {
	rl.DrawRectangle(0, 0, sidebarW, screenH, ColPanel)
	a.drawText("conserve", margin, margin, 32, ColSelect)
	a.drawText("momentum & energy in a 1d collision", margin, 60, 13, ColTextDim)

	cfg := a.Session.Config()
	state := a.Session.State()
	for obj := 0; obj < 2; obj++ {
		a.drawText(fmt.Sprintf("Object %d:", obj+1), margin, 110+obj*130, 18, ColAccent)
	}
	for i, f := range dynamo.Fields {
		r := sliderRect(i)
		col := ColText
		if i == a.Selected {
			col = ColSelect
		}
		a.drawText(f.Label(), margin, int(r.Y)-6, 16, col)
		a.drawSlider(r, state.Get(f), cfg.Slider.Min, cfg.Slider.Max, i == a.Selected)
		a.drawText(fmt.Sprintf("%6.2f", state.Get(f)), int(r.X+r.Width)+10, int(r.Y)-6, 16, col)
	}

	sum := sim.Summarize(state)
	y := 390
	rows := []string{
		fmt.Sprintf("momentum   %.3f", sum.Momentum),
		fmt.Sprintf("energy     %.3f", sum.Energy),
		fmt.Sprintf("reach |v₁| %.3f %s", sum.ReachableBound, plot.Unit),
		fmt.Sprintf("elastic    (%.2f, %.2f)", sum.Elastic.X, sum.Elastic.Y),
		fmt.Sprintf("inelastic  %.3f %s", sum.Inelastic.X, plot.Unit),
		fmt.Sprintf("lost       %.3f", sum.EnergyLoss),
	}
	for _, row := range rows {
		a.drawText(row, margin, y, 15, ColText)
		y += 24
	}
}

func (a *App) drawSlider(r rl.Rectangle, v, lo, hi float64, active bool) {
	t := 0.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	t = max(0, min(1, t))
	knobX := r.X + float32(t)*r.Width

	rl.DrawRectangleRec(r, ColGrid)
	fill := ColTextDim
	knob := ColAccent
	if active {
		fill = ColAccent
		knob = ColSelect
	}
	rl.DrawRectangleRec(rl.NewRectangle(r.X, r.Y, knobX-r.X, r.Height), fill)
	rl.DrawCircleV(rl.NewVector2(knobX, r.Y+r.Height/2), 8, knob)
}

func (a *App) drawPlot() {
	r := plotRect()
	w, h := float64(r.Width), float64(r.Height)

	rl.BeginScissorMode(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))

	for _, x := range plot.Ticks(a.View.XMin, a.View.XMax, tickTarget) {
		sx, _ := a.View.ToScreen(dynamo.Point{X: x}, w, h)
		col := ColGrid
		if x == 0 {
			col = ColAxis
		}
		rl.DrawLineV(rl.NewVector2(r.X+float32(sx), r.Y), rl.NewVector2(r.X+float32(sx), r.Y+r.Height), col)
		a.drawText(plot.AxisLabel(x), int(r.X)+int(sx)+4, int(r.Y+r.Height)-18, 12, ColTextDim)
	}
	for _, y := range plot.Ticks(a.View.YMin, a.View.YMax, tickTarget) {
		_, sy := a.View.ToScreen(dynamo.Point{Y: y}, w, h)
		col := ColGrid
		if y == 0 {
			col = ColAxis
		}
		rl.DrawLineV(rl.NewVector2(r.X, r.Y+float32(sy)), rl.NewVector2(r.X+r.Width, r.Y+float32(sy)), col)
		a.drawText(plot.AxisLabel(y), int(r.X)+4, int(r.Y)+int(sy)-16, 12, ColTextDim)
	}

	for _, s := range a.Frame.Series() {
		col := a.energyCol
		if s.Name == plot.MomentumLegend {
			col = a.momentumCol
		}
		a.drawSeries(r, s, col)
	}

	if a.Hovering {
		mouse := rl.GetMousePosition()
		rl.DrawCircleV(mouse, 3, ColSelect)
		a.drawText(plot.Tooltip(a.Hover), int(mouse.X)+12, int(mouse.Y)+12, 14, ColSelect)
	}

	rl.EndScissorMode()
	rl.DrawRectangleLinesEx(r, 1, ColGrid)
	a.drawLegend(r)
}

func (a *App) drawSeries(r rl.Rectangle, s dynamo.Series, col rl.Color) {
	w, h := float64(r.Width), float64(r.Height)
	thick := float32(s.Style.Width)
	if thick <= 0 {
		thick = 1
	}
	for _, seg := range plot.Segments(s.Points) {
		prev := rl.Vector2{}
		for i, p := range seg {
			sx, sy := a.View.ToScreen(p, w, h)
			cur := rl.NewVector2(r.X+float32(sx), r.Y+float32(sy))
			if i > 0 {
				rl.DrawLineEx(prev, cur, thick, col)
			} else if len(seg) == 1 {
				rl.DrawCircleV(cur, thick/2, col)
			}
			prev = cur
		}
	}
}

func (a *App) drawLegend(r rl.Rectangle) {
	x := int(r.X+r.Width) - 240
	y := int(r.Y) + 12
	entries := []struct {
		name string
		col  rl.Color
	}{
		{plot.MomentumLegend, a.momentumCol},
		{plot.EnergyLegend, a.energyCol},
	}
	rl.DrawRectangle(int32(x-10), int32(y-6), 240, int32(len(entries)*24+8), rl.NewColor(10, 10, 10, 220))
	for _, e := range entries {
		rl.DrawLineEx(rl.NewVector2(float32(x), float32(y+8)), rl.NewVector2(float32(x+24), float32(y+8)), 3, e.col)
		a.drawText(e.name, x+34, y, 14, ColText)
		y += 24
	}
}

func (a *App) DrawHUD() {
	a.drawText("[DRAG] SLIDERS/PAN  [WHEEL] ZOOM  [F] FIT  [P] PRESET  [R] RESET  [Q] QUIT", margin, screenH-60, 12, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), margin, screenH-36, 14, ColTextDim)
	if a.Status != "" {
		a.drawText(strings.ToUpper(a.Status), 110, screenH-36, 14, ColAccent)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// hexColor parses "#rrggbb" into a raylib colour.
func hexColor(s string, fallback rl.Color) rl.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return rl.NewColor(uint8(v>>16), uint8(v>>8), uint8(v), 255)
}
