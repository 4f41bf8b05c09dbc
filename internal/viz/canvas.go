package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blank  = 0x2800
	noInk  = -1
	inkMax = 8
)

// Canvas is a braille pixel grid. Each cell also remembers the ink of the
// last pixel set in it so series can be coloured.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]int
	pen           int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Ink:    make([][]int, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]int, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels: (Width*2) x (Height*4).
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// SetPen selects the ink used by subsequent Set calls.
func (c *Canvas) SetPen(ink int) {
	if ink < 0 || ink >= inkMax {
		ink = noInk
	}
	c.pen = ink
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Ink[row][col] = c.pen
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = noInk
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawSegment draws a line given in fractional sub-pixel coordinates,
// clipped to the canvas first so far-away endpoints stay cheap.
func (c *Canvas) DrawSegment(x0, y0, x1, y1 float64) {
	w, h := c.PixelSize()
	x0, y0, x1, y1, ok := clipLine(x0, y0, x1, y1, 0, 0, float64(w-1), float64(h-1))
	if !ok {
		return
	}
	c.DrawLine(int(x0+0.5), int(y0+0.5), int(x1+0.5), int(y1+0.5))
}

// clipLine is Liang-Barsky clipping against [xmin, xmax] x [ymin, ymax].
// Endpoints moved onto an edge are snapped to it exactly.
func clipLine(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	var on0, on1 [4]bool
	dx, dy := x1-x0, y1-y0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}

	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
				on0 = [4]bool{}
				on0[i] = true
			} else if r == t0 && t0 > 0 {
				on0[i] = true
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
				on1 = [4]bool{}
				on1[i] = true
			} else if r == t1 && t1 < 1 {
				on1[i] = true
			}
		}
	}

	edges := [4]float64{xmin, xmax, ymin, ymax}
	cx0, cy0 := snap(x0+t0*dx, y0+t0*dy, on0, edges)
	cx1, cy1 := snap(x0+t1*dx, y0+t1*dy, on1, edges)
	return cx0, cy0, cx1, cy1, true
}

func snap(x, y float64, on [4]bool, edges [4]float64) (float64, float64) {
	for i, hit := range on {
		if !hit {
			continue
		}
		if i < 2 {
			x = edges[i]
		} else {
			y = edges[i]
		}
	}
	return x, y
}

// String returns the grid without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render draws the grid with one style per ink. Runs of cells with the same
// ink share a single styled span.
func (c *Canvas) Render(inks []lipgloss.Style) string {
	if len(inks) == 0 {
		return c.String()
	}
	var b strings.Builder
	for r, row := range c.Grid {
		start := 0
		for col := 1; col <= len(row); col++ {
			if col < len(row) && c.Ink[r][col] == c.Ink[r][start] {
				continue
			}
			span := string(row[start:col])
			ink := c.Ink[r][start]
			if ink >= 0 && ink < len(inks) {
				span = inks[ink].Render(span)
			}
			b.WriteString(span)
			start = col
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
