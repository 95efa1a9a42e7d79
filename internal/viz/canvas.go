package viz

import "strings"

// Braille patterns give a 2x4 sub-pixel grid per terminal cell,
// unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille drawing surface for the surface-profile strip.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	c.Clear()
	return c
}

// Set lights a sub-pixel. Coordinates span (Width*2) x (Height*4).
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
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		if c.Grid[i] == nil {
			c.Grid[i] = make([]rune, c.Width)
		}
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// PlotProfile draws a series as a connected curve, autoscaled to the
// canvas. Values map top-down: larger values plot higher.
func (c *Canvas) PlotProfile(values []float64) {
	if len(values) < 2 {
		return
	}
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV
	if span < 1e-9 {
		span = 1
	}

	subW := c.Width * 2
	subH := c.Height * 4
	prevX, prevY := -1, -1
	for i := 0; i < subW; i++ {
		f := float64(i) / float64(subW-1) * float64(len(values)-1)
		j := int(f)
		if j >= len(values)-1 {
			j = len(values) - 2
		}
		t := f - float64(j)
		v := values[j]*(1-t) + values[j+1]*t

		y := subH - 1 - int((v-minV)/span*float64(subH-1))
		if prevX >= 0 {
			c.drawLine(prevX, prevY, i, y)
		}
		prevX, prevY = i, y
	}
}

// drawLine is Bresenham over sub-pixels.
func (c *Canvas) drawLine(x0, y0, x1, y1 int) {
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
			return
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
