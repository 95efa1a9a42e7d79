// Package field provides the grid storage shared by all simulation passes:
// fixed-size 4-channel cell grids and the explicit double buffer used to
// ping-pong them between read and write roles.
package field

// Cell is one grid texel. Channel meaning depends on the owning pass
// (e.g. the heightfield stores elevation, d(eta)/dt, u, v).
type Cell [4]float64

// Grid is a fixed-resolution 2D array of cells. Resolution is set at
// construction and never changes.
type Grid struct {
	W, H  int
	cells []Cell
}

func NewGrid(w, h int) *Grid {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Grid{W: w, H: h, cells: make([]Cell, w*h)}
}

func (g *Grid) At(x, y int) Cell {
	return g.cells[y*g.W+x]
}

func (g *Grid) Set(x, y int, c Cell) {
	g.cells[y*g.W+x] = c
}

// AtClamped reads with indices clamped into range; out-of-bounds lookups
// return the nearest edge cell rather than faulting.
func (g *Grid) AtClamped(x, y int) Cell {
	if x < 0 {
		x = 0
	}
	if x >= g.W {
		x = g.W - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.H {
		y = g.H - 1
	}
	return g.cells[y*g.W+x]
}

// Sample reads a cell at fractional grid coordinates with bilinear
// interpolation, clamping to the grid edge.
func (g *Grid) Sample(fx, fy float64) Cell {
	if fx < 0 {
		fx = 0
	}
	if fy < 0 {
		fy = 0
	}
	if fx > float64(g.W-1) {
		fx = float64(g.W - 1)
	}
	if fy > float64(g.H-1) {
		fy = float64(g.H - 1)
	}
	x0, y0 := int(fx), int(fy)
	x1, y1 := x0+1, y0+1
	if x1 >= g.W {
		x1 = g.W - 1
	}
	if y1 >= g.H {
		y1 = g.H - 1
	}
	tx, ty := fx-float64(x0), fy-float64(y0)

	var out Cell
	c00, c10 := g.cells[y0*g.W+x0], g.cells[y0*g.W+x1]
	c01, c11 := g.cells[y1*g.W+x0], g.cells[y1*g.W+x1]
	for i := 0; i < 4; i++ {
		top := c00[i] + (c10[i]-c00[i])*tx
		bot := c01[i] + (c11[i]-c01[i])*tx
		out[i] = top + (bot-top)*ty
	}
	return out
}

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// DoubleBuffer pairs two equally-shaped grids so a pass can read one while
// writing the other. Exactly one grid is the read side at any moment;
// Swap flips the roles atomically between passes.
type DoubleBuffer struct {
	a, b *Grid
	flip bool
}

func NewDoubleBuffer(w, h int) *DoubleBuffer {
	return &DoubleBuffer{a: NewGrid(w, h), b: NewGrid(w, h)}
}

func (d *DoubleBuffer) Read() *Grid {
	if d.flip {
		return d.b
	}
	return d.a
}

func (d *DoubleBuffer) Write() *Grid {
	if d.flip {
		return d.a
	}
	return d.b
}

func (d *DoubleBuffer) Swap() { d.flip = !d.flip }

// Reset zeroes both sides and restores the initial read/write orientation.
func (d *DoubleBuffer) Reset() {
	d.a.Clear()
	d.b.Clear()
	d.flip = false
}

// ResetTo fills both sides with c, for fields whose rest state is nonzero
// (the sheet initializes thickness to 1).
func (d *DoubleBuffer) ResetTo(c Cell) {
	d.a.Fill(c)
	d.b.Fill(c)
	d.flip = false
}
