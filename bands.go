package cubesim

import "github.com/SeamusWaldron/cubesim/pkg/grid"

// band is one row or column of a face adjacent to a turning side.
type band struct {
	side     Side
	column   bool // runs down a column rather than along a row
	last     bool // fixed line is dim-1 rather than 0
	reversed bool // index i maps to dim-1-i
}

// cell returns the row and column of the band's i-th cell on a cube whose
// last index is d.
func (b band) cell(i, d int) (row, col int) {
	line := 0
	if b.last {
		line = d
	}
	k := i
	if b.reversed {
		k = d - i
	}
	if b.column {
		return k, line
	}
	return line, k
}

// adjacentBands lists, for each turning side, the four bands it drags
// along. They are ordered in the direction content flows on a regular
// (clockwise seen from that side) turn: band 0 moves to band 1, 1 to 2,
// 2 to 3 and 3 back to 0.
var adjacentBands = [6][4]band{
	Front: {
		{side: Top, last: true},
		{side: Right, column: true, last: true, reversed: true},
		{side: Bottom, last: true, reversed: true},
		{side: Left, column: true, last: true},
	},
	Back: {
		{side: Top, reversed: true},
		{side: Left, column: true, reversed: true},
		{side: Bottom},
		{side: Right, column: true},
	},
	Left: {
		{side: Top, column: true},
		{side: Front, column: true, reversed: true},
		{side: Bottom, column: true, reversed: true},
		{side: Back, column: true},
	},
	Right: {
		{side: Top, column: true, last: true},
		{side: Back, column: true, last: true},
		{side: Bottom, column: true, last: true, reversed: true},
		{side: Front, column: true, last: true, reversed: true},
	},
	Top: {
		{side: Front, last: true},
		{side: Left, last: true},
		{side: Back, last: true, reversed: true},
		{side: Right, last: true, reversed: true},
	},
	Bottom: {
		{side: Front},
		{side: Right, reversed: true},
		{side: Back, reversed: true},
		{side: Left},
	},
}

// faceRotation returns how the turning side's own grid rotates in index
// space. Opposite faces are stored mirrored, so left, bottom and front
// rotate counter-clockwise on a regular turn while right, back and top
// rotate clockwise.
func faceRotation(s Side, dir Direction) grid.Rotation {
	if dir == Double {
		return grid.Half
	}

	regular := grid.CW
	switch s {
	case Left, Bottom, Front:
		regular = grid.CCW
	}

	if dir == Prime {
		return -regular
	}
	return regular
}

// Turn commits the full permutation of m to the cube.
// Moves with an unknown side or direction are ignored.
func (c *Cube) Turn(m Move) {
	c.turnSide(m.Side, m)
}

// turnSide permutes the cube for a turn of side s. It does nothing unless
// m is a turn of that same side.
func (c *Cube) turnSide(s Side, m Move) {
	if m.Side != s || !s.Valid() || !m.Direction.Valid() {
		return
	}

	grid.Rotate(c.faces[s], faceRotation(s, m.Direction))
	c.cycleBands(s, m.Direction)
}

// cycleBands moves the four bands around side s. A 1×1×1 turn only
// reorients the whole cube, so there is nothing to cycle below dim 2.
func (c *Cube) cycleBands(s Side, dir Direction) {
	if c.dim < 2 {
		return
	}

	d := c.dim - 1
	bands := &adjacentBands[s]

	for i := 0; i < c.dim; i++ {
		var cells [4]*Cell
		for k, b := range bands {
			r, col := b.cell(i, d)
			cells[k] = &c.faces[b.side][r][col]
		}

		c0, c1, c2, c3 := *cells[0], *cells[1], *cells[2], *cells[3]
		switch dir {
		case Regular:
			*cells[1], *cells[2], *cells[3], *cells[0] = c0, c1, c2, c3
		case Prime:
			*cells[0], *cells[1], *cells[2], *cells[3] = c1, c2, c3, c0
		case Double:
			// Opposite bands trade places directly.
			*cells[0], *cells[2] = c2, c0
			*cells[1], *cells[3] = c3, c1
		}
	}
}

// TurningCells returns every position that moves when side s turns: the
// side's own cells followed by the four adjacent bands. Renderers group
// the tiles at these positions while a turn of s is animating.
func (c *Cube) TurningCells(s Side) []Position {
	if !s.Valid() {
		return nil
	}

	out := make([]Position, 0, c.dim*c.dim+4*c.dim)
	for r := 0; r < c.dim; r++ {
		for col := 0; col < c.dim; col++ {
			out = append(out, Position{Side: s, Row: r, Col: col})
		}
	}

	if c.dim < 2 {
		return out
	}

	d := c.dim - 1
	for i := 0; i < c.dim; i++ {
		for _, b := range adjacentBands[s] {
			r, col := b.cell(i, d)
			out = append(out, Position{Side: b.side, Row: r, Col: col})
		}
	}
	return out
}
