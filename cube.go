package cubesim

import (
	"fmt"
	"strings"
)

// Cell is a single tile of a face.
//
// ID is the cell's home index (side*dim*dim + row*dim + col) assigned when
// the cube is created. It travels with the tile through every turn, so a
// renderer can keep one mesh per ID.
type Cell struct {
	Color Color `json:"color"`
	ID    int   `json:"id"`
}

// Position addresses a cell by face, row and column.
type Position struct {
	Side Side `json:"side"`
	Row  int  `json:"row"`
	Col  int  `json:"col"`
}

// Face is the dim x dim grid of cells belonging to one side, indexed
// face[row][col].
type Face [][]Cell

// Dim returns the side length of the face.
func (f Face) Dim() int {
	return len(f)
}

// At returns the cell at row, col.
func (f Face) At(row, col int) Cell {
	return f[row][col]
}

// Colors returns the face colors in the same row/col layout.
func (f Face) Colors() [][]Color {
	out := make([][]Color, len(f))
	for r, row := range f {
		out[r] = make([]Color, len(row))
		for c, cell := range row {
			out[r][c] = cell.Color
		}
	}
	return out
}

func (f Face) clone() Face {
	out := make(Face, len(f))
	for r := range f {
		out[r] = append([]Cell(nil), f[r]...)
	}
	return out
}

// Cube is the logical state of an N×N×N cube: six faces indexed by Side.
//
// A Cube is created once and then mutated in place by committed turns.
// Turns only ever move cells between positions, so the color multiset of
// the solved cube is preserved.
type Cube struct {
	dim   int
	faces [6]Face
}

// New creates a solved cube of the given dimension.
func New(dim int) (*Cube, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}

	c := &Cube{dim: dim}
	for _, side := range Sides {
		face := make(Face, dim)
		for r := 0; r < dim; r++ {
			face[r] = make([]Cell, dim)
			for col := 0; col < dim; col++ {
				face[r][col] = Cell{
					Color: SolvedColor(side),
					ID:    int(side)*dim*dim + r*dim + col,
				}
			}
		}
		c.faces[side] = face
	}
	return c, nil
}

// Dim returns the cube dimension.
func (c *Cube) Dim() int {
	return c.dim
}

// Face returns a copy of the face for side s.
// Mutating the result does not affect the cube.
func (c *Cube) Face(s Side) Face {
	if !s.Valid() {
		return nil
	}
	return c.faces[s].clone()
}

// At returns the cell at the given position.
func (c *Cube) At(s Side, row, col int) Cell {
	return c.faces[s][row][col]
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := &Cube{dim: c.dim}
	for i := range c.faces {
		clone.faces[i] = c.faces[i].clone()
	}
	return clone
}

// Equal reports whether both cubes hold the same cells in the same places.
func (c *Cube) Equal(other *Cube) bool {
	if other == nil || c.dim != other.dim {
		return false
	}
	for i := range c.faces {
		for r := 0; r < c.dim; r++ {
			for col := 0; col < c.dim; col++ {
				if c.faces[i][r][col] != other.faces[i][r][col] {
					return false
				}
			}
		}
	}
	return true
}

// IsSolved returns true if every face shows a single color.
// Whole-cube reorientations of a solved cube count as solved.
func (c *Cube) IsSolved() bool {
	for _, face := range c.faces {
		want := face[0][0].Color
		for _, row := range face {
			for _, cell := range row {
				if cell.Color != want {
					return false
				}
			}
		}
	}
	return true
}

// ColorCounts returns how many cells of each color the cube holds.
func (c *Cube) ColorCounts() map[Color]int {
	counts := make(map[Color]int, 6)
	for _, face := range c.faces {
		for _, row := range face {
			for _, cell := range row {
				counts[cell.Color]++
			}
		}
	}
	return counts
}

// Apply commits moves to the cube immediately, without animation.
func (c *Cube) Apply(moves ...Move) {
	for _, m := range moves {
		c.Turn(m)
	}
}

// ApplyNotation parses s and applies every recognised move.
// It returns the number of moves applied.
func (c *Cube) ApplyNotation(s string) int {
	moves := ParseMoves(s)
	c.Apply(moves...)
	return len(moves)
}

// View returns the colors of side s as seen when looking straight at it,
// oriented the way the side appears in an unfolded net (top above front,
// bottom below, left/right/back in a row).
func (c *Cube) View(s Side) [][]Color {
	d := c.dim - 1
	face := c.faces[s]
	out := make([][]Color, c.dim)
	for vr := 0; vr < c.dim; vr++ {
		out[vr] = make([]Color, c.dim)
		for vc := 0; vc < c.dim; vc++ {
			var r, col int
			switch s {
			case Top:
				r, col = vr, vc
			case Front, Left, Bottom:
				r, col = d-vr, vc
			case Right, Back:
				r, col = d-vr, d-vc
			}
			out[vr][vc] = face[r][col].Color
		}
	}
	return out
}

// String returns the cube as an unfolded net:
//
//	  U
//	L F R B
//	  D
func (c *Cube) String() string {
	var b strings.Builder
	pad := strings.Repeat("  ", c.dim)

	writeRow := func(row []Color) {
		for _, color := range row {
			b.WriteString(color.String())
			b.WriteByte(' ')
		}
	}

	top := c.View(Top)
	for r := 0; r < c.dim; r++ {
		b.WriteString(pad)
		writeRow(top[r])
		b.WriteByte('\n')
	}

	middle := [4][][]Color{c.View(Left), c.View(Front), c.View(Right), c.View(Back)}
	for r := 0; r < c.dim; r++ {
		for _, view := range middle {
			writeRow(view[r])
		}
		b.WriteByte('\n')
	}

	bottom := c.View(Bottom)
	for r := 0; r < c.dim; r++ {
		b.WriteString(pad)
		writeRow(bottom[r])
		b.WriteByte('\n')
	}

	return b.String()
}

// Snapshot is a serialisable view of the cube colors.
// Faces are keyed by side name and laid out face[row][col] in storage order.
type Snapshot struct {
	Dim    int                   `json:"dim" yaml:"dim"`
	Solved bool                  `json:"solved" yaml:"solved"`
	Faces  map[string][][]string `json:"faces" yaml:"faces"`
}

// Snapshot captures the current colors.
func (c *Cube) Snapshot() Snapshot {
	snap := Snapshot{
		Dim:    c.dim,
		Solved: c.IsSolved(),
		Faces:  make(map[string][][]string, 6),
	}
	for _, side := range Sides {
		rows := make([][]string, c.dim)
		for r, row := range c.faces[side].Colors() {
			rows[r] = make([]string, c.dim)
			for col, color := range row {
				rows[r][col] = color.String()
			}
		}
		snap.Faces[side.String()] = rows
	}
	return snap
}
