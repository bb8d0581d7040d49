// Package grid provides in-place rotation of square grids.
//
// A grid is addressed as m[row][col]. Rotations move every cell to the
// position it would occupy after physically turning the grid, without
// allocating.
package grid

// Rotation selects the direction and magnitude of a grid rotation.
type Rotation int

const (
	CW   Rotation = 1  // Clockwise quarter turn
	CCW  Rotation = -1 // Counter-clockwise quarter turn
	Half Rotation = 2  // 180 degrees
)

func (r Rotation) String() string {
	switch r {
	case CW:
		return "cw"
	case CCW:
		return "ccw"
	case Half:
		return "half"
	default:
		return "?"
	}
}

// Rotate rotates m in place by r. Unknown rotations leave m untouched.
func Rotate[T any](m [][]T, r Rotation) {
	switch r {
	case CW:
		RotateCW(m)
	case CCW:
		RotateCCW(m)
	case Half:
		Rotate180(m)
	}
}

// RotateCW rotates a square grid 90 degrees clockwise in place.
//
// The grid is walked one concentric ring at a time. For every offset along
// the ring the four corresponding cells (top, right, bottom, left) are read
// together and then written to their rotated positions.
func RotateCW[T any](m [][]T) {
	size := len(m)
	layers := size / 2

	for i := 0; i < layers; i++ {
		first := i
		last := size - i - 1

		for j := first; j < last; j++ {
			offset := j - first

			top := m[first][j]
			right := m[j][last]
			bottom := m[last][last-offset]
			left := m[last-offset][first]

			m[first][j] = left           // left -> top
			m[j][last] = top             // top -> right
			m[last][last-offset] = right // right -> bottom
			m[last-offset][first] = bottom
		}
	}
}

// RotateCCW rotates a square grid 90 degrees counter-clockwise in place.
func RotateCCW[T any](m [][]T) {
	size := len(m)
	layers := size / 2

	for i := 0; i < layers; i++ {
		first := i
		last := size - i - 1

		for j := first; j < last; j++ {
			offset := j - first

			top := m[first][j]
			right := m[j][last]
			bottom := m[last][last-offset]
			left := m[last-offset][first]

			m[first][j] = right          // right -> top
			m[last-offset][first] = top  // top -> left
			m[last][last-offset] = left  // left -> bottom
			m[j][last] = bottom
		}
	}
}

// Rotate180 rotates a square grid by a half turn in place.
func Rotate180[T any](m [][]T) {
	RotateCW(m)
	RotateCW(m)
}
