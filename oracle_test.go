package cubesim

// The oracle turns a cube by moving every sticker through 3D space instead
// of through the band table. Sticker coordinates are cubie indices 0..d
// with x to the right, y up and z toward the front.

type vec3 struct{ x, y, z int }

func stickerPos(s Side, row, col, d int) vec3 {
	switch s {
	case Front:
		return vec3{col, row, d}
	case Back:
		return vec3{col, row, 0}
	case Top:
		return vec3{col, d, row}
	case Bottom:
		return vec3{col, 0, row}
	case Left:
		return vec3{0, row, col}
	default: // Right
		return vec3{d, row, col}
	}
}

func stickerIndex(s Side, p vec3) (row, col int) {
	switch s {
	case Front, Back:
		return p.y, p.x
	case Top, Bottom:
		return p.z, p.x
	default: // Left, Right
		return p.y, p.z
	}
}

func inLayer(turn Side, p vec3, d int) bool {
	switch turn {
	case Front:
		return p.z == d
	case Back:
		return p.z == 0
	case Left:
		return p.x == 0
	case Right:
		return p.x == d
	case Top:
		return p.y == d
	default: // Bottom
		return p.y == 0
	}
}

// quarter applies one clockwise quarter turn of side turn to a sticker.
func quarter(turn Side, normal Side, p vec3, d int) (Side, vec3) {
	var cycle [4]Side
	switch turn {
	case Front:
		p = vec3{p.y, d - p.x, p.z}
		cycle = [4]Side{Top, Right, Bottom, Left}
	case Back:
		p = vec3{d - p.y, p.x, p.z}
		cycle = [4]Side{Top, Left, Bottom, Right}
	case Left:
		p = vec3{p.x, d - p.z, p.y}
		cycle = [4]Side{Top, Front, Bottom, Back}
	case Right:
		p = vec3{p.x, p.z, d - p.y}
		cycle = [4]Side{Top, Back, Bottom, Front}
	case Top:
		p = vec3{d - p.z, p.y, p.x}
		cycle = [4]Side{Front, Left, Back, Right}
	case Bottom:
		p = vec3{p.z, p.y, d - p.x}
		cycle = [4]Side{Front, Right, Back, Left}
	}
	for i, s := range cycle {
		if s == normal {
			return cycle[(i+1)%4], p
		}
	}
	return normal, p
}

// oracleTurn returns a new cube with m applied to c.
func oracleTurn(c *Cube, m Move) *Cube {
	quarters := map[Direction]int{Regular: 1, Double: 2, Prime: 3}[m.Direction]
	d := c.dim - 1
	out := c.Clone()

	for _, s := range Sides {
		for r := 0; r < c.dim; r++ {
			for col := 0; col < c.dim; col++ {
				p := stickerPos(s, r, col, d)
				if !inLayer(m.Side, p, d) {
					continue
				}
				normal := s
				for q := 0; q < quarters; q++ {
					normal, p = quarter(m.Side, normal, p, d)
				}
				nr, nc := stickerIndex(normal, p)
				out.faces[normal][nr][nc] = c.faces[s][r][col]
			}
		}
	}
	return out
}
