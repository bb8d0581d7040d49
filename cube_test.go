package cubesim

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allDirections = []Direction{Regular, Prime, Double}

func newCube(t *testing.T, dim int) *Cube {
	t.Helper()
	c, err := New(dim)
	require.NoError(t, err)
	return c
}

// scrambled returns a cube in a reachable but irregular state.
func scrambled(t *testing.T, dim int, seed int64) *Cube {
	t.Helper()
	c := newCube(t, dim)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < 40; i++ {
		c.Turn(Move{Side: Sides[rng.Intn(6)], Direction: allDirections[rng.Intn(3)]})
	}
	return c
}

func TestNewCubeIsSolved(t *testing.T) {
	for dim := 1; dim <= 5; dim++ {
		c := newCube(t, dim)
		assert.True(t, c.IsSolved(), "dim %d", dim)
		assert.Equal(t, dim, c.Dim())

		for _, side := range Sides {
			face := c.Face(side)
			require.Len(t, face, dim)
			for r := range face {
				require.Len(t, face[r], dim)
				for col := range face[r] {
					assert.Equal(t, SolvedColor(side), face[r][col].Color)
					assert.Equal(t, int(side)*dim*dim+r*dim+col, face[r][col].ID)
				}
			}
		}
	}
}

func TestNewRejectsBadDimension(t *testing.T) {
	for _, dim := range []int{0, -1, -7} {
		c, err := New(dim)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	for _, side := range Sides {
		c := newCube(t, 3)
		c.Turn(Move{Side: side, Direction: Regular})
		assert.False(t, c.IsSolved(), "%v should unsolve the cube", side)
	}
}

func TestFourRegularTurnsAreIdentity(t *testing.T) {
	for dim := 1; dim <= 6; dim++ {
		for _, side := range Sides {
			for _, dir := range []Direction{Regular, Prime} {
				c := scrambled(t, dim, int64(dim))
				before := c.Clone()
				for i := 0; i < 4; i++ {
					c.Turn(Move{Side: side, Direction: dir})
				}
				if !assert.True(t, c.Equal(before), "dim %d: %v %v x4", dim, side, dir) {
					t.Log(c.String())
				}
			}
		}
	}
}

func TestPrimeUndoesRegular(t *testing.T) {
	for dim := 1; dim <= 6; dim++ {
		for _, side := range Sides {
			c := scrambled(t, dim, 7)
			before := c.Clone()

			c.Turn(Move{Side: side, Direction: Regular})
			c.Turn(Move{Side: side, Direction: Prime})
			assert.True(t, c.Equal(before), "dim %d: %v then %v'", dim, side, side)

			c.Turn(Move{Side: side, Direction: Prime})
			c.Turn(Move{Side: side, Direction: Regular})
			assert.True(t, c.Equal(before), "dim %d: %v' then %v", dim, side, side)
		}
	}
}

func TestDoubleTwiceIsIdentity(t *testing.T) {
	for dim := 1; dim <= 6; dim++ {
		for _, side := range Sides {
			c := scrambled(t, dim, 11)
			before := c.Clone()
			c.Turn(Move{Side: side, Direction: Double})
			c.Turn(Move{Side: side, Direction: Double})
			assert.True(t, c.Equal(before), "dim %d: %v2 x2", dim, side)
		}
	}
}

// The double turn swaps opposite bands directly instead of running the
// 4-cycle twice. Both paths must stay equivalent.
func TestDoubleEqualsTwoRegular(t *testing.T) {
	for dim := 1; dim <= 6; dim++ {
		for _, side := range Sides {
			a := scrambled(t, dim, 13)
			b := a.Clone()

			a.Turn(Move{Side: side, Direction: Double})
			b.Turn(Move{Side: side, Direction: Regular})
			b.Turn(Move{Side: side, Direction: Regular})
			assert.True(t, a.Equal(b), "dim %d: %v2 vs %v %v", dim, side, side, side)

			c := b.Clone()
			b.Turn(Move{Side: side, Direction: Prime})
			b.Turn(Move{Side: side, Direction: Prime})
			c.Turn(Move{Side: side, Direction: Double})
			assert.True(t, b.Equal(c), "dim %d: %v2 vs %v' %v'", dim, side, side, side)
		}
	}
}

func TestColorConservation(t *testing.T) {
	for dim := 1; dim <= 5; dim++ {
		c := newCube(t, dim)
		want := c.ColorCounts()
		require.Len(t, want, 6)

		rng := rand.New(rand.NewSource(int64(dim) * 31))
		for i := 0; i < 200; i++ {
			c.Turn(Move{Side: Sides[rng.Intn(6)], Direction: allDirections[rng.Intn(3)]})
			require.Equal(t, want, c.ColorCounts(), "after %d turns on dim %d", i+1, dim)
		}

		// Every original cell is still present exactly once.
		seen := make(map[int]bool, 6*dim*dim)
		for _, side := range Sides {
			for _, row := range c.faces[side] {
				for _, cell := range row {
					assert.False(t, seen[cell.ID], "cell %d duplicated", cell.ID)
					seen[cell.ID] = true
				}
			}
		}
		assert.Len(t, seen, 6*dim*dim)
	}
}

func TestFrontTurnOnSolved3x3(t *testing.T) {
	c := newCube(t, 3)
	orig := c.Clone()
	const d = 2

	c.Turn(F)

	// Front grid rotates counter-clockwise in index space.
	front := c.Face(Front)
	assert.Equal(t, orig.At(Front, 0, 2).ID, front[0][0].ID)
	assert.Equal(t, orig.At(Front, 2, 2).ID, front[0][2].ID)
	assert.Equal(t, orig.At(Front, 2, 0).ID, front[2][2].ID)
	assert.Equal(t, orig.At(Front, 0, 0).ID, front[2][0].ID)
	assert.Equal(t, orig.At(Front, 1, 1).ID, front[1][1].ID)

	// Bands cycle top -> right -> bottom -> left -> top.
	for i := 0; i <= d; i++ {
		assert.Equal(t, orig.At(Top, d, i), c.At(Right, d-i, d), "top->right %d", i)
		assert.Equal(t, orig.At(Right, d-i, d), c.At(Bottom, d, d-i), "right->bottom %d", i)
		assert.Equal(t, orig.At(Bottom, d, d-i), c.At(Left, i, d), "bottom->left %d", i)
		assert.Equal(t, orig.At(Left, i, d), c.At(Top, d, i), "left->top %d", i)

		assert.Equal(t, Yellow, c.At(Right, d-i, d).Color)
		assert.Equal(t, Red, c.At(Bottom, d, d-i).Color)
		assert.Equal(t, White, c.At(Left, i, d).Color)
		assert.Equal(t, Orange, c.At(Top, d, i).Color)
	}

	// The back face and the far bands are untouched.
	assert.Equal(t, orig.Face(Back), c.Face(Back))
	for i := 0; i <= d; i++ {
		assert.Equal(t, orig.At(Top, 0, i), c.At(Top, 0, i))
		assert.Equal(t, orig.At(Left, i, 0), c.At(Left, i, 0))
	}
}

func TestTurnsMatchOracle(t *testing.T) {
	for dim := 2; dim <= 6; dim++ {
		for _, side := range Sides {
			for _, dir := range allDirections {
				c := scrambled(t, dim, 97)
				m := Move{Side: side, Direction: dir}

				want := oracleTurn(c, m)
				c.Turn(m)
				if !assert.True(t, c.Equal(want), "dim %d: %v", dim, m) {
					t.Logf("got:\n%s\nwant:\n%s", c, want)
				}
			}
		}
	}
}

func TestDemoSequenceMatchesOracleStepByStep(t *testing.T) {
	moves := ParseMoves(DemoSequence)
	require.Len(t, moves, 18)

	for dim := 2; dim <= 5; dim++ {
		c := newCube(t, dim)
		ref := newCube(t, dim)
		for i, m := range moves {
			c.Turn(m)
			ref = oracleTurn(ref, m)
			require.True(t, c.Equal(ref), "dim %d: diverged at move %d (%v)", dim, i, m)
		}
	}
}

func TestSexyMove6Times(t *testing.T) {
	for dim := 2; dim <= 4; dim++ {
		c := newCube(t, dim)
		for i := 0; i < 6; i++ {
			c.Apply(SexyMove...)
		}
		assert.True(t, c.IsSolved(), "(R U R' U') x6 on dim %d", dim)
	}
}

func TestTurnIgnoresInvalidMoves(t *testing.T) {
	c := scrambled(t, 3, 5)
	before := c.Clone()

	c.Turn(Move{Side: Side(9), Direction: Regular})
	c.Turn(Move{Side: Front, Direction: Direction(0)})
	c.Turn(Move{Side: Front, Direction: Direction(5)})
	assert.True(t, c.Equal(before))
}

func TestTurnSideGuard(t *testing.T) {
	c := scrambled(t, 4, 3)
	before := c.Clone()

	// Dispatching a front turn to the top handler does nothing.
	c.turnSide(Top, F)
	assert.True(t, c.Equal(before))

	c.turnSide(Front, F)
	assert.False(t, c.Equal(before))
}

func TestOneByOneTurnsAreNoops(t *testing.T) {
	c := newCube(t, 1)
	before := c.Clone()
	c.ApplyNotation(DemoSequence)
	assert.True(t, c.Equal(before))
	assert.Len(t, c.TurningCells(Front), 1)
}

func TestFaceReturnsCopy(t *testing.T) {
	c := newCube(t, 3)
	face := c.Face(Front)
	face[0][0].Color = Red

	assert.Equal(t, Blue, c.At(Front, 0, 0).Color)
	assert.Nil(t, c.Face(Side(-1)))
}

func TestApplyNotation(t *testing.T) {
	c := newCube(t, 3)
	n := c.ApplyNotation("R U x R' U'")
	assert.Equal(t, 4, n)

	ref := newCube(t, 3)
	ref.Apply(SexyMove...)
	assert.True(t, c.Equal(ref))
}

func TestTurningCells(t *testing.T) {
	c := newCube(t, 4)
	for _, side := range Sides {
		cells := c.TurningCells(side)
		assert.Len(t, cells, 16+16, "%v", side)

		seen := make(map[Position]bool)
		for _, p := range cells {
			assert.False(t, seen[p], "%v lists %+v twice", side, p)
			seen[p] = true
			assert.NotEqual(t, side.Opposite(), p.Side)
		}
	}
}

// Every cell outside TurningCells stays where it is.
func TestTurningCellsCoverEveryMovedCell(t *testing.T) {
	c := scrambled(t, 5, 21)
	for _, side := range Sides {
		moving := make(map[Position]bool)
		for _, p := range c.TurningCells(side) {
			moving[p] = true
		}

		after := c.Clone()
		after.Turn(Move{Side: side, Direction: Regular})
		for _, s := range Sides {
			for r := 0; r < 5; r++ {
				for col := 0; col < 5; col++ {
					if moving[Position{Side: s, Row: r, Col: col}] {
						continue
					}
					assert.Equal(t, c.At(s, r, col), after.At(s, r, col))
				}
			}
		}
	}
}

func TestViewAfterFrontTurn(t *testing.T) {
	c := newCube(t, 3)
	c.Turn(F)

	// Seen from above, the row touching the front is now orange.
	top := c.View(Top)
	assert.Equal(t, []Color{Yellow, Yellow, Yellow}, top[0])
	assert.Equal(t, []Color{Orange, Orange, Orange}, top[2])

	// Seen from the right, the column touching the front is yellow.
	right := c.View(Right)
	for r := 0; r < 3; r++ {
		assert.Equal(t, Yellow, right[r][0])
		assert.Equal(t, Red, right[r][2])
	}
}

func TestString(t *testing.T) {
	c := newCube(t, 2)
	want := "" +
		"    Y Y \n" +
		"    Y Y \n" +
		"O O B B R R G G \n" +
		"O O B B R R G G \n" +
		"    W W \n" +
		"    W W \n"
	assert.Equal(t, want, c.String())

	c.Turn(U)
	lines := strings.Split(c.String(), "\n")
	// U moves the front's top row to the left.
	assert.Equal(t, "B B R R G G O O ", lines[2])
	assert.Equal(t, "O O B B R R G G ", lines[3])
}

func TestSnapshot(t *testing.T) {
	c := newCube(t, 2)
	snap := c.Snapshot()
	assert.Equal(t, 2, snap.Dim)
	assert.True(t, snap.Solved)
	require.Len(t, snap.Faces, 6)
	assert.Equal(t, [][]string{{"B", "B"}, {"B", "B"}}, snap.Faces["front"])

	c.Turn(R)
	assert.False(t, c.Snapshot().Solved)
}

func TestFaceColorsMatchCells(t *testing.T) {
	c := newCube(t, 3)
	c.Apply(F, R)

	for _, side := range Sides {
		face := c.Face(side)
		colors := face.Colors()
		require.Len(t, colors, 3)
		for r := range colors {
			for col := range colors[r] {
				assert.Equal(t, face.At(r, col).Color, colors[r][col], "%s[%d][%d]", side, r, col)
			}
		}
	}

	snap := c.Snapshot()
	front := c.Face(Front).Colors()
	assert.Equal(t, front[2][0].String(), snap.Faces["front"][2][0])
}
