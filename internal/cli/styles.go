package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubesim"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tileStyles maps each cube color to a terminal background.
var tileStyles = map[cubesim.Color]lipgloss.Style{
	cubesim.White:  tile("15"),
	cubesim.Blue:   tile("21"),
	cubesim.Orange: tile("208"),
	cubesim.Green:  tile("34"),
	cubesim.Red:    tile("196"),
	cubesim.Yellow: tile("226"),
}

func tile(bg string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(bg)).Foreground(lipgloss.Color("0"))
}

// renderNet draws the cube as a colored unfolded net. The sides in
// highlight are drawn with their color letter so the turning side stands
// out.
func renderNet(c *cubesim.Cube, highlight ...cubesim.Side) string {
	dim := c.Dim()
	lit := make(map[cubesim.Side]bool, len(highlight))
	for _, s := range highlight {
		lit[s] = true
	}

	var b strings.Builder
	pad := strings.Repeat("  ", dim)

	writeRow := func(side cubesim.Side, row []cubesim.Color) {
		for _, color := range row {
			text := "  "
			if lit[side] {
				text = color.String() + " "
			}
			b.WriteString(tileStyles[color].Render(text))
		}
	}

	top := c.View(cubesim.Top)
	for r := 0; r < dim; r++ {
		b.WriteString(pad)
		writeRow(cubesim.Top, top[r])
		b.WriteByte('\n')
	}

	middle := []cubesim.Side{cubesim.Left, cubesim.Front, cubesim.Right, cubesim.Back}
	views := make([][][]cubesim.Color, len(middle))
	for i, s := range middle {
		views[i] = c.View(s)
	}
	for r := 0; r < dim; r++ {
		for i, s := range middle {
			writeRow(s, views[i][r])
		}
		b.WriteByte('\n')
	}

	bottom := c.View(cubesim.Bottom)
	for r := 0; r < dim; r++ {
		b.WriteString(pad)
		writeRow(cubesim.Bottom, bottom[r])
		b.WriteByte('\n')
	}

	return b.String()
}
