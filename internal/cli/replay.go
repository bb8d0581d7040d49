package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	replayRate    float64
	replayInstant bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <session-id|last>",
	Short: "Replay a recorded session",
	Long: `Animate the turns of a recorded session on a fresh cube of the same size.

Usage:
  cubesim replay last                 # Replay the latest session
  cubesim replay <id> --rate 2        # Replay at 2x speed
  cubesim replay <id> --instant       # Print the final cube without animating`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replayRate, "rate", "x", 1.0, "Playback rate multiplier")
	replayCmd.Flags().BoolVar(&replayInstant, "instant", false, "Apply all turns and print the result")
}

func runReplay(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	db, err := openDB()
	if err != nil {
		return err
	}
	session, err := resolveSession(db, args[0])
	if err != nil {
		db.Close()
		return err
	}
	records, err := storage.NewTurnRepository(db).ListBySession(session.SessionID)
	db.Close()
	if err != nil {
		return err
	}
	moves, err := storage.ToMoves(records)
	if err != nil {
		return err
	}

	if replayInstant {
		cube, err := cubesim.New(session.Dim)
		if err != nil {
			return err
		}
		cube.Apply(moves...)
		fmt.Fprintf(out, "Session %s: %d turns\n\n", session.SessionID, len(moves))
		fmt.Fprint(out, cube.String())
		return nil
	}

	model, err := newReplayModel(session, moves, replayRate)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

// Replay model
type replayModel struct {
	session  *storage.Session
	moves    []cubesim.Move
	speed    float64
	anim     *cubesim.Animator
	last     time.Time
	quitting bool
}

func newReplayModel(session *storage.Session, moves []cubesim.Move, speed float64) (*replayModel, error) {
	if speed <= 0 {
		speed = 1
	}
	m := &replayModel{session: session, moves: moves, speed: speed}
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *replayModel) reset() error {
	cube, err := cubesim.New(m.session.Dim)
	if err != nil {
		return err
	}
	m.anim = cubesim.NewAnimator(cube,
		cubesim.WithLogger(logger),
		cubesim.WithTurnSpeed(cfg.Speed*m.speed),
	)
	m.anim.Push(m.moves...)
	m.last = time.Now()
	return nil
}

func (m *replayModel) Init() tea.Cmd {
	m.last = time.Now()
	return m.frameCmd()
}

func (m *replayModel) frameCmd() tea.Cmd {
	return tea.Tick(cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "p":
			if m.anim.Paused() {
				m.anim.Resume()
			} else {
				m.anim.Pause()
			}

		case "n":
			// Finish the turn in flight.
			if m.anim.State() == cubesim.Animating {
				m.anim.Advance(math.Pi)
			}

		case "r":
			_ = m.reset()

		case "+", "=":
			m.setSpeed(m.speed * 2)

		case "-":
			m.setSpeed(m.speed / 2)
		}

	case frameMsg:
		now := time.Time(msg)
		m.anim.Tick(now.Sub(m.last))
		m.last = now
		return m, m.frameCmd()
	}

	return m, nil
}

func (m *replayModel) setSpeed(speed float64) {
	if speed > 16 {
		speed = 16
	}
	if speed < 0.25 {
		speed = 0.25
	}
	m.speed = speed
	m.anim.SetSpeed(cfg.Speed * speed)
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubesim replay"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Turn %d/%d", m.anim.Committed(), len(m.moves))
	if m.anim.Paused() {
		progress += " [PAUSED]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%.2gx speed)\n", m.speed))
	b.WriteString(statusStyle.Render("Session " + m.session.SessionID))
	b.WriteString("\n")

	var highlight []cubesim.Side
	if cur, ok := m.anim.Current(); ok {
		highlight = append(highlight, cur.Side)
		b.WriteString(fmt.Sprintf("Turning: %s\n", activeStyle.Render(cur.Notation())))
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderNet(m.anim.Cube(), highlight...))
	b.WriteString("\n")

	done := m.anim.Committed()
	if done > 0 {
		start := 0
		b.WriteString("Moves: ")
		if done > 20 {
			start = done - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(cubesim.FormatMoves(m.moves[start:done])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("SPACE/p=pause  n=finish turn  r=restart  +/-=speed  q=quit"))
	b.WriteString("\n")

	return b.String()
}
