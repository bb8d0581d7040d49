package cli

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesim"
)

var (
	playRecord   bool
	playNotes    string
	playScramble int
)

var playCmd = &cobra.Command{
	Use:   "play [moves]",
	Short: "Interactive terminal cube",
	Long: `Open an interactive cube in the terminal. Type moves (U D L R F B with
' or 2) and press Enter to queue them; the cube animates them one at a time.

Keys:
  Enter      queue the typed moves
  p          pause / resume
  s          queue a random scramble
  c          clear the pending queue
  + / -      faster / slower
  q, Esc     quit`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playRecord, "record", false, "Record committed turns in the journal")
	playCmd.Flags().StringVar(&playNotes, "notes", "", "Notes for the recorded session")
	playCmd.Flags().Bool("loop", false, "Re-queue every committed move")
	playCmd.Flags().IntVar(&playScramble, "scramble-length", 25, "Moves in a random scramble")
}

func runPlay(cmd *cobra.Command, args []string) error {
	anim, err := newAnimator(cfg.Loop)
	if err != nil {
		return err
	}
	anim.Enqueue(strings.Join(args, " "))

	var j *journal
	if playRecord {
		if j, err = startJournal(anim, playNotes); err != nil {
			return err
		}
		defer func() {
			if err := j.Close(); err != nil {
				logger.Error("failed to close journal", zap.Error(err))
			}
		}()
	}

	model := newPlayModel(anim, cfg.FrameInterval(), j)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("play error: %w", err)
	}
	return nil
}

// Messages
type frameMsg time.Time

// playModel drives an animator from bubbletea's tick, one frame per tick.
type playModel struct {
	anim     *cubesim.Animator
	interval time.Duration
	journal  *journal
	rng      *rand.Rand

	last    time.Time
	input   string
	history []cubesim.Move
	notice  string
	err     error

	quitting bool
}

func newPlayModel(anim *cubesim.Animator, interval time.Duration, j *journal) *playModel {
	m := &playModel{
		anim:     anim,
		interval: interval,
		journal:  j,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	anim.OnCommit(func(mv cubesim.Move) {
		m.history = append(m.history, mv)
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	m.last = time.Now()
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		now := time.Time(msg)
		elapsed := now.Sub(m.last)
		m.last = now
		m.anim.Tick(elapsed)
		if m.journal != nil {
			if err := m.journal.session.Err(); err != nil {
				m.err = err
			}
		}
		return m, m.frameCmd()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.submit()
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	}

	key := msg.String()
	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "p":
		if m.anim.Paused() {
			m.anim.Resume()
		} else {
			m.anim.Pause()
		}
	case "s":
		m.scramble()
	case "c":
		n := m.anim.Pending()
		m.anim.Queue().Clear()
		m.notice = fmt.Sprintf("cleared %d pending", n)
	case "+", "=":
		m.anim.SetSpeed(m.anim.Speed() * 2)
	case "-":
		m.anim.SetSpeed(m.anim.Speed() / 2)
	default:
		if len(key) == 1 && isNotationKey(key[0]) {
			m.input += key
		}
	}
	return m, nil
}

func isNotationKey(b byte) bool {
	if _, ok := cubesim.SideFromLetter(b); ok {
		return true
	}
	return b == '\'' || b == '2'
}

func (m *playModel) submit() {
	moves, dropped := cubesim.ParseMovesReport(m.input)
	m.anim.Push(moves...)
	switch {
	case len(dropped) > 0:
		m.notice = "skipped " + strings.Join(dropped, " ")
	case len(moves) > 0:
		m.notice = fmt.Sprintf("queued %d", len(moves))
	default:
		m.notice = ""
	}
	m.input = ""
}

// scramble queues random moves, never turning the same side twice in a row.
func (m *playModel) scramble() {
	directions := []cubesim.Direction{cubesim.Regular, cubesim.Prime, cubesim.Double}
	moves := make([]cubesim.Move, 0, playScramble)
	prev := cubesim.Side(-1)
	for len(moves) < playScramble {
		side := cubesim.Sides[m.rng.Intn(len(cubesim.Sides))]
		if side == prev {
			continue
		}
		prev = side
		moves = append(moves, cubesim.Move{Side: side, Direction: directions[m.rng.Intn(len(directions))]})
	}
	m.anim.Push(moves...)
	m.notice = "scramble: " + cubesim.FormatMoves(moves)
}

func (m *playModel) View() string {
	if m.quitting {
		return fmt.Sprintf("%d moves committed.\n", m.anim.Committed())
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("cubesim %dx%dx%d", m.anim.Dim(), m.anim.Dim(), m.anim.Dim())))
	b.WriteString("\n\n")

	status := m.anim.State().String()
	if m.anim.Paused() {
		status += " [PAUSED]"
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString(fmt.Sprintf("  pending %d  committed %d  speed %.2f rad/s\n",
		m.anim.Pending(), m.anim.Committed(), m.anim.Speed()))

	var highlight []cubesim.Side
	if cur, ok := m.anim.Current(); ok {
		highlight = append(highlight, cur.Side)
		b.WriteString(fmt.Sprintf("Turning: %s %3.0f%%\n",
			activeStyle.Render(cur.Notation()), 100*cur.Progress/cur.Target()))
	} else {
		b.WriteString("\n")
	}
	if m.journal != nil {
		b.WriteString(statusStyle.Render("Recording " + m.journal.session.SessionID()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderNet(m.anim.Cube(), highlight...))
	if m.anim.Cube().IsSolved() {
		b.WriteString(activeStyle.Render("SOLVED"))
	}
	b.WriteString("\n")

	if len(m.history) > 0 {
		start := 0
		b.WriteString("Moves: ")
		if len(m.history) > 20 {
			start = len(m.history) - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(cubesim.FormatMoves(m.history[start:])))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("> %s_\n", m.input))
	if m.notice != "" {
		b.WriteString(statusStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ENTER=queue  p=pause  s=scramble  c=clear  +/-=speed  q=quit"))
	b.WriteString("\n")

	return b.String()
}
