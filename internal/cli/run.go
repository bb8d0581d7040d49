package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesim"
)

var (
	runRecord    bool
	runNotes     string
	runTrace     bool
	runMaxFrames int
)

var runCmd = &cobra.Command{
	Use:   "run [moves]",
	Short: "Animate a move sequence headlessly",
	Long: `Animate a move sequence at the configured frame rate without a display,
printing each committed move and the final cube.

Frames are stepped as fast as possible using the fixed frame interval, so a
sequence that would take ten seconds on screen finishes immediately.

Examples:
  cubesim run                      # The built-in demo sequence
  cubesim run "R U R' U'" --dim 4
  cubesim run "F2 B2" --trace      # Print every frame
  cubesim run --record             # Journal the committed turns`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runRecord, "record", false, "Record committed turns in the journal")
	runCmd.Flags().StringVar(&runNotes, "notes", "", "Notes for the recorded session")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "Print every frame")
	runCmd.Flags().IntVar(&runMaxFrames, "max-frames", 1_000_000, "Stop after this many frames")
}

func runRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	notation := cubesim.DemoSequence
	if len(args) > 0 {
		notation = strings.Join(args, " ")
	}

	anim, err := newAnimator(false)
	if err != nil {
		return err
	}

	moves, dropped := cubesim.ParseMovesReport(notation)
	for _, tok := range dropped {
		fmt.Fprintf(out, "skipping unknown move %q\n", tok)
	}
	anim.Push(moves...)

	if runRecord {
		j, err := startJournal(anim, runNotes)
		if err != nil {
			return err
		}
		defer func() {
			if err := j.Close(); err != nil {
				logger.Error("failed to close journal", zap.Error(err))
			}
		}()
		fmt.Fprintf(out, "Recording session %s to %s\n", j.session.SessionID(), j.db.Path())
	}

	frames := 0
	anim.OnCommit(func(m cubesim.Move) {
		fmt.Fprintf(out, "%4d  %-3s (frame %d)\n", anim.Committed(), m.Notation(), frames)
	})

	dt := cfg.FrameInterval()
	for anim.State() == cubesim.Animating || anim.Pending() > 0 {
		if frames >= runMaxFrames {
			return fmt.Errorf("stopped after %d frames with %d moves pending", frames, anim.Pending())
		}
		frames++
		frame, ok := anim.Tick(dt)
		if ok && runTrace {
			fmt.Fprintf(out, "      frame %d %s %+.4f rad (%.0f%%)\n",
				frames, frame.Move.Notation(), frame.Delta,
				100*frame.Move.Progress/frame.Move.Target())
		}
	}

	fmt.Fprintf(out, "\n%d moves, %d frames at %d fps (%.2fs)\n\n",
		anim.Committed(), frames, cfg.FPS, float64(frames)/float64(cfg.FPS))
	fmt.Fprint(out, anim.Cube().String())
	if anim.Cube().IsSolved() {
		fmt.Fprintln(out, "\nsolved")
	}
	return nil
}
