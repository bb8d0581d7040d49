package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesim/internal/server"
)

var (
	serveRecord bool
	serveNotes  string
)

var serveCmd = &cobra.Command{
	Use:   "serve [moves]",
	Short: "Stream animation frames over HTTP and websocket",
	Long: `Run the animator and expose it to an external renderer.

Endpoints:
  GET  /state    animator status and cube colors (JSON)
  POST /moves    queue moves; JSON {"moves": "R U"} or a plain-text body
  POST /pause    pause the animation
  POST /resume   resume the animation
  GET  /ws       websocket stream of frame, commit and state events;
                 accepts {"moves": "..."}, {"pause": true} and {"speed": 3.14}`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address")
	serveCmd.Flags().Bool("loop", false, "Re-queue every committed move")
	serveCmd.Flags().BoolVar(&serveRecord, "record", false, "Record committed turns in the journal")
	serveCmd.Flags().StringVar(&serveNotes, "notes", "", "Notes for the recorded session")
}

func runServe(cmd *cobra.Command, args []string) error {
	anim, err := newAnimator(cfg.Loop)
	if err != nil {
		return err
	}
	for _, a := range args {
		anim.Enqueue(a)
	}

	if serveRecord {
		j, err := startJournal(anim, serveNotes)
		if err != nil {
			return err
		}
		defer func() {
			if err := j.Close(); err != nil {
				logger.Error("failed to close journal", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := server.NewEngine(anim, cfg.FrameInterval(), logger)
	srv := server.New(cfg.Addr, engine, logger)

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %dx%dx%d cube on http://%s\n", cfg.Dim, cfg.Dim, cfg.Dim, cfg.Addr)
	if err := srv.Serve(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
