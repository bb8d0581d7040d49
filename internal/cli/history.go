package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Browse recorded sessions",
	Long: `List recorded sessions, or show the turns of one session.
"last" selects the most recent session.

Examples:
  cubesim history
  cubesim history last
  cubesim history <session-id> --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of sessions to list")
	historyCmd.Flags().StringVar(&historyFormat, "format", "txt", "Output format (txt, json)")
}

// sessionExport is the JSON shape of one session.
type sessionExport struct {
	SessionID string     `json:"session_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Dim       int        `json:"dim"`
	Notes     string     `json:"notes,omitempty"`
	TurnCount int        `json:"turn_count"`
	Moves     string     `json:"moves,omitempty"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if len(args) == 0 {
		return listSessions(cmd, db)
	}

	session, err := resolveSession(db, args[0])
	if err != nil {
		return err
	}
	return showSession(cmd, db, session)
}

// resolveSession looks up a session by ID, or the latest for "last".
func resolveSession(db *storage.DB, id string) (*storage.Session, error) {
	sessions := storage.NewSessionRepository(db)

	var s *storage.Session
	var err error
	if id == "last" {
		s, err = sessions.GetLast()
	} else {
		s, err = sessions.Get(id)
	}
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return s, nil
}

func listSessions(cmd *cobra.Command, db *storage.DB) error {
	out := cmd.OutOrStdout()
	turns := storage.NewTurnRepository(db)

	sessions, err := storage.NewSessionRepository(db).List(historyLimit)
	if err != nil {
		return err
	}

	exports := make([]sessionExport, 0, len(sessions))
	for i := range sessions {
		count, err := turns.Count(sessions[i].SessionID)
		if err != nil {
			return err
		}
		exports = append(exports, toExport(&sessions[i], count, ""))
	}

	if historyFormat == "json" {
		return writeJSON(out, exports)
	}

	if len(exports) == 0 {
		fmt.Fprintln(out, "No sessions recorded. Record one with: cubesim run --record")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-20s  %4s  %6s  %s\n", "SESSION", "STARTED", "DIM", "TURNS", "NOTES")
	for _, e := range exports {
		fmt.Fprintf(out, "%-36s  %-20s  %4d  %6d  %s\n",
			e.SessionID, e.StartedAt.Local().Format("2006-01-02 15:04:05"), e.Dim, e.TurnCount, e.Notes)
	}
	return nil
}

func showSession(cmd *cobra.Command, db *storage.DB, s *storage.Session) error {
	out := cmd.OutOrStdout()

	records, err := storage.NewTurnRepository(db).ListBySession(s.SessionID)
	if err != nil {
		return err
	}
	moves, err := storage.ToMoves(records)
	if err != nil {
		return err
	}

	e := toExport(s, len(records), formatTurns(records))
	if historyFormat == "json" {
		return writeJSON(out, e)
	}

	fmt.Fprintf(out, "Session:  %s\n", e.SessionID)
	fmt.Fprintf(out, "Started:  %s\n", e.StartedAt.Local().Format(time.RFC3339))
	if s.EndedAt != nil {
		fmt.Fprintf(out, "Duration: %s\n", s.Duration().Round(time.Millisecond))
	}
	fmt.Fprintf(out, "Cube:     %dx%dx%d\n", e.Dim, e.Dim, e.Dim)
	if e.Notes != "" {
		fmt.Fprintf(out, "Notes:    %s\n", e.Notes)
	}
	fmt.Fprintf(out, "Turns:    %d\n\n", len(moves))
	for _, r := range records {
		fmt.Fprintf(out, "  %4d  %8.3fs  %s\n", r.TurnIndex+1, float64(r.TsMs)/1000, r.Notation)
	}
	return nil
}

func toExport(s *storage.Session, count int, moves string) sessionExport {
	e := sessionExport{
		SessionID: s.SessionID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		Dim:       s.Dim,
		TurnCount: count,
		Moves:     moves,
	}
	if s.Notes != nil {
		e.Notes = *s.Notes
	}
	return e
}

func formatTurns(records []storage.TurnRecord) string {
	var b []byte
	for i, r := range records {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, r.Notation...)
	}
	return string(b)
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
