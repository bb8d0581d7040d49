package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// resetFlags restores every flag to its default so tests do not leak
// state through the package-level command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "cubesim-cli")
	if err != nil {
		panic(err)
	}
	os.Setenv("HOME", home)
	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

// execute runs the CLI and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := execute(t, "parse", "R U2 x F'")
	require.NoError(t, err)
	assert.Contains(t, out, "Moves (3): R U2 F'")
	assert.Contains(t, out, "right regular")
	assert.Contains(t, out, "front prime")
	assert.Contains(t, out, "Skipped (1): x")
}

func TestParseRequiresArgs(t *testing.T) {
	_, err := execute(t, "parse")
	assert.Error(t, err)
}

func TestStateText(t *testing.T) {
	out, err := execute(t, "state", "--dim", "2")
	require.NoError(t, err)

	solved, err := cubesim.New(2)
	require.NoError(t, err)
	assert.Equal(t, solved.String(), out)
}

func TestStateJSON(t *testing.T) {
	out, err := execute(t, "state", "R U R' U'", "--format", "json")
	require.NoError(t, err)

	var snap cubesim.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 3, snap.Dim)
	assert.False(t, snap.Solved)
	assert.Len(t, snap.Faces, 6)
}

func TestStateYAML(t *testing.T) {
	out, err := execute(t, "state", "--format", "yaml", "F2", "F2")
	require.NoError(t, err)
	assert.Contains(t, out, "dim: 3")
	assert.Contains(t, out, "solved: true")
}

func TestStateUnknownFormat(t *testing.T) {
	_, err := execute(t, "state", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestStateDimFromEnvironment(t *testing.T) {
	t.Setenv("CUBESIM_DIM", "5")
	out, err := execute(t, "state", "--format", "json")
	require.NoError(t, err)

	var snap cubesim.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 5, snap.Dim)
}

func TestInvalidDimension(t *testing.T) {
	_, err := execute(t, "state", "--dim", "0")
	assert.Error(t, err)
}

func TestRunCommandCommitsEveryMove(t *testing.T) {
	out, err := execute(t, "run", "R U R' U' bogus", "--fps", "30")
	require.NoError(t, err)
	assert.Contains(t, out, `skipping unknown move "bogus"`)
	assert.Contains(t, out, "   1  R ")
	assert.Contains(t, out, "   4  U'")
	assert.Contains(t, out, "4 moves")
	assert.NotContains(t, out, "solved")
}

func TestRunDemoSequenceWithTrace(t *testing.T) {
	out, err := execute(t, "run", "--trace", "--speed", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "18 moves")
	assert.Contains(t, out, "frame 1 F ")
}

func TestRunMaxFrames(t *testing.T) {
	_, err := execute(t, "run", "F B", "--max-frames", "3")
	assert.ErrorContains(t, err, "stopped after 3 frames")
}

func TestRecordHistoryReplay(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := execute(t, "run", "--record", "--notes", "warmup", "F U2 L'", "--speed", "50")
	require.NoError(t, err)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "warmup")

	out, err = execute(t, "history", "last")
	require.NoError(t, err)
	assert.Contains(t, out, "Turns:    3")
	assert.Contains(t, out, "U2")

	out, err = execute(t, "history", "last", "--format", "json")
	require.NoError(t, err)
	var e sessionExport
	require.NoError(t, json.Unmarshal([]byte(out), &e))
	assert.Equal(t, "F U2 L'", e.Moves)
	assert.Equal(t, 3, e.TurnCount)
	assert.NotNil(t, e.EndedAt)

	out, err = execute(t, "replay", "last", "--instant")
	require.NoError(t, err)
	expected, err := cubesim.New(3)
	require.NoError(t, err)
	expected.ApplyNotation("F U2 L'")
	assert.Contains(t, out, expected.String())

	_, err = execute(t, "history", "no-such-session")
	assert.ErrorContains(t, err, "session not found")
}

func TestConfigShowAndInit(t *testing.T) {
	out, err := execute(t, "config", "--dim", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "dim: 4")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	_, err = execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fps: 60")

	_, err = execute(t, "config", "init", "-o", path)
	assert.ErrorContains(t, err, "exists")

	out, err = execute(t, "state", "--config", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"dim": 3`)
}

func TestNewLogger(t *testing.T) {
	for _, v := range []bool{false, true} {
		l, err := newLogger(v)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlayModelQueuesTypedMoves(t *testing.T) {
	cube, err := cubesim.New(3)
	require.NoError(t, err)
	anim := cubesim.NewAnimator(cube)
	m := newPlayModel(anim, time.Second/60, nil)
	m.Init()

	for _, k := range []tea.KeyMsg{keys("r"), {Type: tea.KeySpace}, keys("u"), keys("'"), keys("x")} {
		m.Update(k)
	}
	assert.Equal(t, "r u'", m.input)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.input)
	assert.Equal(t, 2, anim.Pending())

	// At pi rad/s a quarter turn takes half a second.
	m.Update(frameMsg(m.last.Add(400 * time.Millisecond)))
	assert.Equal(t, cubesim.Animating, anim.State())
	m.Update(frameMsg(m.last.Add(200 * time.Millisecond)))
	m.Update(frameMsg(m.last.Add(600 * time.Millisecond)))
	assert.Equal(t, 2, anim.Committed())
	assert.Equal(t, "R U'", cubesim.FormatMoves(m.history))
	assert.Contains(t, m.View(), "committed 2")
}

func TestPlayModelControls(t *testing.T) {
	cube, err := cubesim.New(2)
	require.NoError(t, err)
	anim := cubesim.NewAnimator(cube)
	m := newPlayModel(anim, time.Second/60, nil)
	m.Init()

	m.Update(keys("p"))
	assert.True(t, anim.Paused())
	assert.Contains(t, m.View(), "[PAUSED]")

	m.Update(keys("s"))
	assert.Equal(t, playScramble, anim.Pending())
	m.Update(keys("c"))
	assert.Zero(t, anim.Pending())

	speed := anim.Speed()
	m.Update(keys("+"))
	assert.Equal(t, 2*speed, anim.Speed())

	_, cmd := m.Update(keys("q"))
	assert.NotNil(t, cmd)
	assert.True(t, m.quitting)
}

func TestPlayScrambleAvoidsRepeats(t *testing.T) {
	cube, err := cubesim.New(3)
	require.NoError(t, err)
	anim := cubesim.NewAnimator(cube)
	m := newPlayModel(anim, time.Second/60, nil)

	m.scramble()
	moves := anim.Queue().Moves()
	require.Len(t, moves, playScramble)
	for i := 1; i < len(moves); i++ {
		assert.NotEqual(t, moves[i-1].Side, moves[i].Side)
	}
}

func TestReplayRateLeavesTurnSpeedAlone(t *testing.T) {
	_, err := execute(t, "replay", "nosuch", "--rate", "2")
	require.ErrorContains(t, err, "session not found")
	assert.Equal(t, math.Pi, cfg.Speed)

	_, err = execute(t, "replay", "nosuch", "--rate", "2", "--speed", "1.5")
	require.ErrorContains(t, err, "session not found")
	assert.Equal(t, 1.5, cfg.Speed)

	session := &storage.Session{SessionID: "s", Dim: 3}
	m, err := newReplayModel(session, []cubesim.Move{cubesim.R}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m.anim.Speed())
}
