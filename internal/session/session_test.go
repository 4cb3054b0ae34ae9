package session

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brooksandrew/catan-spectator/internal/board"
	"github.com/brooksandrew/catan-spectator/internal/game"
)

func newTestSession(t *testing.T, skipPregame bool) *Session {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSession(Config{
		Board:       board.DefaultConfig(),
		RecordPath:  filepath.Join(dir, "record.jsonl"),
		JournalPath: filepath.Join(dir, "journal.txt"),
		SkipPregame: skipPregame,
		Seed:        7,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// legalNode scans for a node the validator accepts for the seat's
// settlement.
func legalNode(t *testing.T, s *Session, seat board.Seat) board.Node {
	t.Helper()
	g := s.Game()
	for n := board.Node(0); int(n) < g.Board().Grid().NumNodes(); n++ {
		if g.Validate(game.PlaceSettlement{Seat: seat, Node: n}) == nil {
			return n
		}
	}
	t.Fatal("no legal settlement node left")
	return 0
}

func TestParseRoster(t *testing.T) {
	players, err := ParseRoster([]string{"Green:Amy", "blue:bob"})
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, board.Seat(1), players[0].Seat)
	assert.Equal(t, "green", players[0].Color)
	assert.Equal(t, "amy", players[0].Name)
	assert.Equal(t, board.Seat(2), players[1].Seat)

	_, err = ParseRoster([]string{"green"})
	assert.Error(t, err)
	_, err = ParseRoster([]string{"green:"})
	assert.Error(t, err)
	_, err = ParseRoster([]string{"a:1", "b:2", "c:3", "d:4", "e:5"})
	assert.Error(t, err, "only four seats exist")

	empty, err := ParseRoster(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSessionUsesConfiguredRoster(t *testing.T) {
	players, err := ParseRoster([]string{"teal:ada", "white:grace"})
	require.NoError(t, err)

	dir := t.TempDir()
	s, err := NewSession(Config{
		Board:       board.DefaultConfig(),
		Players:     players,
		RecordPath:  filepath.Join(dir, "record.jsonl"),
		SkipPregame: true,
		Seed:        7,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.Execute("start")
	require.NoError(t, err)

	out, err := s.Execute("teal roll 3 3")
	require.NoError(t, err)
	assert.Equal(t, "teal rolls 6", out)

	_, err = s.Execute("green roll")
	require.Error(t, err, "the debug roster is not seated")
}

func TestExecuteStart(t *testing.T) {
	s := newTestSession(t, false)

	out, err := s.Execute("start")
	require.NoError(t, err)
	assert.Contains(t, out, "game started")
	assert.Contains(t, out, "green places a settlement")

	// Starting twice is an error.
	_, err = s.Execute("start")
	assert.Error(t, err)
}

func TestExecutePregamePlacement(t *testing.T) {
	s := newTestSession(t, false)
	_, err := s.Execute("start")
	require.NoError(t, err)

	n := legalNode(t, s, 1)
	out, err := s.Execute(fmt.Sprintf("build settlement %d", n))
	require.NoError(t, err)
	assert.Contains(t, out, "green builds settlement")

	e := s.Game().Board().Grid().EdgesAt(n)[0]
	out, err = s.Execute(fmt.Sprintf("green build road %d", e))
	require.NoError(t, err)
	assert.Contains(t, out, "green builds road")

	// Seat 2 is up next; seat 3 placing is rejected.
	m := legalNode(t, s, 2)
	_, err = s.Execute(fmt.Sprintf("orange build settlement %d", m))
	assert.ErrorIs(t, err, game.ErrWrongPlayer)
}

func TestExecuteRollAndEndTurn(t *testing.T) {
	s := newTestSession(t, true)
	_, err := s.Execute("start")
	require.NoError(t, err)

	out, err := s.Execute("roll 3 3")
	require.NoError(t, err)
	assert.Equal(t, "green rolls 6", out)

	out, err = s.Execute("end turn")
	require.NoError(t, err)
	assert.Equal(t, "green ends turn", out)
	assert.Equal(t, "blue", s.Game().CurrentPlayer().Color)
}

func TestExecuteUndoRedo(t *testing.T) {
	s := newTestSession(t, true)
	_, err := s.Execute("start")
	require.NoError(t, err)
	_, err = s.Execute("roll 3 3")
	require.NoError(t, err)

	out, err := s.Execute("undo")
	require.NoError(t, err)
	assert.Equal(t, "undid roll_dice", out)
	assert.Equal(t, game.PhaseTurnStart, s.Game().Phase())

	out, err = s.Execute("redo")
	require.NoError(t, err)
	assert.Equal(t, "green rolls 6", out)

	_, err = s.Execute("undo")
	require.NoError(t, err)
	_, err = s.Execute("undo")
	assert.ErrorIs(t, err, game.ErrNothingToUndo)
}

func TestExecuteUnknownColor(t *testing.T) {
	s := newTestSession(t, true)
	_, err := s.Execute("start")
	require.NoError(t, err)

	_, err = s.Execute("purple roll")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purple")
}

func TestExecuteGarbage(t *testing.T) {
	s := newTestSession(t, true)
	_, err := s.Execute("start")
	require.NoError(t, err)

	_, err = s.Execute("frobnicate the board")
	assert.Error(t, err)

	// Blank input is a no-op, not an error.
	out, err := s.Execute("   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExecuteRobberPrompts(t *testing.T) {
	s := newTestSession(t, true)
	_, err := s.Execute("start")
	require.NoError(t, err)

	out, err := s.Execute("roll 3 4")
	require.NoError(t, err)
	assert.Equal(t, "green rolls 7", out)
	require.Equal(t, game.PhaseMoveRobber, s.Game().Phase())

	out, err = s.Execute("robber 5")
	require.NoError(t, err)
	assert.Equal(t, "green picks a victim", out)

	out, err = s.Execute("steal none")
	require.NoError(t, err)
	assert.Equal(t, "green moves robber to 5, steals from no one", out)
}
