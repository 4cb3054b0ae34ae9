package session

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brooksandrew/catan-spectator/internal/board"
	"github.com/brooksandrew/catan-spectator/internal/game"
	"github.com/brooksandrew/catan-spectator/internal/gamelog"
)

func TestWorkspacePaths(t *testing.T) {
	w := NewWorkspace(t.TempDir())

	record, err := w.Create("friday-night")
	require.NoError(t, err)
	assert.Equal(t, w.RecordPath("friday-night"), record)
	assert.DirExists(t, w.GamePath("friday-night"))
	assert.Equal(t, filepath.Join(w.GamePath("friday-night"), "journal.txt"), w.JournalPath("friday-night"))

	loaded, err := w.Load("friday-night")
	require.NoError(t, err)
	assert.Equal(t, record, loaded)

	_, err = w.Load("no-such-game")
	assert.Error(t, err)
}

func TestReplayRebuildsFinalState(t *testing.T) {
	dir := t.TempDir()
	recordPath := filepath.Join(dir, "record.jsonl")

	s, err := NewSession(Config{
		Board:       board.DefaultConfig(),
		RecordPath:  recordPath,
		SkipPregame: true,
		Seed:        7,
	})
	require.NoError(t, err)

	for _, cmd := range []string{"start", "roll 3 3", "end turn", "blue roll 2 2", "undo"} {
		_, err := s.Execute(cmd)
		require.NoError(t, err, "command %q", cmd)
	}
	require.NoError(t, s.Close())

	journal := gamelog.NewJournal()
	var calls int
	g, err := Replay(recordPath, journal, func(step, total int) {
		calls++
		assert.Equal(t, 4, total)
	})
	require.NoError(t, err)
	assert.Equal(t, 4, calls)

	// The undone roll is gone: blue is mid-turn, before rolling.
	assert.Equal(t, game.PhaseTurnStart, g.Phase())
	assert.Equal(t, "blue", g.CurrentPlayer().Color)
	assert.Equal(t, 2, g.Turn())

	lines := journal.Lines()
	assert.Contains(t, lines, "green rolls 6")
	assert.NotContains(t, lines, "blue rolls 4")
}

func TestReplayReproducesStolenCard(t *testing.T) {
	dir := t.TempDir()
	recordPath := filepath.Join(dir, "record.jsonl")

	s, err := NewSession(Config{
		Board:      board.DefaultConfig(),
		RecordPath: recordPath,
		Seed:       7,
	})
	require.NoError(t, err)
	_, err = s.Execute("start")
	require.NoError(t, err)

	// Full pregame; the second-round settlements hand out starting cards.
	g := s.Game()
	for g.Phase() == game.PhasePregameSettlement {
		n := legalNode(t, s, g.CurrentPlayer().Seat)
		_, err = s.Execute(fmt.Sprintf("build settlement %d", n))
		require.NoError(t, err)
		e := g.Board().Grid().EdgesAt(n)[0]
		_, err = s.Execute(fmt.Sprintf("build road %d", e))
		require.NoError(t, err)
	}

	_, err = s.Execute("roll 3 4")
	require.NoError(t, err)
	require.Equal(t, game.PhaseMoveRobber, g.Phase())

	// Park the robber on a tile with an opposing building whose owner
	// holds cards.
	var victim game.Player
	var tile board.Tile
	for tl := board.Tile(1); tl <= board.NumTiles && tile == 0; tl++ {
		if tl == g.Board().Robber() {
			continue
		}
		for _, p := range g.Board().PiecesOn(tl) {
			if p.Owner != 1 && g.HandOf(p.Owner).Total() > 0 {
				victim, _ = g.PlayerBySeat(p.Owner)
				tile = tl
				break
			}
		}
	}
	require.NotZero(t, tile, "no robbable tile on the board")

	game.MockDice([]int{0})
	defer game.ResetMockDice()
	_, err = s.Execute(fmt.Sprintf("robber %d", tile))
	require.NoError(t, err)
	_, err = s.Execute(fmt.Sprintf("steal %s", victim.Color))
	require.NoError(t, err)

	liveThief := g.HandOf(1)
	liveVictim := g.HandOf(victim.Seat)
	require.NoError(t, s.Close())

	// A different pick sequence must not change the replayed outcome: the
	// record names the card that moved.
	game.MockDice([]int{2})
	replayed, err := Replay(recordPath, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, liveThief, replayed.HandOf(1))
	assert.Equal(t, liveVictim, replayed.HandOf(victim.Seat))
}

func TestReplayReproducesBoard(t *testing.T) {
	dir := t.TempDir()
	recordPath := filepath.Join(dir, "record.jsonl")

	s, err := NewSession(Config{
		Board:       board.Config{Terrain: board.OptRandom, Numbers: board.OptRandom, Ports: board.OptRandom, Seed: 11},
		RecordPath:  recordPath,
		SkipPregame: true,
		Seed:        7,
	})
	require.NoError(t, err)
	_, err = s.Execute("start")
	require.NoError(t, err)

	original := s.Game().Board()
	require.NoError(t, s.Close())

	g, err := Replay(recordPath, nil, nil)
	require.NoError(t, err)

	replayed := g.Board()
	for tile := board.Tile(1); tile <= board.NumTiles; tile++ {
		assert.Equal(t, original.Terrain(tile), replayed.Terrain(tile), "tile %d terrain", tile)
		assert.Equal(t, original.Number(tile), replayed.Number(tile), "tile %d number", tile)
	}
	assert.Equal(t, original.Ports(), replayed.Ports())
	assert.Equal(t, original.Robber(), replayed.Robber())
}

func TestReplayRejectsHeaderlessRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Replay(path, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no start header")
}
