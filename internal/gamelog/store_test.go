package gamelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brooksandrew/catan-spectator/internal/board"
	"github.com/brooksandrew/catan-spectator/internal/game"
)

func TestStoreAppendLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.jsonl")
	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.AppendStart(startInfo()))
	require.NoError(t, store.AppendAction(game.PlaceSettlement{Seat: 1, Node: 23}))
	require.NoError(t, store.AppendAction(game.RollDice{Seat: 1, Die1: 3, Die2: 4}))
	require.NoError(t, store.AppendRetract())
	require.NoError(t, store.AppendAction(game.Steal{Seat: 1, Victim: 2}))

	start, steps, err := store.Load()
	require.NoError(t, err)

	require.NotNil(t, start)
	assert.Len(t, start.Players, 2)
	assert.Equal(t, board.Ore, start.Terrain[0])
	assert.True(t, start.Pregame)

	require.Len(t, steps, 4)
	assert.Equal(t, game.PlaceSettlement{Seat: 1, Node: 23}, steps[0].Action)
	assert.Equal(t, game.RollDice{Seat: 1, Die1: 3, Die2: 4}, steps[1].Action)
	assert.True(t, steps[2].Retract)
	assert.Nil(t, steps[2].Action)
	assert.Equal(t, game.Steal{Seat: 1, Victim: 2}, steps[3].Action)
}

func TestStoreRoundTripsHands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.jsonl")
	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	trade := game.TradePort{
		Seat: 1,
		Give: game.Hand{game.ResWood: 4},
		Get:  game.Hand{game.ResOre: 1},
		Port: board.PortAny4,
	}
	require.NoError(t, store.AppendAction(trade))
	discard := game.Discard{Seat: 2, Cards: game.Hand{game.ResWood: 2, game.ResBrick: 2}}
	require.NoError(t, store.AppendAction(discard))

	_, steps, err := store.Load()
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, trade, steps[0].Action)
	assert.Equal(t, discard, steps[1].Action)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.jsonl")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.AppendAction(game.EndTurn{Seat: 1}))
	require.NoError(t, store.Close())

	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.AppendAction(game.EndTurn{Seat: 2}))

	_, steps, err := store.Load()
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, game.EndTurn{Seat: 2}, steps[1].Action)
}

func TestStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"mystery"}`+"\n"), 0o644))

	store, err := NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	_, _, err = store.Load()
	assert.Error(t, err)
}

func TestRecorderWiresGame(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "record.jsonl"))
	require.NoError(t, err)
	journalPath := filepath.Join(dir, "journal.txt")
	rec := NewRecorder(store, journalPath)

	b, err := board.Build(board.DefaultConfig(), nil)
	require.NoError(t, err)
	g, err := game.NewGame(b, []game.Player{
		{Seat: 1, Name: "yurick", Color: "green"},
		{Seat: 2, Name: "josh", Color: "blue"},
	}, game.Options{SkipPregame: true, Emitter: rec})
	require.NoError(t, err)
	require.NoError(t, g.Start())

	game.MockDice([]int{3, 3})
	defer game.ResetMockDice()
	_, err = g.Apply(game.RollDice{Seat: 1})
	require.NoError(t, err)
	_, err = g.Apply(game.EndTurn{Seat: 1})
	require.NoError(t, err)
	_, err = g.Undo()
	require.NoError(t, err)

	require.NoError(t, rec.Close())
	require.NoError(t, rec.Err())

	// The journal shows only finalized actions.
	data, err := os.ReadFile(journalPath)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "green rolls 6"))
	assert.False(t, strings.Contains(text, "ends turn"))

	// The store keeps the full history, retraction included.
	reopened, err := NewStore(filepath.Join(dir, "record.jsonl"))
	require.NoError(t, err)
	defer reopened.Close()
	start, steps, err := reopened.Load()
	require.NoError(t, err)
	require.NotNil(t, start)
	require.Len(t, steps, 3)
	assert.Equal(t, game.RollDice{Seat: 1, Die1: 3, Die2: 3}, steps[0].Action)
	assert.True(t, steps[2].Retract)
}
