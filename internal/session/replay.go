package session

import (
	"fmt"

	"github.com/brooksandrew/catan-spectator/internal/board"
	"github.com/brooksandrew/catan-spectator/internal/game"
	"github.com/brooksandrew/catan-spectator/internal/gamelog"
)

// Replay rebuilds a game from its JSONL record by re-applying every step
// in order, retractions included. The emitter sees the same sequence of
// commits the original game produced; progress, when non-nil, is called
// after each step. The rebuilt game is returned in its final state.
func Replay(recordPath string, emitter game.Emitter, progress func(step, total int)) (*game.Game, error) {
	store, err := gamelog.NewStore(recordPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open game record: %w", err)
	}
	defer store.Close()

	start, steps, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read game record: %w", err)
	}
	if start == nil {
		return nil, fmt.Errorf("record %s has no start header", recordPath)
	}

	b, err := BoardFromStart(*start)
	if err != nil {
		return nil, err
	}

	g, err := game.NewGame(b, start.Players, game.Options{
		SkipPregame: !start.Pregame,
		Emitter:     emitter,
		Seed:        start.Seed,
	})
	if err != nil {
		return nil, err
	}
	if err := g.Start(); err != nil {
		return nil, err
	}

	for i, step := range steps {
		if step.Retract {
			if _, err := g.Undo(); err != nil {
				return nil, fmt.Errorf("replay step %d: %w", i+1, err)
			}
		} else if _, err := g.Apply(step.Action); err != nil {
			return nil, fmt.Errorf("replay step %d (%s): %w", i+1, step.Action.Kind(), err)
		}
		if progress != nil {
			progress(i+1, len(steps))
		}
	}
	return g, nil
}

// BoardFromStart reconstructs the board a record header describes. The
// robber lands on the desert, matching where the builder put it; its later
// positions come from the replayed moves.
func BoardFromStart(start game.StartInfo) (*board.Board, error) {
	if len(start.Terrain) != board.NumTiles || len(start.Numbers) != board.NumTiles {
		return nil, fmt.Errorf("start header describes %d tiles, want %d", len(start.Terrain), board.NumTiles)
	}
	b := board.NewBoard(board.NewGrid())
	for i := range start.Terrain {
		t := board.Tile(i + 1)
		if err := b.SetTerrain(t, start.Terrain[i]); err != nil {
			return nil, err
		}
		if err := b.SetNumber(t, start.Numbers[i]); err != nil {
			return nil, err
		}
	}
	for _, p := range start.Ports {
		b.PortAt(p.Tile, p.Dir).Kind = p.Kind
	}

	robberTile := board.Tile(10)
	for t := board.Tile(1); t <= board.NumTiles; t++ {
		if b.Terrain(t) == board.Desert {
			robberTile = t
			break
		}
	}
	b.MoveRobber(robberTile)
	return b, nil
}
