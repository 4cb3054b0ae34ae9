package game

import "github.com/brooksandrew/catan-spectator/internal/board"

// StartInfo is the header handed to the log emitter at game start: enough
// to replay the game from scratch.
type StartInfo struct {
	Players []Player
	Terrain []board.Terrain
	Numbers []board.HexNumber
	Ports   []board.Port
	Pregame bool
	// Seed reproduces the dev deck shuffle on replay.
	Seed int64
}

// Commit describes one committed action. Details carries derived values a
// log renderer needs but the raw action does not state (the robber's tile
// at steal time, road endpoints, the resolved roll).
type Commit struct {
	Actor   Player
	Action  Action
	Details map[string]any
	Won     bool
}

// Emitter receives finalized actions in commit order. An undone action is
// retracted; a redone one is committed again. The emitter never sees a
// rejected action.
type Emitter interface {
	GameStarted(info StartInfo)
	ActionCommitted(c Commit)
	ActionRetracted()
	GameEnded(winner Player)
}

// nopEmitter is used when no log sink is wired, e.g. in tests that only
// exercise the state machine.
type nopEmitter struct{}

func (nopEmitter) GameStarted(StartInfo)   {}
func (nopEmitter) ActionCommitted(Commit)  {}
func (nopEmitter) ActionRetracted()        {}
func (nopEmitter) GameEnded(Player)        {}
