package game

// Phase is the currently active stage of the game. Exactly one phase is
// active at any instant, and every transition lands on a defined phase.
type Phase string

const (
	// PhaseNotStarted is the setup lobby: board editing and player entry.
	PhaseNotStarted Phase = "NotStarted"
	// PhasePregameSettlement waits for the cursor player's free settlement.
	PhasePregameSettlement Phase = "PregameSettlement"
	// PhasePregameRoad waits for the road paired with the settlement just
	// placed.
	PhasePregameRoad Phase = "PregameRoad"
	// PhaseTurnStart waits for the current player's dice roll.
	PhaseTurnStart Phase = "TurnStart"
	// PhaseDiscard blocks after a 7 until every over-limit player has
	// discarded half their hand.
	PhaseDiscard Phase = "Discard"
	// PhaseMoveRobber waits for the robber's destination tile.
	PhaseMoveRobber Phase = "MoveRobber"
	// PhaseSteal waits for a victim choice (or the explicit "no one").
	PhaseSteal Phase = "Steal"
	// PhaseTurnMain is the build/trade/dev-card portion of a turn.
	PhaseTurnMain Phase = "TurnMain"
	// PhaseGameOver is terminal; no further actions are accepted.
	PhaseGameOver Phase = "GameOver"
)

// pregameState tracks the snake-order placement cursor: every player places
// settlement+road in seat order, then again in reverse order.
type pregameState struct {
	enabled bool
	round   int // 0 forward, 1 reverse
	idx     int // index into the player roster
	// lastSettlement is the node of the settlement awaiting its paired
	// road while in PhasePregameRoad.
	lastSettlement int
}
