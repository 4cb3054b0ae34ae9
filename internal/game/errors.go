package game

import "errors"

// Every rejection leaves the machine exactly where it was: no mutation, no
// command push. The operator corrects the input and retries.
var (
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrNoPiecesRemaining     = errors.New("no pieces remaining")
	ErrDistanceRuleViolation = errors.New("distance rule violation")
	ErrNotConnectedToNetwork = errors.New("not connected to road network")
	ErrWrongPhase            = errors.New("action not legal in current phase")
	ErrWrongPlayer           = errors.New("not that player's turn")
	ErrInvalidTradeRatio     = errors.New("invalid trade ratio")
	ErrZeroAmountTrade       = errors.New("trade amounts must be at least 1")
	ErrNoEligibleVictim      = errors.New("no eligible victim")
	ErrNothingToUndo         = errors.New("nothing to undo")
	ErrNothingToRedo         = errors.New("nothing to redo")
)
