package game

// Rules are the variant-sensitive knobs of the game. The standard
// implementation below hardcodes the base rules; internal/rules provides a
// CEL-backed implementation whose expressions a variant file can override.
type Rules interface {
	// WinThreshold is the victory point total that ends the game.
	WinThreshold() int
	// MustDiscard reports whether a hand of the given size discards after
	// a roll of 7.
	MustDiscard(handSize int) bool
	// DiscardQuota is how many cards such a hand must discard.
	DiscardQuota(handSize int) int
	// RobberMayStay reports whether the robber may be "moved" to the tile
	// it already occupies.
	RobberMayStay() bool
}

type standardRules struct{}

// StandardRules returns the base game rules: win at 10, discard floor(n/2)
// when holding more than 7 cards, robber must move.
func StandardRules() Rules { return standardRules{} }

func (standardRules) WinThreshold() int            { return 10 }
func (standardRules) MustDiscard(handSize int) bool { return handSize > 7 }
func (standardRules) DiscardQuota(handSize int) int { return handSize / 2 }
func (standardRules) RobberMayStay() bool           { return false }
