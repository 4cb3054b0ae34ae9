// Package parser defines the operator console grammar. Every line the
// operator types becomes one Command; the session maps it onto a game
// action. Most commands take an optional leading color naming the acting
// player; without it the current player acts.
package parser

// Command represents one line of operator input.
type Command struct {
	Start   *StartCmd   `parser:"( @@"`
	Roll    *RollCmd    `parser:"| @@"`
	Build   *BuildCmd   `parser:"| @@"`
	Discard *DiscardCmd `parser:"| @@"`
	Robber  *RobberCmd  `parser:"| @@"`
	Steal   *StealCmd   `parser:"| @@"`
	Trade   *TradeCmd   `parser:"| @@"`
	Buy     *BuyCmd     `parser:"| @@"`
	Play    *PlayCmd    `parser:"| @@"`
	End     *EndCmd     `parser:"| @@"`
	Undo    *UndoCmd    `parser:"| @@"`
	Redo    *RedoCmd    `parser:"| @@ )"`
}

// StartCmd locks the board and begins play.
type StartCmd struct {
	Keyword string `parser:"@'start'"`
}

// RollCmd records a dice roll: two die values keyed in, or none to let the
// engine roll.
type RollCmd struct {
	Actor   string `parser:"@Ident?"`
	Keyword string `parser:"@'roll'"`
	Dice    []int  `parser:"@Int*"`
}

// BuildCmd places a settlement, city, or road: "build settlement 23".
type BuildCmd struct {
	Actor   string `parser:"@Ident?"`
	Keyword string `parser:"@'build'"`
	Piece   string `parser:"@('settlement'|'city'|'road')"`
	Loc     int    `parser:"@Int"`
}

// DiscardCmd pays a discard quota: "blue discard 2 wood 2 brick". The
// actor is required because the discarding player is rarely the current
// one.
type DiscardCmd struct {
	Actor   string          `parser:"@Ident"`
	Keyword string          `parser:"@'discard'"`
	Cards   []*ResourcePair `parser:"@@+"`
}

// RobberCmd moves the robber: "robber 7".
type RobberCmd struct {
	Actor   string `parser:"@Ident?"`
	Keyword string `parser:"@'robber'"`
	Tile    int    `parser:"@Int"`
}

// StealCmd picks the robbery victim by color, or "none": "steal blue".
type StealCmd struct {
	Actor   string `parser:"@Ident?"`
	Keyword string `parser:"@'steal'"`
	Victim  string `parser:"@(Ident|'none')"`
}

// TradeCmd covers both trade forms: "trade 4 wood for 1 ore port 4:1" and
// "trade 2 wood for 1 ore with blue". Exactly one of Port and Partner is
// set; the session rejects the rest.
type TradeCmd struct {
	Actor   string          `parser:"@Ident?"`
	Keyword string          `parser:"@'trade'"`
	Give    []*ResourcePair `parser:"@@+"`
	For     string          `parser:"@'for'"`
	Get     []*ResourcePair `parser:"@@+"`
	Port    *string         `parser:"( 'port' @(Ratio|Ident)"`
	Partner *string         `parser:"| 'with' @Ident )?"`
}

// ResourcePair is one "<count> <resource>" entry of a card list.
type ResourcePair struct {
	Count    int    `parser:"@Int"`
	Resource string `parser:"@Ident"`
}

// BuyCmd draws a dev card: "buy".
type BuyCmd struct {
	Actor   string `parser:"@Ident?"`
	Keyword string `parser:"@'buy'"`
}

// PlayCmd plays a dev card: "play knight", "play monopoly ore",
// "play plenty wood ore", "play roads 12 13", "play point".
type PlayCmd struct {
	Actor    string        `parser:"@Ident?"`
	Keyword  string        `parser:"@'play'"`
	Knight   bool          `parser:"( @'knight'"`
	Monopoly *MonopolyExpr `parser:"| @@"`
	Plenty   *PlentyExpr   `parser:"| @@"`
	Roads    *RoadsExpr    `parser:"| @@"`
	Point    bool          `parser:"| @'point' )"`
}

// MonopolyExpr names the monopolized resource.
type MonopolyExpr struct {
	Keyword  string `parser:"@'monopoly'"`
	Resource string `parser:"@Ident"`
}

// PlentyExpr names the two year-of-plenty resources.
type PlentyExpr struct {
	Keyword string `parser:"@'plenty'"`
	First   string `parser:"@Ident"`
	Second  string `parser:"@Ident"`
}

// RoadsExpr names the two road-builder edges.
type RoadsExpr struct {
	Keyword string `parser:"@'roads'"`
	A       int    `parser:"@Int"`
	B       int    `parser:"@Int"`
}

// EndCmd ends the turn or declares the game over: "end turn", "end game".
type EndCmd struct {
	Actor   string `parser:"@Ident?"`
	Keyword string `parser:"@'end'"`
	What    string `parser:"@('turn'|'game')"`
}

// UndoCmd retracts the last committed action.
type UndoCmd struct {
	Keyword string `parser:"@'undo'"`
}

// RedoCmd re-commits the last retracted action.
type RedoCmd struct {
	Keyword string `parser:"@'redo'"`
}
