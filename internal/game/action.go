package game

import "github.com/brooksandrew/catan-spectator/internal/board"

// ActionKind tags the closed set of action variants. Adding a kind means
// extending the validator and the command table, both of which switch
// exhaustively on this tag.
type ActionKind string

const (
	KindPlaceSettlement  ActionKind = "place_settlement"
	KindPlaceCity        ActionKind = "place_city"
	KindPlaceRoad        ActionKind = "place_road"
	KindRollDice         ActionKind = "roll_dice"
	KindDiscard          ActionKind = "discard"
	KindMoveRobber       ActionKind = "move_robber"
	KindSteal            ActionKind = "steal"
	KindTradePort        ActionKind = "trade_port"
	KindTradePlayer      ActionKind = "trade_player"
	KindBuyDevCard       ActionKind = "buy_dev_card"
	KindPlayKnight       ActionKind = "play_knight"
	KindPlayMonopoly     ActionKind = "play_monopoly"
	KindPlayYearOfPlenty ActionKind = "play_year_of_plenty"
	KindPlayRoadBuilder  ActionKind = "play_road_builder"
	KindPlayVictoryPoint ActionKind = "play_victory_point"
	KindEndTurn          ActionKind = "end_turn"
	KindEndGame          ActionKind = "end_game"
)

// Action is one proposed game action. Implementations are plain immutable
// records; the validator decides whether they are legal and the command
// layer applies them.
type Action interface {
	Kind() ActionKind
	Actor() board.Seat
}

// PlaceSettlement builds a settlement on a node (free during pregame).
type PlaceSettlement struct {
	Seat board.Seat
	Node board.Node
}

func (a PlaceSettlement) Kind() ActionKind  { return KindPlaceSettlement }
func (a PlaceSettlement) Actor() board.Seat { return a.Seat }

// PlaceCity upgrades an own settlement to a city.
type PlaceCity struct {
	Seat board.Seat
	Node board.Node
}

func (a PlaceCity) Kind() ActionKind  { return KindPlaceCity }
func (a PlaceCity) Actor() board.Seat { return a.Seat }

// PlaceRoad builds a road on an edge (free during pregame).
type PlaceRoad struct {
	Seat board.Seat
	Edge board.Edge
}

func (a PlaceRoad) Kind() ActionKind  { return KindPlaceRoad }
func (a PlaceRoad) Actor() board.Seat { return a.Seat }

// RollDice rolls for the turn. Zero dice mean the engine rolls; the
// operator may instead key in the physical dice.
type RollDice struct {
	Seat       board.Seat
	Die1, Die2 int
}

func (a RollDice) Kind() ActionKind  { return KindRollDice }
func (a RollDice) Actor() board.Seat { return a.Seat }

// Discard pays a player's discard quota after a 7.
type Discard struct {
	Seat  board.Seat
	Cards Hand
}

func (a Discard) Kind() ActionKind  { return KindDiscard }
func (a Discard) Actor() board.Seat { return a.Seat }

// MoveRobber relocates the robber.
type MoveRobber struct {
	Seat board.Seat
	Tile board.Tile
}

func (a MoveRobber) Kind() ActionKind  { return KindMoveRobber }
func (a MoveRobber) Actor() board.Seat { return a.Seat }

// Steal takes one random card from a victim adjacent to the robber. Victim
// zero is the explicit "no one to steal from" choice; there is no blank
// choice. Stolen is filled in at commit time with the card that actually
// moved, so the recorded action replays the identical outcome.
type Steal struct {
	Seat   board.Seat
	Victim board.Seat
	Stolen Resource `json:",omitempty"`
}

func (a Steal) Kind() ActionKind  { return KindSteal }
func (a Steal) Actor() board.Seat { return a.Seat }

// TradePort trades with the bank at a port ratio. Give must be a single
// resource kind; Port is the ratio being exercised (4:1 when no port is
// owned).
type TradePort struct {
	Seat board.Seat
	Give Hand
	Get  Hand
	Port board.PortKind
}

func (a TradePort) Kind() ActionKind  { return KindTradePort }
func (a TradePort) Actor() board.Seat { return a.Seat }

// TradePlayer swaps cards between the current player and another seat.
type TradePlayer struct {
	Seat    board.Seat
	Partner board.Seat
	Give    Hand
	Get     Hand
}

func (a TradePlayer) Kind() ActionKind  { return KindTradePlayer }
func (a TradePlayer) Actor() board.Seat { return a.Seat }

// BuyDevCard draws the top card of the dev deck.
type BuyDevCard struct {
	Seat board.Seat
}

func (a BuyDevCard) Kind() ActionKind  { return KindBuyDevCard }
func (a BuyDevCard) Actor() board.Seat { return a.Seat }

// PlayKnight plays a knight: the robber moves and a steal follows.
type PlayKnight struct {
	Seat board.Seat
}

func (a PlayKnight) Kind() ActionKind  { return KindPlayKnight }
func (a PlayKnight) Actor() board.Seat { return a.Seat }

// PlayMonopoly takes every card of one resource from all other players.
type PlayMonopoly struct {
	Seat     board.Seat
	Resource Resource
}

func (a PlayMonopoly) Kind() ActionKind  { return KindPlayMonopoly }
func (a PlayMonopoly) Actor() board.Seat { return a.Seat }

// PlayYearOfPlenty takes two free resources from the bank.
type PlayYearOfPlenty struct {
	Seat          board.Seat
	First, Second Resource
}

func (a PlayYearOfPlenty) Kind() ActionKind  { return KindPlayYearOfPlenty }
func (a PlayYearOfPlenty) Actor() board.Seat { return a.Seat }

// PlayRoadBuilder places two free roads.
type PlayRoadBuilder struct {
	Seat         board.Seat
	EdgeA, EdgeB board.Edge
}

func (a PlayRoadBuilder) Kind() ActionKind  { return KindPlayRoadBuilder }
func (a PlayRoadBuilder) Actor() board.Seat { return a.Seat }

// PlayVictoryPoint reveals a victory point card.
type PlayVictoryPoint struct {
	Seat board.Seat
}

func (a PlayVictoryPoint) Kind() ActionKind  { return KindPlayVictoryPoint }
func (a PlayVictoryPoint) Actor() board.Seat { return a.Seat }

// EndTurn passes play to the next seat.
type EndTurn struct {
	Seat board.Seat
}

func (a EndTurn) Kind() ActionKind  { return KindEndTurn }
func (a EndTurn) Actor() board.Seat { return a.Seat }

// EndGame declares the current player the winner and closes the log.
type EndGame struct {
	Seat board.Seat
}

func (a EndGame) Kind() ActionKind  { return KindEndGame }
func (a EndGame) Actor() board.Seat { return a.Seat }
