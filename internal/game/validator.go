package game

import (
	"fmt"

	"github.com/brooksandrew/catan-spectator/internal/board"
)

// Validate is the pure accept/reject predicate. It reads the phase, the
// board, and the ledger and never mutates anything. A nil return means the
// action may be committed; otherwise the error names the specific reason.
func (g *Game) Validate(a Action) error {
	switch g.phase {
	case PhaseNotStarted:
		return fmt.Errorf("game has not started: %w", ErrWrongPhase)
	case PhaseGameOver:
		return fmt.Errorf("game is over: %w", ErrWrongPhase)
	}

	switch act := a.(type) {
	case PlaceSettlement:
		return g.validatePlaceSettlement(act)
	case PlaceCity:
		return g.validatePlaceCity(act)
	case PlaceRoad:
		return g.validatePlaceRoad(act)
	case RollDice:
		return g.validateRollDice(act)
	case Discard:
		return g.validateDiscard(act)
	case MoveRobber:
		return g.validateMoveRobber(act)
	case Steal:
		return g.validateSteal(act)
	case TradePort:
		return g.validateTradePort(act)
	case TradePlayer:
		return g.validateTradePlayer(act)
	case BuyDevCard:
		return g.validateBuyDevCard(act)
	case PlayKnight:
		return g.validatePlayDev(act.Seat, DevKnight)
	case PlayMonopoly:
		if _, ok := ParseResource(string(act.Resource)); !ok {
			return fmt.Errorf("unknown resource %q", act.Resource)
		}
		return g.validatePlayDev(act.Seat, DevMonopoly)
	case PlayYearOfPlenty:
		for _, r := range []Resource{act.First, act.Second} {
			if _, ok := ParseResource(string(r)); !ok {
				return fmt.Errorf("unknown resource %q", r)
			}
		}
		return g.validatePlayDev(act.Seat, DevYearOfPlenty)
	case PlayRoadBuilder:
		return g.validatePlayRoadBuilder(act)
	case PlayVictoryPoint:
		if err := g.requireCurrent(act.Seat); err != nil {
			return err
		}
		if g.phase != PhaseTurnMain {
			return fmt.Errorf("dev cards play during the main turn: %w", ErrWrongPhase)
		}
		if g.ledger.DevCount(act.Seat, DevVictoryPoint) == 0 {
			return fmt.Errorf("no victory point card held: %w", ErrInsufficientResources)
		}
		return nil
	case EndTurn:
		if err := g.requireCurrent(act.Seat); err != nil {
			return err
		}
		if g.phase != PhaseTurnMain {
			return fmt.Errorf("turn ends from the main phase: %w", ErrWrongPhase)
		}
		return nil
	case EndGame:
		return g.requireCurrent(act.Seat)
	}
	return fmt.Errorf("unknown action kind %q", a.Kind())
}

func (g *Game) requireCurrent(s board.Seat) error {
	if g.players[g.cur].Seat != s {
		return fmt.Errorf("seat %d acted on seat %d's turn: %w", s, g.players[g.cur].Seat, ErrWrongPlayer)
	}
	return nil
}

func (g *Game) pregameSeat() board.Seat {
	return g.players[g.pregame.idx].Seat
}

func (g *Game) validatePlaceSettlement(a PlaceSettlement) error {
	if !g.board.Grid().ValidNode(a.Node) {
		return fmt.Errorf("no such node %d", a.Node)
	}
	switch g.phase {
	case PhasePregameSettlement:
		if g.pregameSeat() != a.Seat {
			return fmt.Errorf("pregame placement belongs to seat %d: %w", g.pregameSeat(), ErrWrongPlayer)
		}
	case PhaseTurnMain:
		if err := g.requireCurrent(a.Seat); err != nil {
			return err
		}
	default:
		return fmt.Errorf("settlements build during pregame or the main turn: %w", ErrWrongPhase)
	}

	if _, occupied := g.board.PieceAt(a.Node); occupied {
		return fmt.Errorf("node %d: %w", a.Node, board.ErrOccupiedSlot)
	}
	// The distance rule applies to every settlement and city, regardless
	// of owner.
	for _, adj := range g.board.Grid().AdjacentNodes(a.Node) {
		if _, occupied := g.board.PieceAt(adj); occupied {
			return fmt.Errorf("node %d is adjacent to a building on node %d: %w", a.Node, adj, ErrDistanceRuleViolation)
		}
	}
	if g.ledger.Remaining(a.Seat, board.Settlement) == 0 {
		return fmt.Errorf("settlement supply: %w", ErrNoPiecesRemaining)
	}
	if g.phase == PhaseTurnMain {
		if !g.connectedNode(a.Seat, a.Node) {
			return fmt.Errorf("node %d: %w", a.Node, ErrNotConnectedToNetwork)
		}
		if !g.ledger.Hand(a.Seat).Covers(SettlementCost) {
			return fmt.Errorf("settlement costs %s: %w", SettlementCost, ErrInsufficientResources)
		}
	}
	return nil
}

// connectedNode reports whether one of the seat's roads reaches the node.
func (g *Game) connectedNode(s board.Seat, n board.Node) bool {
	for _, e := range g.board.Grid().EdgesAt(n) {
		if p, ok := g.board.RoadAt(e); ok && p.Owner == s {
			return true
		}
	}
	return false
}

func (g *Game) validatePlaceCity(a PlaceCity) error {
	if !g.board.Grid().ValidNode(a.Node) {
		return fmt.Errorf("no such node %d", a.Node)
	}
	if err := g.requireCurrent(a.Seat); err != nil {
		return err
	}
	if g.phase != PhaseTurnMain {
		return fmt.Errorf("cities build during the main turn: %w", ErrWrongPhase)
	}
	p, ok := g.board.PieceAt(a.Node)
	if !ok {
		return fmt.Errorf("node %d has no settlement to upgrade: %w", a.Node, board.ErrEmptySlot)
	}
	if p.Owner != a.Seat || p.Kind != board.Settlement {
		return fmt.Errorf("node %d does not hold seat %d's settlement: %w", a.Node, a.Seat, ErrWrongPlayer)
	}
	if g.ledger.Remaining(a.Seat, board.City) == 0 {
		return fmt.Errorf("city supply: %w", ErrNoPiecesRemaining)
	}
	if !g.ledger.Hand(a.Seat).Covers(CityCost) {
		return fmt.Errorf("city costs %s: %w", CityCost, ErrInsufficientResources)
	}
	return nil
}

func (g *Game) validatePlaceRoad(a PlaceRoad) error {
	if !g.board.Grid().ValidEdge(a.Edge) {
		return fmt.Errorf("no such edge %d", a.Edge)
	}
	if _, occupied := g.board.RoadAt(a.Edge); occupied {
		return fmt.Errorf("edge %d: %w", a.Edge, board.ErrOccupiedSlot)
	}
	if g.ledger.Remaining(a.Seat, board.Road) == 0 {
		return fmt.Errorf("road supply: %w", ErrNoPiecesRemaining)
	}

	switch g.phase {
	case PhasePregameRoad:
		if g.pregameSeat() != a.Seat {
			return fmt.Errorf("pregame placement belongs to seat %d: %w", g.pregameSeat(), ErrWrongPlayer)
		}
		// The free pregame road pairs with the settlement just placed.
		ends := g.board.Grid().NodesOfEdge(a.Edge)
		if int(ends[0]) != g.pregame.lastSettlement && int(ends[1]) != g.pregame.lastSettlement {
			return fmt.Errorf("edge %d does not touch the new settlement: %w", a.Edge, ErrNotConnectedToNetwork)
		}
		return nil
	case PhaseTurnMain:
		if err := g.requireCurrent(a.Seat); err != nil {
			return err
		}
		if !g.board.ConnectedToNetwork(a.Edge, a.Seat) {
			return fmt.Errorf("edge %d: %w", a.Edge, ErrNotConnectedToNetwork)
		}
		if !g.ledger.Hand(a.Seat).Covers(RoadCost) {
			return fmt.Errorf("road costs %s: %w", RoadCost, ErrInsufficientResources)
		}
		return nil
	}
	return fmt.Errorf("roads build during pregame or the main turn: %w", ErrWrongPhase)
}

func (g *Game) validateRollDice(a RollDice) error {
	if err := g.requireCurrent(a.Seat); err != nil {
		return err
	}
	if g.phase != PhaseTurnStart {
		return fmt.Errorf("dice roll opens a turn: %w", ErrWrongPhase)
	}
	for _, d := range []int{a.Die1, a.Die2} {
		if d < 1 || d > 6 {
			return fmt.Errorf("die value %d out of range", d)
		}
	}
	return nil
}

func (g *Game) validateDiscard(a Discard) error {
	if g.phase != PhaseDiscard {
		return fmt.Errorf("no discard is pending: %w", ErrWrongPhase)
	}
	quota, ok := g.pendingDiscards[a.Seat]
	if !ok {
		return fmt.Errorf("seat %d has nothing to discard: %w", a.Seat, ErrWrongPlayer)
	}
	if a.Cards.Total() != quota {
		return fmt.Errorf("seat %d must discard exactly %d cards, got %d", a.Seat, quota, a.Cards.Total())
	}
	if !g.ledger.Hand(a.Seat).Covers(a.Cards) {
		return fmt.Errorf("discard %s: %w", a.Cards, ErrInsufficientResources)
	}
	return nil
}

func (g *Game) validateMoveRobber(a MoveRobber) error {
	if err := g.requireCurrent(a.Seat); err != nil {
		return err
	}
	if g.phase != PhaseMoveRobber {
		return fmt.Errorf("robber is not waiting to move: %w", ErrWrongPhase)
	}
	if !g.board.Grid().ValidTile(a.Tile) {
		return fmt.Errorf("no such tile %d", a.Tile)
	}
	if a.Tile == g.board.Robber() && !g.rules.RobberMayStay() {
		return fmt.Errorf("robber must move to a different tile")
	}
	return nil
}

func (g *Game) validateSteal(a Steal) error {
	if err := g.requireCurrent(a.Seat); err != nil {
		return err
	}
	if g.phase != PhaseSteal {
		return fmt.Errorf("no steal is pending: %w", ErrWrongPhase)
	}
	if a.Victim == 0 {
		// The explicit "no one to steal from" choice is always available;
		// the operator records what happened at the table.
		return nil
	}
	if a.Victim == a.Seat {
		return fmt.Errorf("cannot steal from yourself: %w", ErrWrongPlayer)
	}
	for _, s := range g.StealableSeats() {
		if s == a.Victim {
			// A replayed record names the card it took.
			if a.Stolen != "" && g.ledger.Hand(a.Victim)[a.Stolen] == 0 {
				return fmt.Errorf("seat %d holds no %s: %w", a.Victim, a.Stolen, ErrInsufficientResources)
			}
			return nil
		}
	}
	return fmt.Errorf("seat %d is not robbable at tile %d: %w", a.Victim, g.board.Robber(), ErrNoEligibleVictim)
}

// portRatio maps a port kind to its give:get ratio.
func portRatio(k board.PortKind) int {
	switch k {
	case board.PortAny4:
		return 4
	case board.PortAny3:
		return 3
	default:
		return 2
	}
}

// ownsPort reports whether the seat has a settlement or city on a node of
// a port of the given kind.
func (g *Game) ownsPort(s board.Seat, kind board.PortKind) bool {
	for _, p := range g.board.Ports() {
		if p.Kind != kind {
			continue
		}
		for _, n := range g.board.PortNodes(p) {
			if g.board.HasBuildingAt(s, n) {
				return true
			}
		}
	}
	return false
}

func (g *Game) validateTradePort(a TradePort) error {
	if err := g.requireCurrent(a.Seat); err != nil {
		return err
	}
	if g.phase != PhaseTurnMain {
		return fmt.Errorf("trades happen during the main turn: %w", ErrWrongPhase)
	}
	if a.Give.Total() < 1 || a.Get.Total() < 1 {
		return fmt.Errorf("give %s for %s: %w", a.Give, a.Get, ErrZeroAmountTrade)
	}

	var giveRes Resource
	kinds := 0
	for r, c := range a.Give {
		if c > 0 {
			giveRes = r
			kinds++
		}
	}
	if kinds != 1 {
		return fmt.Errorf("a port trade gives a single resource kind: %w", ErrInvalidTradeRatio)
	}

	switch a.Port {
	case board.PortAny4:
		// Always available.
	case board.PortAny3:
		if !g.ownsPort(a.Seat, board.PortAny3) {
			return fmt.Errorf("seat %d owns no 3:1 port, 4:1 applies: %w", a.Seat, ErrInvalidTradeRatio)
		}
	case board.PortWood, board.PortBrick, board.PortWheat, board.PortSheep, board.PortOre:
		if string(a.Port) != string(giveRes) {
			return fmt.Errorf("port %s does not take %s: %w", a.Port, giveRes, ErrInvalidTradeRatio)
		}
		if !g.ownsPort(a.Seat, a.Port) {
			return fmt.Errorf("seat %d owns no %s port, 4:1 applies: %w", a.Seat, a.Port, ErrInvalidTradeRatio)
		}
	default:
		return fmt.Errorf("port kind %q is not tradeable: %w", a.Port, ErrInvalidTradeRatio)
	}

	ratio := portRatio(a.Port)
	if a.Give.Total() != ratio*a.Get.Total() {
		return fmt.Errorf("give %d for %d does not match %d:1: %w", a.Give.Total(), a.Get.Total(), ratio, ErrInvalidTradeRatio)
	}
	if !g.ledger.Hand(a.Seat).Covers(a.Give) {
		return fmt.Errorf("give %s: %w", a.Give, ErrInsufficientResources)
	}
	return nil
}

func (g *Game) validateTradePlayer(a TradePlayer) error {
	if err := g.requireCurrent(a.Seat); err != nil {
		return err
	}
	if g.phase != PhaseTurnMain {
		return fmt.Errorf("trades happen during the main turn: %w", ErrWrongPhase)
	}
	if a.Partner == a.Seat {
		return fmt.Errorf("cannot trade with yourself: %w", ErrWrongPlayer)
	}
	if _, ok := g.PlayerBySeat(a.Partner); !ok {
		return fmt.Errorf("no player in seat %d: %w", a.Partner, ErrWrongPlayer)
	}
	if a.Give.Total() < 1 || a.Get.Total() < 1 {
		return fmt.Errorf("give %s for %s: %w", a.Give, a.Get, ErrZeroAmountTrade)
	}
	if !g.ledger.Hand(a.Seat).Covers(a.Give) {
		return fmt.Errorf("give %s: %w", a.Give, ErrInsufficientResources)
	}
	if !g.ledger.Hand(a.Partner).Covers(a.Get) {
		return fmt.Errorf("seat %d cannot pay %s: %w", a.Partner, a.Get, ErrInsufficientResources)
	}
	return nil
}

func (g *Game) validateBuyDevCard(a BuyDevCard) error {
	if err := g.requireCurrent(a.Seat); err != nil {
		return err
	}
	if g.phase != PhaseTurnMain {
		return fmt.Errorf("dev cards buy during the main turn: %w", ErrWrongPhase)
	}
	if len(g.devDeck) == 0 {
		return fmt.Errorf("dev deck exhausted: %w", ErrNoPiecesRemaining)
	}
	if !g.ledger.Hand(a.Seat).Covers(DevCardCost) {
		return fmt.Errorf("dev card costs %s: %w", DevCardCost, ErrInsufficientResources)
	}
	return nil
}

func (g *Game) validatePlayDev(s board.Seat, card DevCard) error {
	if err := g.requireCurrent(s); err != nil {
		return err
	}
	if g.phase != PhaseTurnMain {
		return fmt.Errorf("dev cards play during the main turn: %w", ErrWrongPhase)
	}
	if g.devPlayed {
		return fmt.Errorf("already played a dev card this turn")
	}
	if g.ledger.DevCount(s, card) == 0 {
		return fmt.Errorf("no %s card held: %w", card, ErrInsufficientResources)
	}
	return nil
}

func (g *Game) validatePlayRoadBuilder(a PlayRoadBuilder) error {
	if err := g.validatePlayDev(a.Seat, DevRoadBuilder); err != nil {
		return err
	}
	for _, e := range []board.Edge{a.EdgeA, a.EdgeB} {
		if !g.board.Grid().ValidEdge(e) {
			return fmt.Errorf("no such edge %d", e)
		}
		if _, occupied := g.board.RoadAt(e); occupied {
			return fmt.Errorf("edge %d: %w", e, board.ErrOccupiedSlot)
		}
	}
	if a.EdgeA == a.EdgeB {
		return fmt.Errorf("road builder places two distinct roads")
	}
	if g.ledger.Remaining(a.Seat, board.Road) < 2 {
		return fmt.Errorf("road supply: %w", ErrNoPiecesRemaining)
	}
	if !g.board.ConnectedToNetwork(a.EdgeA, a.Seat) {
		return fmt.Errorf("edge %d: %w", a.EdgeA, ErrNotConnectedToNetwork)
	}
	// The second road may chain off the first.
	if !g.board.ConnectedToNetwork(a.EdgeB, a.Seat) && !edgesTouch(g.board.Grid(), a.EdgeA, a.EdgeB) {
		return fmt.Errorf("edge %d: %w", a.EdgeB, ErrNotConnectedToNetwork)
	}
	return nil
}

func edgesTouch(grid *board.Grid, a, b board.Edge) bool {
	ea, eb := grid.NodesOfEdge(a), grid.NodesOfEdge(b)
	return ea[0] == eb[0] || ea[0] == eb[1] || ea[1] == eb[0] || ea[1] == eb[1]
}
