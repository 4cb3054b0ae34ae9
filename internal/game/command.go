package game

import (
	"github.com/brooksandrew/catan-spectator/internal/board"
)

// cursor is the scalar turn-machine state every command snapshots before
// mutating. Restoring it is the uniform half of every revert; the command
// then only has to undo its own board and ledger writes.
type cursor struct {
	phase           Phase
	cur             int
	turn            int
	lastRoll        int
	devPlayed       bool
	robberViaKnight bool
	pregame         pregameState
	pendingDiscards map[board.Seat]int
}

func (g *Game) captureCursor() cursor {
	c := cursor{
		phase:           g.phase,
		cur:             g.cur,
		turn:            g.turn,
		lastRoll:        g.lastRoll,
		devPlayed:       g.devPlayed,
		robberViaKnight: g.robberViaKnight,
		pregame:         g.pregame,
	}
	if g.pendingDiscards != nil {
		c.pendingDiscards = make(map[board.Seat]int, len(g.pendingDiscards))
		for s, n := range g.pendingDiscards {
			c.pendingDiscards[s] = n
		}
	}
	return c
}

func (g *Game) restoreCursor(c cursor) {
	g.phase = c.phase
	g.cur = c.cur
	g.turn = c.turn
	g.lastRoll = c.lastRoll
	g.devPlayed = c.devPlayed
	g.robberViaKnight = c.robberViaKnight
	g.pregame = c.pregame
	g.pendingDiscards = nil
	if c.pendingDiscards != nil {
		g.pendingDiscards = make(map[board.Seat]int, len(c.pendingDiscards))
		for s, n := range c.pendingDiscards {
			g.pendingDiscards[s] = n
		}
	}
}

type baseCmd struct {
	action Action
	prev   cursor
}

func (b *baseCmd) Action() Action { return b.action }

func (b *baseCmd) snapshot(g *Game) { b.prev = g.captureCursor() }

func (b *baseCmd) restore(g *Game) { g.restoreCursor(b.prev) }

func (b *baseCmd) commitWith(g *Game, details map[string]any) Commit {
	return Commit{
		Actor:   g.mustPlayer(b.action.Actor()),
		Action:  b.action,
		Details: details,
		Won:     g.phase == PhaseGameOver,
	}
}

// placeSettlementCmd builds a settlement. During pregame it is free, and the
// second pregame settlement grants one resource per adjacent tile.
type placeSettlementCmd struct {
	baseCmd
	paid    bool
	granted Hand
}

func (c *placeSettlementCmd) apply(g *Game) error {
	a := c.action.(PlaceSettlement)
	c.snapshot(g)
	c.paid = false
	c.granted = nil

	if g.phase == PhaseTurnMain {
		if err := g.ledger.RemoveResources(a.Seat, SettlementCost); err != nil {
			return err
		}
		c.paid = true
	}
	if err := g.ledger.DecrementInventory(a.Seat, board.Settlement); err != nil {
		return err
	}
	if err := g.board.PlaceNodePiece(a.Node, board.Piece{Kind: board.Settlement, Owner: a.Seat}); err != nil {
		return err
	}

	if g.phase == PhasePregameSettlement {
		if g.pregame.round == 1 {
			c.granted = g.startingYield(a.Node)
			g.ledger.AddResources(a.Seat, c.granted)
		}
		g.pregame.lastSettlement = int(a.Node)
		g.phase = PhasePregameRoad
		return nil
	}
	g.checkWin(a.Seat)
	return nil
}

func (c *placeSettlementCmd) revert(g *Game) error {
	a := c.action.(PlaceSettlement)
	if _, err := g.board.RemoveNodePiece(a.Node); err != nil {
		return err
	}
	if err := g.ledger.IncrementInventory(a.Seat, board.Settlement); err != nil {
		return err
	}
	if c.granted != nil {
		if err := g.ledger.RemoveResources(a.Seat, c.granted); err != nil {
			return err
		}
	}
	if c.paid {
		g.ledger.AddResources(a.Seat, SettlementCost)
	}
	c.restore(g)
	return nil
}

func (c *placeSettlementCmd) commit(g *Game) Commit {
	return c.commitWith(g, map[string]any{"free": !c.paid})
}

// placeCityCmd upgrades a settlement: the settlement piece returns to the
// player's supply.
type placeCityCmd struct {
	baseCmd
}

func (c *placeCityCmd) apply(g *Game) error {
	a := c.action.(PlaceCity)
	c.snapshot(g)
	if err := g.ledger.RemoveResources(a.Seat, CityCost); err != nil {
		return err
	}
	if err := g.ledger.DecrementInventory(a.Seat, board.City); err != nil {
		return err
	}
	if _, err := g.board.RemoveNodePiece(a.Node); err != nil {
		return err
	}
	if err := g.ledger.IncrementInventory(a.Seat, board.Settlement); err != nil {
		return err
	}
	if err := g.board.PlaceNodePiece(a.Node, board.Piece{Kind: board.City, Owner: a.Seat}); err != nil {
		return err
	}
	g.checkWin(a.Seat)
	return nil
}

func (c *placeCityCmd) revert(g *Game) error {
	a := c.action.(PlaceCity)
	if _, err := g.board.RemoveNodePiece(a.Node); err != nil {
		return err
	}
	if err := g.ledger.DecrementInventory(a.Seat, board.Settlement); err != nil {
		return err
	}
	if err := g.board.PlaceNodePiece(a.Node, board.Piece{Kind: board.Settlement, Owner: a.Seat}); err != nil {
		return err
	}
	if err := g.ledger.IncrementInventory(a.Seat, board.City); err != nil {
		return err
	}
	g.ledger.AddResources(a.Seat, CityCost)
	c.restore(g)
	return nil
}

func (c *placeCityCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// placeRoadCmd builds a road. The pregame road advances the placement
// cursor.
type placeRoadCmd struct {
	baseCmd
	paid bool
}

func (c *placeRoadCmd) apply(g *Game) error {
	a := c.action.(PlaceRoad)
	c.snapshot(g)
	c.paid = false

	if g.phase == PhaseTurnMain {
		if err := g.ledger.RemoveResources(a.Seat, RoadCost); err != nil {
			return err
		}
		c.paid = true
	}
	if err := g.ledger.DecrementInventory(a.Seat, board.Road); err != nil {
		return err
	}
	if err := g.board.PlaceRoad(a.Edge, board.Piece{Kind: board.Road, Owner: a.Seat}); err != nil {
		return err
	}
	if g.phase == PhasePregameRoad {
		g.advancePregame()
	}
	return nil
}

func (c *placeRoadCmd) revert(g *Game) error {
	a := c.action.(PlaceRoad)
	if _, err := g.board.RemoveRoad(a.Edge); err != nil {
		return err
	}
	if err := g.ledger.IncrementInventory(a.Seat, board.Road); err != nil {
		return err
	}
	if c.paid {
		g.ledger.AddResources(a.Seat, RoadCost)
	}
	c.restore(g)
	return nil
}

func (c *placeRoadCmd) commit(g *Game) Commit {
	return c.commitWith(g, map[string]any{"free": !c.paid})
}

// rollCmd resolves a turn's dice roll: either pay out production or, on a
// 7, open the discard/robber chain.
type rollCmd struct {
	baseCmd
	payouts map[board.Seat]Hand
}

func (c *rollCmd) apply(g *Game) error {
	a := c.action.(RollDice)
	c.snapshot(g)
	c.payouts = nil

	total := a.Die1 + a.Die2
	g.lastRoll = total

	if total == 7 {
		g.pendingDiscards = make(map[board.Seat]int)
		for _, p := range g.players {
			size := g.ledger.HandSize(p.Seat)
			if g.rules.MustDiscard(size) {
				g.pendingDiscards[p.Seat] = g.rules.DiscardQuota(size)
			}
		}
		if len(g.pendingDiscards) == 0 {
			g.pendingDiscards = nil
			g.phase = PhaseMoveRobber
		} else {
			g.phase = PhaseDiscard
		}
		return nil
	}

	c.payouts = g.production(total)
	for s, h := range c.payouts {
		g.ledger.AddResources(s, h)
	}
	g.phase = PhaseTurnMain
	return nil
}

func (c *rollCmd) revert(g *Game) error {
	for s, h := range c.payouts {
		if err := g.ledger.RemoveResources(s, h); err != nil {
			return err
		}
	}
	c.restore(g)
	return nil
}

func (c *rollCmd) commit(g *Game) Commit {
	a := c.action.(RollDice)
	return c.commitWith(g, map[string]any{"roll": a.Die1 + a.Die2})
}

// discardCmd pays one player's discard quota after a 7.
type discardCmd struct {
	baseCmd
}

func (c *discardCmd) apply(g *Game) error {
	a := c.action.(Discard)
	c.snapshot(g)
	if err := g.ledger.RemoveResources(a.Seat, a.Cards); err != nil {
		return err
	}
	delete(g.pendingDiscards, a.Seat)
	if len(g.pendingDiscards) == 0 {
		g.pendingDiscards = nil
		g.phase = PhaseMoveRobber
	}
	return nil
}

func (c *discardCmd) revert(g *Game) error {
	a := c.action.(Discard)
	g.ledger.AddResources(a.Seat, a.Cards)
	c.restore(g)
	return nil
}

func (c *discardCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// moveRobberCmd relocates the robber and opens the steal choice.
type moveRobberCmd struct {
	baseCmd
	prevTile board.Tile
}

func (c *moveRobberCmd) apply(g *Game) error {
	a := c.action.(MoveRobber)
	c.snapshot(g)
	c.prevTile = g.board.MoveRobber(a.Tile)
	g.phase = PhaseSteal
	return nil
}

func (c *moveRobberCmd) revert(g *Game) error {
	g.board.MoveRobber(c.prevTile)
	c.restore(g)
	return nil
}

func (c *moveRobberCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// stealCmd takes one random card from the victim. The card is resolved on
// first apply and written back into the action, so a redo and a replayed
// record both reproduce the identical outcome.
type stealCmd struct {
	baseCmd
	viaKnight bool
}

func (c *stealCmd) apply(g *Game) error {
	a := c.action.(Steal)
	c.snapshot(g)
	c.viaKnight = g.robberViaKnight

	if a.Victim != 0 {
		if a.Stolen == "" {
			cards := g.ledger.Hand(a.Victim).sortedCards()
			a.Stolen = cards[pickIndex(len(cards))]
			c.action = a
		}
		if err := g.ledger.RemoveResources(a.Victim, Hand{a.Stolen: 1}); err != nil {
			return err
		}
		g.ledger.AddResources(a.Seat, Hand{a.Stolen: 1})
	}
	g.robberViaKnight = false
	g.phase = PhaseTurnMain
	return nil
}

func (c *stealCmd) revert(g *Game) error {
	a := c.action.(Steal)
	if a.Victim != 0 {
		if err := g.ledger.RemoveResources(a.Seat, Hand{a.Stolen: 1}); err != nil {
			return err
		}
		g.ledger.AddResources(a.Victim, Hand{a.Stolen: 1})
	}
	c.restore(g)
	return nil
}

func (c *stealCmd) commit(g *Game) Commit {
	return c.commitWith(g, map[string]any{
		"robber":     int(g.board.Robber()),
		"via_knight": c.viaKnight,
	})
}

// tradePortCmd swaps cards with the bank.
type tradePortCmd struct {
	baseCmd
}

func (c *tradePortCmd) apply(g *Game) error {
	a := c.action.(TradePort)
	c.snapshot(g)
	if err := g.ledger.RemoveResources(a.Seat, a.Give); err != nil {
		return err
	}
	g.ledger.AddResources(a.Seat, a.Get)
	return nil
}

func (c *tradePortCmd) revert(g *Game) error {
	a := c.action.(TradePort)
	if err := g.ledger.RemoveResources(a.Seat, a.Get); err != nil {
		return err
	}
	g.ledger.AddResources(a.Seat, a.Give)
	c.restore(g)
	return nil
}

func (c *tradePortCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// tradePlayerCmd swaps cards between two seats.
type tradePlayerCmd struct {
	baseCmd
}

func (c *tradePlayerCmd) apply(g *Game) error {
	a := c.action.(TradePlayer)
	c.snapshot(g)
	if err := g.ledger.RemoveResources(a.Seat, a.Give); err != nil {
		return err
	}
	if err := g.ledger.RemoveResources(a.Partner, a.Get); err != nil {
		g.ledger.AddResources(a.Seat, a.Give)
		return err
	}
	g.ledger.AddResources(a.Seat, a.Get)
	g.ledger.AddResources(a.Partner, a.Give)
	return nil
}

func (c *tradePlayerCmd) revert(g *Game) error {
	a := c.action.(TradePlayer)
	if err := g.ledger.RemoveResources(a.Seat, a.Get); err != nil {
		return err
	}
	if err := g.ledger.RemoveResources(a.Partner, a.Give); err != nil {
		return err
	}
	g.ledger.AddResources(a.Seat, a.Give)
	g.ledger.AddResources(a.Partner, a.Get)
	c.restore(g)
	return nil
}

func (c *tradePlayerCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// buyDevCmd draws the top of the dev deck. The deck order is fixed at game
// start, and revert pushes the card back, so a redo draws the same card.
type buyDevCmd struct {
	baseCmd
	card DevCard
}

func (c *buyDevCmd) apply(g *Game) error {
	a := c.action.(BuyDevCard)
	c.snapshot(g)
	if err := g.ledger.RemoveResources(a.Seat, DevCardCost); err != nil {
		return err
	}
	card, err := g.popDevCard()
	if err != nil {
		g.ledger.AddResources(a.Seat, DevCardCost)
		return err
	}
	c.card = card
	g.ledger.GainDevCard(a.Seat, card)
	return nil
}

func (c *buyDevCmd) revert(g *Game) error {
	a := c.action.(BuyDevCard)
	if err := g.ledger.SpendDevCard(a.Seat, c.card); err != nil {
		return err
	}
	g.pushDevCard(c.card)
	g.ledger.AddResources(a.Seat, DevCardCost)
	c.restore(g)
	return nil
}

func (c *buyDevCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// playKnightCmd spends a knight and opens the robber/steal chain.
type playKnightCmd struct {
	baseCmd
}

func (c *playKnightCmd) apply(g *Game) error {
	a := c.action.(PlayKnight)
	c.snapshot(g)
	if err := g.ledger.SpendDevCard(a.Seat, DevKnight); err != nil {
		return err
	}
	g.knights[a.Seat]++
	g.devPlayed = true
	g.robberViaKnight = true
	g.phase = PhaseMoveRobber
	return nil
}

func (c *playKnightCmd) revert(g *Game) error {
	a := c.action.(PlayKnight)
	g.ledger.GainDevCard(a.Seat, DevKnight)
	g.knights[a.Seat]--
	c.restore(g)
	return nil
}

func (c *playKnightCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// playMonopolyCmd takes every card of one resource from the other seats.
type playMonopolyCmd struct {
	baseCmd
	taken map[board.Seat]int
}

func (c *playMonopolyCmd) apply(g *Game) error {
	a := c.action.(PlayMonopoly)
	c.snapshot(g)
	if err := g.ledger.SpendDevCard(a.Seat, DevMonopoly); err != nil {
		return err
	}
	g.devPlayed = true

	c.taken = make(map[board.Seat]int)
	for _, p := range g.players {
		if p.Seat == a.Seat {
			continue
		}
		n := g.ledger.Hand(p.Seat)[a.Resource]
		if n == 0 {
			continue
		}
		if err := g.ledger.RemoveResources(p.Seat, Hand{a.Resource: n}); err != nil {
			return err
		}
		g.ledger.AddResources(a.Seat, Hand{a.Resource: n})
		c.taken[p.Seat] = n
	}
	return nil
}

func (c *playMonopolyCmd) revert(g *Game) error {
	a := c.action.(PlayMonopoly)
	for s, n := range c.taken {
		if err := g.ledger.RemoveResources(a.Seat, Hand{a.Resource: n}); err != nil {
			return err
		}
		g.ledger.AddResources(s, Hand{a.Resource: n})
	}
	g.ledger.GainDevCard(a.Seat, DevMonopoly)
	c.restore(g)
	return nil
}

func (c *playMonopolyCmd) commit(g *Game) Commit {
	total := 0
	for _, n := range c.taken {
		total += n
	}
	return c.commitWith(g, map[string]any{"total": total})
}

// playYearOfPlentyCmd takes two free cards from the bank.
type playYearOfPlentyCmd struct {
	baseCmd
}

func yopHand(a PlayYearOfPlenty) Hand {
	h := make(Hand)
	h[a.First]++
	h[a.Second]++
	return h
}

func (c *playYearOfPlentyCmd) apply(g *Game) error {
	a := c.action.(PlayYearOfPlenty)
	c.snapshot(g)
	if err := g.ledger.SpendDevCard(a.Seat, DevYearOfPlenty); err != nil {
		return err
	}
	g.devPlayed = true
	g.ledger.AddResources(a.Seat, yopHand(a))
	return nil
}

func (c *playYearOfPlentyCmd) revert(g *Game) error {
	a := c.action.(PlayYearOfPlenty)
	if err := g.ledger.RemoveResources(a.Seat, yopHand(a)); err != nil {
		return err
	}
	g.ledger.GainDevCard(a.Seat, DevYearOfPlenty)
	c.restore(g)
	return nil
}

func (c *playYearOfPlentyCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// playRoadBuilderCmd places two free roads.
type playRoadBuilderCmd struct {
	baseCmd
}

func (c *playRoadBuilderCmd) apply(g *Game) error {
	a := c.action.(PlayRoadBuilder)
	c.snapshot(g)
	if err := g.ledger.SpendDevCard(a.Seat, DevRoadBuilder); err != nil {
		return err
	}
	g.devPlayed = true
	for _, e := range []board.Edge{a.EdgeA, a.EdgeB} {
		if err := g.ledger.DecrementInventory(a.Seat, board.Road); err != nil {
			return err
		}
		if err := g.board.PlaceRoad(e, board.Piece{Kind: board.Road, Owner: a.Seat}); err != nil {
			return err
		}
	}
	return nil
}

func (c *playRoadBuilderCmd) revert(g *Game) error {
	a := c.action.(PlayRoadBuilder)
	for _, e := range []board.Edge{a.EdgeB, a.EdgeA} {
		if _, err := g.board.RemoveRoad(e); err != nil {
			return err
		}
		if err := g.ledger.IncrementInventory(a.Seat, board.Road); err != nil {
			return err
		}
	}
	g.ledger.GainDevCard(a.Seat, DevRoadBuilder)
	c.restore(g)
	return nil
}

func (c *playRoadBuilderCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// playVictoryPointCmd reveals a victory point card. Revealed cards count
// toward the win threshold; held ones do not.
type playVictoryPointCmd struct {
	baseCmd
}

func (c *playVictoryPointCmd) apply(g *Game) error {
	a := c.action.(PlayVictoryPoint)
	c.snapshot(g)
	if err := g.ledger.SpendDevCard(a.Seat, DevVictoryPoint); err != nil {
		return err
	}
	g.vpRevealed[a.Seat]++
	g.checkWin(a.Seat)
	return nil
}

func (c *playVictoryPointCmd) revert(g *Game) error {
	a := c.action.(PlayVictoryPoint)
	g.vpRevealed[a.Seat]--
	g.ledger.GainDevCard(a.Seat, DevVictoryPoint)
	c.restore(g)
	return nil
}

func (c *playVictoryPointCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// endTurnCmd passes play to the next seat.
type endTurnCmd struct {
	baseCmd
}

func (c *endTurnCmd) apply(g *Game) error {
	c.snapshot(g)
	g.cur = (g.cur + 1) % len(g.players)
	g.turn++
	g.lastRoll = 0
	g.devPlayed = false
	g.phase = PhaseTurnStart
	return nil
}

func (c *endTurnCmd) revert(g *Game) error {
	c.restore(g)
	return nil
}

func (c *endTurnCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}

// endGameCmd closes the game with the current player as winner.
type endGameCmd struct {
	baseCmd
}

func (c *endGameCmd) apply(g *Game) error {
	c.snapshot(g)
	g.phase = PhaseGameOver
	return nil
}

func (c *endGameCmd) revert(g *Game) error {
	c.restore(g)
	return nil
}

func (c *endGameCmd) commit(g *Game) Commit {
	return c.commitWith(g, nil)
}
