package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brooksandrew/catan-spectator/internal/board"
)

// Game is the live state machine for one match. All methods are for a
// single goroutine; the session layer serializes operator input before it
// gets here.
type Game struct {
	board   *board.Board
	players []Player
	ledger  *Ledger
	rules   Rules
	emitter Emitter
	undo    *UndoManager

	phase    Phase
	cur      int // index into players
	turn     int
	lastRoll int

	devPlayed       bool
	robberViaKnight bool
	pregame         pregameState
	pendingDiscards map[board.Seat]int

	devDeck    []DevCard
	vpRevealed map[board.Seat]int
	knights    map[board.Seat]int
	seed       int64
}

// Options tune game construction. The zero value plays a standard game
// with pregame placement and no log sink.
type Options struct {
	// Pregame disabled means play starts directly at the first turn, for
	// mid-game board reconstructions.
	SkipPregame bool
	// Rules defaults to StandardRules.
	Rules Rules
	// Emitter defaults to a no-op sink.
	Emitter Emitter
	// Seed fixes the dev deck shuffle; zero means a time seed.
	Seed int64
}

// NewGame assembles a game over a prepared board and roster. The board is
// locked on Start, not here, so setup edits stay possible until then.
func NewGame(b *board.Board, players []Player, opts Options) (*Game, error) {
	if len(players) < 2 || len(players) > 4 {
		return nil, fmt.Errorf("need 2 to 4 players, got %d", len(players))
	}
	players = sortPlayers(players)
	seen := make(map[board.Seat]bool)
	for _, p := range players {
		if seen[p.Seat] {
			return nil, fmt.Errorf("duplicate seat %d", p.Seat)
		}
		seen[p.Seat] = true
	}
	if opts.Rules == nil {
		opts.Rules = StandardRules()
	}
	if opts.Emitter == nil {
		opts.Emitter = nopEmitter{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		board:      b,
		players:    players,
		ledger:     NewLedger(seatsOf(players)),
		rules:      opts.Rules,
		emitter:    opts.Emitter,
		undo:       NewUndoManager(),
		phase:      PhaseNotStarted,
		devDeck:    shuffledDevDeck(rand.New(rand.NewSource(seed))),
		vpRevealed: make(map[board.Seat]int),
		knights:    make(map[board.Seat]int),
		seed:       seed,
	}
	g.pregame.enabled = !opts.SkipPregame
	return g, nil
}

func shuffledDevDeck(rng *rand.Rand) []DevCard {
	var deck []DevCard
	for _, card := range []DevCard{DevKnight, DevVictoryPoint, DevMonopoly, DevYearOfPlenty, DevRoadBuilder} {
		for i := 0; i < devDeckComposition[card]; i++ {
			deck = append(deck, card)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// Start locks the board, emits the log header, and enters either pregame
// placement or the first turn.
func (g *Game) Start() error {
	if g.phase != PhaseNotStarted {
		return fmt.Errorf("game already started: %w", ErrWrongPhase)
	}
	g.board.Lock()

	g.turn = 1
	g.cur = 0
	if g.pregame.enabled {
		g.phase = PhasePregameSettlement
		g.pregame.round = 0
		g.pregame.idx = 0
	} else {
		g.phase = PhaseTurnStart
	}

	info := StartInfo{
		Players: g.players,
		Ports:   g.board.Ports(),
		Pregame: g.pregame.enabled,
		Seed:    g.seed,
	}
	for t := board.Tile(1); t <= board.NumTiles; t++ {
		info.Terrain = append(info.Terrain, g.board.Terrain(t))
		info.Numbers = append(info.Numbers, g.board.Number(t))
	}
	g.emitter.GameStarted(info)
	return nil
}

// Apply validates and commits one action. The returned Commit is what was
// handed to the emitter; a non-nil error means nothing changed.
func (g *Game) Apply(a Action) (Commit, error) {
	a = g.resolveDice(a)
	if err := g.Validate(a); err != nil {
		return Commit{}, err
	}
	cmd := g.buildCommand(a)
	if err := g.undo.Do(g, cmd); err != nil {
		return Commit{}, err
	}
	c := cmd.commit(g)
	g.emitter.ActionCommitted(c)
	if g.phase == PhaseGameOver {
		g.emitter.GameEnded(c.Actor)
	}
	return c, nil
}

// resolveDice fills in a zero-valued roll so the committed action, and
// therefore any redo, carries the actual dice.
func (g *Game) resolveDice(a Action) Action {
	roll, ok := a.(RollDice)
	if !ok || roll.Die1 != 0 || roll.Die2 != 0 {
		return a
	}
	roll.Die1 = rollDie()
	roll.Die2 = rollDie()
	return roll
}

func (g *Game) buildCommand(a Action) Command {
	base := baseCmd{action: a}
	switch a.(type) {
	case PlaceSettlement:
		return &placeSettlementCmd{baseCmd: base}
	case PlaceCity:
		return &placeCityCmd{baseCmd: base}
	case PlaceRoad:
		return &placeRoadCmd{baseCmd: base}
	case RollDice:
		return &rollCmd{baseCmd: base}
	case Discard:
		return &discardCmd{baseCmd: base}
	case MoveRobber:
		return &moveRobberCmd{baseCmd: base}
	case Steal:
		return &stealCmd{baseCmd: base}
	case TradePort:
		return &tradePortCmd{baseCmd: base}
	case TradePlayer:
		return &tradePlayerCmd{baseCmd: base}
	case BuyDevCard:
		return &buyDevCmd{baseCmd: base}
	case PlayKnight:
		return &playKnightCmd{baseCmd: base}
	case PlayMonopoly:
		return &playMonopolyCmd{baseCmd: base}
	case PlayYearOfPlenty:
		return &playYearOfPlentyCmd{baseCmd: base}
	case PlayRoadBuilder:
		return &playRoadBuilderCmd{baseCmd: base}
	case PlayVictoryPoint:
		return &playVictoryPointCmd{baseCmd: base}
	case EndTurn:
		return &endTurnCmd{baseCmd: base}
	case EndGame:
		return &endGameCmd{baseCmd: base}
	}
	panic(fmt.Sprintf("game: no command for action kind %q", a.Kind()))
}

// Undo retracts the most recent committed action.
func (g *Game) Undo() (Action, error) {
	cmd, err := g.undo.Undo(g)
	if err != nil {
		return nil, err
	}
	g.emitter.ActionRetracted()
	return cmd.Action(), nil
}

// Redo re-commits the most recently undone action with its original
// outcome, stolen cards and drawn dev cards included.
func (g *Game) Redo() (Commit, error) {
	cmd, err := g.undo.Redo(g)
	if err != nil {
		return Commit{}, err
	}
	c := cmd.commit(g)
	g.emitter.ActionCommitted(c)
	if g.phase == PhaseGameOver {
		g.emitter.GameEnded(c.Actor)
	}
	return c, nil
}

// CanUndo reports whether an action can be retracted.
func (g *Game) CanUndo() bool { return g.undo.CanUndo() }

// CanRedo reports whether a retracted action can be re-committed.
func (g *Game) CanRedo() bool { return g.undo.CanRedo() }

// Phase returns the active phase.
func (g *Game) Phase() Phase { return g.phase }

// Turn returns the 1-based turn counter.
func (g *Game) Turn() int { return g.turn }

// LastRoll returns the current turn's dice total, zero before the roll.
func (g *Game) LastRoll() int { return g.lastRoll }

// Board exposes the playing board.
func (g *Game) Board() *board.Board { return g.board }

// Players returns the roster in seat order.
func (g *Game) Players() []Player {
	out := make([]Player, len(g.players))
	copy(out, g.players)
	return out
}

// CurrentPlayer is the player whose turn it is. During pregame it is the
// placement cursor player.
func (g *Game) CurrentPlayer() Player {
	switch g.phase {
	case PhasePregameSettlement, PhasePregameRoad:
		return g.players[g.pregame.idx]
	}
	return g.players[g.cur]
}

// PlayerBySeat looks a player up by seat.
func (g *Game) PlayerBySeat(s board.Seat) (Player, bool) {
	for _, p := range g.players {
		if p.Seat == s {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerByColor looks a player up by normalized color name.
func (g *Game) PlayerByColor(color string) (Player, bool) {
	for _, p := range g.players {
		if p.Color == color {
			return p, true
		}
	}
	return Player{}, false
}

func (g *Game) mustPlayer(s board.Seat) Player {
	p, ok := g.PlayerBySeat(s)
	if !ok {
		panic(fmt.Sprintf("game: no player in seat %d", s))
	}
	return p
}

// HandOf returns a copy of a seat's resource hand.
func (g *Game) HandOf(s board.Seat) Hand { return g.ledger.Hand(s) }

// Remaining returns a seat's remaining supply of a piece kind.
func (g *Game) Remaining(s board.Seat, k board.PieceKind) int {
	return g.ledger.Remaining(s, k)
}

// DevHeld returns how many dev cards of kind a seat holds, unplayed.
func (g *Game) DevHeld(s board.Seat, card DevCard) int {
	return g.ledger.DevCount(s, card)
}

// KnightsPlayed returns how many knights a seat has played.
func (g *Game) KnightsPlayed(s board.Seat) int { return g.knights[s] }

// DevDeckSize returns how many dev cards remain undrawn.
func (g *Game) DevDeckSize() int { return len(g.devDeck) }

// PendingDiscards maps each seat still owing a discard to its quota.
func (g *Game) PendingDiscards() map[board.Seat]int {
	out := make(map[board.Seat]int, len(g.pendingDiscards))
	for s, n := range g.pendingDiscards {
		out[s] = n
	}
	return out
}

// VictoryPoints is derived, never stored: settlements on the board, twice
// the cities, plus revealed victory point cards.
func (g *Game) VictoryPoints(s board.Seat) int {
	return g.board.NodeCount(s, board.Settlement) +
		2*g.board.NodeCount(s, board.City) +
		g.vpRevealed[s]
}

// StealableSeats lists the seats a steal may target: a building on the
// robber's tile and at least one card in hand, the thief excluded.
func (g *Game) StealableSeats() []board.Seat {
	thief := g.players[g.cur].Seat
	onTile := make(map[board.Seat]bool)
	for _, p := range g.board.PiecesOn(g.board.Robber()) {
		onTile[p.Owner] = true
	}
	var out []board.Seat
	for _, p := range g.players {
		if p.Seat == thief || !onTile[p.Seat] {
			continue
		}
		if g.ledger.HandSize(p.Seat) > 0 {
			out = append(out, p.Seat)
		}
	}
	return out
}

func (g *Game) checkWin(s board.Seat) {
	if g.VictoryPoints(s) >= g.rules.WinThreshold() {
		g.phase = PhaseGameOver
	}
}

// advancePregame moves the snake-order cursor after a pregame road: seats
// forward, then the last seat again, then backward to the first, who then
// opens the first turn.
func (g *Game) advancePregame() {
	if g.pregame.round == 0 {
		if g.pregame.idx == len(g.players)-1 {
			g.pregame.round = 1
		} else {
			g.pregame.idx++
		}
		g.phase = PhasePregameSettlement
		return
	}
	if g.pregame.idx == 0 {
		g.phase = PhaseTurnStart
		g.cur = 0
		g.turn = 1
		return
	}
	g.pregame.idx--
	g.phase = PhasePregameSettlement
}

// production computes every seat's resource payout for a non-7 roll: one
// card per settlement and two per city on each matching tile, the robber's
// tile excluded.
func (g *Game) production(total int) map[board.Seat]Hand {
	out := make(map[board.Seat]Hand)
	for t := board.Tile(1); t <= board.NumTiles; t++ {
		if int(g.board.Number(t)) != total || t == g.board.Robber() {
			continue
		}
		res, ok := ResourceOf(g.board.Terrain(t))
		if !ok {
			continue
		}
		for _, p := range g.board.PiecesOn(t) {
			n := 1
			if p.Kind == board.City {
				n = 2
			}
			if out[p.Owner] == nil {
				out[p.Owner] = make(Hand)
			}
			out[p.Owner][res] += n
		}
	}
	return out
}

// startingYield is the one-card-per-adjacent-tile grant for the second
// pregame settlement.
func (g *Game) startingYield(n board.Node) Hand {
	h := make(Hand)
	for _, t := range g.board.Grid().TilesTouching(n) {
		if res, ok := ResourceOf(g.board.Terrain(t)); ok {
			h[res]++
		}
	}
	return h
}

func (g *Game) popDevCard() (DevCard, error) {
	if len(g.devDeck) == 0 {
		return "", fmt.Errorf("dev deck exhausted: %w", ErrNoPiecesRemaining)
	}
	card := g.devDeck[len(g.devDeck)-1]
	g.devDeck = g.devDeck[:len(g.devDeck)-1]
	return card, nil
}

func (g *Game) pushDevCard(card DevCard) {
	g.devDeck = append(g.devDeck, card)
}
