package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brooksandrew/catan-spectator/internal/board"
)

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.Build(board.DefaultConfig(), nil)
	require.NoError(t, err)
	return b
}

func threePlayers() []Player {
	return []Player{
		{Seat: 1, Name: "yurick", Color: "green"},
		{Seat: 2, Name: "josh", Color: "blue"},
		{Seat: 3, Name: "zach", Color: "orange"},
	}
}

func startedGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g, err := NewGame(testBoard(t), threePlayers(), opts)
	require.NoError(t, err)
	require.NoError(t, g.Start())
	return g
}

// firstLegalNode scans for a node the validator accepts for the seat's
// settlement.
func firstLegalNode(t *testing.T, g *Game, s board.Seat) board.Node {
	t.Helper()
	for n := board.Node(0); int(n) < g.Board().Grid().NumNodes(); n++ {
		if g.Validate(PlaceSettlement{Seat: s, Node: n}) == nil {
			return n
		}
	}
	t.Fatal("no legal settlement node left")
	return 0
}

// placePair plays the cursor player's free settlement and road.
func placePair(t *testing.T, g *Game) board.Node {
	t.Helper()
	s := g.CurrentPlayer().Seat
	n := firstLegalNode(t, g, s)
	_, err := g.Apply(PlaceSettlement{Seat: s, Node: n})
	require.NoError(t, err)
	e := g.Board().Grid().EdgesAt(n)[0]
	_, err = g.Apply(PlaceRoad{Seat: s, Edge: e})
	require.NoError(t, err)
	return n
}

func TestPregameSnakeOrder(t *testing.T) {
	g := startedGame(t, Options{})
	require.Equal(t, PhasePregameSettlement, g.Phase())

	wantSeats := []board.Seat{1, 2, 3, 3, 2, 1}
	for i, want := range wantSeats {
		assert.Equal(t, want, g.CurrentPlayer().Seat, "placement %d", i)
		placePair(t, g)
	}

	assert.Equal(t, PhaseTurnStart, g.Phase())
	assert.Equal(t, board.Seat(1), g.CurrentPlayer().Seat)
}

func TestPregameRejectsOutOfTurnPlacement(t *testing.T) {
	g := startedGame(t, Options{})
	// A node the cursor player could legally take, claimed by seat 2.
	n := firstLegalNode(t, g, 1)
	_, err := g.Apply(PlaceSettlement{Seat: 2, Node: n})
	assert.ErrorIs(t, err, ErrWrongPlayer)
}

func TestPregameSecondSettlementYields(t *testing.T) {
	g := startedGame(t, Options{})
	// First round: no resources.
	for i := 0; i < 3; i++ {
		placePair(t, g)
	}
	for _, p := range g.Players() {
		assert.Zero(t, g.HandOf(p.Seat).Total())
	}

	// Second round: one card per adjacent producing tile.
	s := g.CurrentPlayer().Seat
	n := placePair(t, g)
	want := 0
	for _, tile := range g.Board().Grid().TilesTouching(n) {
		if g.Board().Terrain(tile) != board.Desert {
			want++
		}
	}
	assert.Equal(t, want, g.HandOf(s).Total())
}

func TestDistanceRule(t *testing.T) {
	g := startedGame(t, Options{})
	n := placePair(t, g) // seat 1's settlement and road

	adj := g.Board().Grid().AdjacentNodes(n)
	_, err := g.Apply(PlaceSettlement{Seat: 2, Node: adj[0]})
	assert.ErrorIs(t, err, ErrDistanceRuleViolation)

	_, err = g.Apply(PlaceSettlement{Seat: 2, Node: n})
	assert.ErrorIs(t, err, board.ErrOccupiedSlot)
}

func TestRollSevenDiscardChain(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	require.Equal(t, PhaseTurnStart, g.Phase())

	g.ledger.AddResources(2, Hand{ResWood: 5, ResBrick: 4})
	MockDice([]int{3, 4})
	defer ResetMockDice()

	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)
	require.Equal(t, PhaseDiscard, g.Phase())
	assert.Equal(t, map[board.Seat]int{2: 4}, g.PendingDiscards())

	// A nine-card hand discards exactly four, not three or five.
	_, err = g.Apply(Discard{Seat: 2, Cards: Hand{ResWood: 3}})
	assert.Error(t, err)
	_, err = g.Apply(Discard{Seat: 1, Cards: Hand{ResWood: 4}})
	assert.ErrorIs(t, err, ErrWrongPlayer)

	_, err = g.Apply(Discard{Seat: 2, Cards: Hand{ResWood: 2, ResBrick: 2}})
	require.NoError(t, err)
	assert.Equal(t, PhaseMoveRobber, g.Phase())
	assert.Equal(t, 5, g.HandOf(2).Total())
}

func TestRobberMustMove(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 4})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)
	require.Equal(t, PhaseMoveRobber, g.Phase())

	stay := g.Board().Robber()
	_, err = g.Apply(MoveRobber{Seat: 1, Tile: stay})
	assert.Error(t, err)

	_, err = g.Apply(MoveRobber{Seat: 1, Tile: 5})
	require.NoError(t, err)
	assert.Equal(t, PhaseSteal, g.Phase())
}

func TestStealFromNoOne(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 4})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)
	_, err = g.Apply(MoveRobber{Seat: 1, Tile: 5})
	require.NoError(t, err)

	before := make(map[board.Seat]int)
	for _, p := range g.Players() {
		before[p.Seat] = g.HandOf(p.Seat).Total()
	}

	_, err = g.Apply(Steal{Seat: 1, Victim: 0})
	require.NoError(t, err)
	assert.Equal(t, PhaseTurnMain, g.Phase())
	for _, p := range g.Players() {
		assert.Equal(t, before[p.Seat], g.HandOf(p.Seat).Total())
	}
}

func TestStealTransfersOneCard(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 4})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)
	_, err = g.Apply(MoveRobber{Seat: 1, Tile: 5})
	require.NoError(t, err)

	victimNode := g.Board().Grid().NodesOfTile(5)[0]
	require.NoError(t, g.board.PlaceNodePiece(victimNode, board.Piece{Kind: board.Settlement, Owner: 2}))
	g.ledger.AddResources(2, Hand{ResOre: 1})

	// Seat 3 has no building on the tile.
	_, err = g.Apply(Steal{Seat: 1, Victim: 3})
	assert.ErrorIs(t, err, ErrNoEligibleVictim)

	_, err = g.Apply(Steal{Seat: 1, Victim: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, g.HandOf(1)[ResOre])
	assert.Zero(t, g.HandOf(2).Total())
}

func TestStealResolvesCardIntoCommit(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 4, 1})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)
	_, err = g.Apply(MoveRobber{Seat: 1, Tile: 5})
	require.NoError(t, err)

	victimNode := g.Board().Grid().NodesOfTile(5)[0]
	require.NoError(t, g.board.PlaceNodePiece(victimNode, board.Piece{Kind: board.Settlement, Owner: 2}))
	g.ledger.AddResources(2, Hand{ResWood: 1, ResOre: 1})

	// Pick index 1 of the sorted hand [wood, ore].
	c, err := g.Apply(Steal{Seat: 1, Victim: 2})
	require.NoError(t, err)
	got, ok := c.Action.(Steal)
	require.True(t, ok)
	assert.Equal(t, ResOre, got.Stolen)
	assert.Equal(t, 1, g.HandOf(1)[ResOre])
	assert.Equal(t, Hand{ResWood: 1}, g.HandOf(2))
}

func TestStealHonorsRecordedCard(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 4, 0})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)
	_, err = g.Apply(MoveRobber{Seat: 1, Tile: 5})
	require.NoError(t, err)

	victimNode := g.Board().Grid().NodesOfTile(5)[0]
	require.NoError(t, g.board.PlaceNodePiece(victimNode, board.Piece{Kind: board.Settlement, Owner: 2}))
	g.ledger.AddResources(2, Hand{ResWood: 1, ResOre: 1})

	// A card the victim does not hold is rejected, nothing moves.
	_, err = g.Apply(Steal{Seat: 1, Victim: 2, Stolen: ResBrick})
	assert.ErrorIs(t, err, ErrInsufficientResources)
	assert.Equal(t, 2, g.HandOf(2).Total())

	// A pre-resolved card moves as named; the pick queue is not consulted.
	_, err = g.Apply(Steal{Seat: 1, Victim: 2, Stolen: ResOre})
	require.NoError(t, err)
	assert.Equal(t, 1, g.HandOf(1)[ResOre])
	assert.Equal(t, Hand{ResWood: 1}, g.HandOf(2))
}

func TestPortTradeRatios(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 3})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)
	require.Equal(t, PhaseTurnMain, g.Phase())

	g.ledger.AddResources(1, Hand{ResWood: 4})

	// No port owned: only 4:1 is available.
	_, err = g.Apply(TradePort{Seat: 1, Give: Hand{ResWood: 3}, Get: Hand{ResOre: 1}, Port: board.PortAny3})
	assert.ErrorIs(t, err, ErrInvalidTradeRatio)

	_, err = g.Apply(TradePort{Seat: 1, Give: Hand{ResWood: 4}, Get: Hand{ResOre: 2}, Port: board.PortAny4})
	assert.ErrorIs(t, err, ErrInvalidTradeRatio)

	_, err = g.Apply(TradePort{Seat: 1, Give: Hand{}, Get: Hand{}, Port: board.PortAny4})
	assert.ErrorIs(t, err, ErrZeroAmountTrade)

	_, err = g.Apply(TradePort{Seat: 1, Give: Hand{ResWood: 4}, Get: Hand{ResOre: 1}, Port: board.PortAny4})
	require.NoError(t, err)
	assert.Equal(t, Hand{ResOre: 1}, g.HandOf(1))
}

func TestOwnedPortUnlocksRatio(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 3})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)

	ports := g.Board().Ports()
	require.NotEmpty(t, ports)
	var any3 board.Port
	for _, p := range ports {
		if p.Kind == board.PortAny3 {
			any3 = p
			break
		}
	}
	require.Equal(t, board.PortAny3, any3.Kind)
	portNode := g.Board().PortNodes(any3)[0]
	require.NoError(t, g.board.PlaceNodePiece(portNode, board.Piece{Kind: board.Settlement, Owner: 1}))

	g.ledger.AddResources(1, Hand{ResWood: 3})
	_, err = g.Apply(TradePort{Seat: 1, Give: Hand{ResWood: 3}, Get: Hand{ResOre: 1}, Port: board.PortAny3})
	require.NoError(t, err)
	assert.Equal(t, Hand{ResOre: 1}, g.HandOf(1))
}

func TestPlayerTrade(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 3})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)

	g.ledger.AddResources(1, Hand{ResWood: 2})
	g.ledger.AddResources(2, Hand{ResOre: 1})

	_, err = g.Apply(TradePlayer{Seat: 1, Partner: 2, Give: Hand{}, Get: Hand{ResOre: 1}})
	assert.ErrorIs(t, err, ErrZeroAmountTrade)

	_, err = g.Apply(TradePlayer{Seat: 1, Partner: 2, Give: Hand{ResWood: 2}, Get: Hand{ResOre: 2}})
	assert.ErrorIs(t, err, ErrInsufficientResources)

	_, err = g.Apply(TradePlayer{Seat: 1, Partner: 2, Give: Hand{ResWood: 2}, Get: Hand{ResOre: 1}})
	require.NoError(t, err)
	assert.Equal(t, Hand{ResOre: 1}, g.HandOf(1))
	assert.Equal(t, Hand{ResWood: 2}, g.HandOf(2))
}

func TestBuildRequiresConnectionAndResources(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 3})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)

	g.ledger.AddResources(1, Hand{ResWood: 5, ResBrick: 5, ResWheat: 5, ResSheep: 5})

	// No road network yet: every node is disconnected.
	n := g.Board().Grid().NodesOfTile(1)[0]
	_, err = g.Apply(PlaceSettlement{Seat: 1, Node: n})
	assert.ErrorIs(t, err, ErrNotConnectedToNetwork)

	// Seed a settlement and grow a road from it.
	require.NoError(t, g.board.PlaceNodePiece(n, board.Piece{Kind: board.Settlement, Owner: 1}))
	e := g.Board().Grid().EdgesAt(n)[0]
	_, err = g.Apply(PlaceRoad{Seat: 1, Edge: e})
	require.NoError(t, err)

	far := g.Board().Grid().NodesOfTile(19)[0]
	farEdge := g.Board().Grid().EdgesAt(far)[0]
	_, err = g.Apply(PlaceRoad{Seat: 1, Edge: farEdge})
	assert.ErrorIs(t, err, ErrNotConnectedToNetwork)
}

func TestCityUpgradeSwapsPieces(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 3})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)

	n := g.Board().Grid().NodesOfTile(1)[0]
	require.NoError(t, g.board.PlaceNodePiece(n, board.Piece{Kind: board.Settlement, Owner: 1}))
	require.NoError(t, g.ledger.DecrementInventory(1, board.Settlement))

	_, err = g.Apply(PlaceCity{Seat: 1, Node: n})
	assert.ErrorIs(t, err, ErrInsufficientResources)

	g.ledger.AddResources(1, Hand{ResWheat: 2, ResOre: 3})
	_, err = g.Apply(PlaceCity{Seat: 1, Node: n})
	require.NoError(t, err)

	p, ok := g.Board().PieceAt(n)
	require.True(t, ok)
	assert.Equal(t, board.City, p.Kind)
	// The settlement piece went back to the supply.
	assert.Equal(t, PieceLimits[board.Settlement], g.Remaining(1, board.Settlement))
	assert.Equal(t, PieceLimits[board.City]-1, g.Remaining(1, board.City))
}

func TestProductionPayout(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})

	// Tile 2 carries number 2 on the classic board.
	require.Equal(t, board.HexNumber(2), g.Board().Number(2))
	n := g.Board().Grid().NodesOfTile(2)[0]
	require.NoError(t, g.board.PlaceNodePiece(n, board.Piece{Kind: board.City, Owner: 2}))

	MockDice([]int{1, 1})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)

	res, ok := ResourceOf(g.Board().Terrain(2))
	require.True(t, ok)
	assert.Equal(t, 2, g.HandOf(2)[res], "a city pays double")
}

func TestRobberBlocksProduction(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	n := g.Board().Grid().NodesOfTile(2)[0]
	require.NoError(t, g.board.PlaceNodePiece(n, board.Piece{Kind: board.Settlement, Owner: 2}))
	g.board.MoveRobber(2)

	MockDice([]int{1, 1})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)
	assert.Zero(t, g.HandOf(2).Total())
}

func TestEndTurnRotates(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 3, 3, 3, 3, 3})
	defer ResetMockDice()

	for _, want := range []board.Seat{1, 2, 3} {
		assert.Equal(t, want, g.CurrentPlayer().Seat)
		_, err := g.Apply(RollDice{Seat: want})
		require.NoError(t, err)
		_, err = g.Apply(EndTurn{Seat: want})
		require.NoError(t, err)
	}
	assert.Equal(t, board.Seat(1), g.CurrentPlayer().Seat)
	assert.Equal(t, 4, g.Turn())
}

func TestWrongPhaseRejected(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})

	_, err := g.Apply(EndTurn{Seat: 1})
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, err = g.Apply(MoveRobber{Seat: 1, Tile: 5})
	assert.ErrorIs(t, err, ErrWrongPhase)
	_, err = g.Apply(RollDice{Seat: 2, Die1: 3, Die2: 3})
	assert.ErrorIs(t, err, ErrWrongPlayer)
}

func TestVictoryByPoints(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	MockDice([]int{3, 3})
	defer ResetMockDice()
	_, err := g.Apply(RollDice{Seat: 1})
	require.NoError(t, err)

	// Nine points on the board, the tenth settlement wins. Pieces are set
	// down directly; only the final build goes through the machine.
	nodes := []board.Node{}
	for n := board.Node(0); int(n) < g.Board().Grid().NumNodes() && len(nodes) < 6; n++ {
		ok := true
		for _, placed := range nodes {
			if placed == n {
				ok = false
			}
			for _, adj := range g.Board().Grid().AdjacentNodes(n) {
				if adj == placed {
					ok = false
				}
			}
		}
		if ok {
			nodes = append(nodes, n)
		}
	}
	require.Len(t, nodes, 6)
	for _, n := range nodes[:4] {
		require.NoError(t, g.board.PlaceNodePiece(n, board.Piece{Kind: board.City, Owner: 1}))
	}
	require.NoError(t, g.board.PlaceNodePiece(nodes[4], board.Piece{Kind: board.Settlement, Owner: 1}))
	require.Equal(t, 9, g.VictoryPoints(1))

	target := nodes[5]
	e := g.Board().Grid().EdgesAt(target)[0]
	require.NoError(t, g.board.PlaceRoad(e, board.Piece{Kind: board.Road, Owner: 1}))
	g.ledger.AddResources(1, SettlementCost)

	c, err := g.Apply(PlaceSettlement{Seat: 1, Node: target})
	require.NoError(t, err)
	assert.True(t, c.Won)
	assert.Equal(t, PhaseGameOver, g.Phase())

	_, err = g.Apply(EndTurn{Seat: 1})
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestEndGameDeclaresWinner(t *testing.T) {
	g := startedGame(t, Options{SkipPregame: true})
	c, err := g.Apply(EndGame{Seat: 1})
	require.NoError(t, err)
	assert.True(t, c.Won)
	assert.Equal(t, PhaseGameOver, g.Phase())
}

func TestPieceConservation(t *testing.T) {
	g := startedGame(t, Options{})
	for i := 0; i < 6; i++ {
		placePair(t, g)
	}
	for _, p := range g.Players() {
		onBoard := g.Board().NodeCount(p.Seat, board.Settlement)
		assert.Equal(t, PieceLimits[board.Settlement], onBoard+g.Remaining(p.Seat, board.Settlement))
		roads := g.Board().RoadCount(p.Seat)
		assert.Equal(t, PieceLimits[board.Road], roads+g.Remaining(p.Seat, board.Road))
	}
}
