package board

import (
	"errors"
	"fmt"
)

// ErrOccupiedSlot is returned when placing a piece on a node or edge that
// already holds one.
var ErrOccupiedSlot = errors.New("slot is already occupied")

// ErrEmptySlot is returned when removing a piece from a node or edge that
// holds none.
var ErrEmptySlot = errors.New("slot is empty")

// ErrBoardLocked is returned when a setup-only mutation is attempted after
// the board shape was frozen at game start.
var ErrBoardLocked = errors.New("board is locked")

// Seat identifies a player by turn position, 1 at the top-left and
// increasing clockwise.
type Seat int

// Terrain is the hex type of a tile.
type Terrain string

const (
	Wood   Terrain = "wood"
	Brick  Terrain = "brick"
	Wheat  Terrain = "wheat"
	Sheep  Terrain = "sheep"
	Ore    Terrain = "ore"
	Desert Terrain = "desert"
)

// Terrains lists all terrain kinds in cycle order.
var Terrains = []Terrain{Wood, Brick, Wheat, Sheep, Ore, Desert}

// HexNumber is the resource-yield number of a tile: 2..12 excluding 7, or
// NoNumber for the desert.
type HexNumber int

// NoNumber marks a tile that never yields (the desert).
const NoNumber HexNumber = 0

// HexNumbers lists the legal yield numbers in cycle order, NoNumber first.
var HexNumbers = []HexNumber{NoNumber, 2, 3, 4, 5, 6, 8, 9, 10, 11, 12}

// PortKind is a port's trade ratio. The resource kinds trade 2:1 for that
// resource only. PortAny4 exists only as the no-port fallback ratio and
// never appears on the board; PortNone marks an undecided port slot during
// setup and is dropped when the board locks.
type PortKind string

const (
	PortAny4  PortKind = "4:1"
	PortAny3  PortKind = "3:1"
	PortWood  PortKind = "wood"
	PortBrick PortKind = "brick"
	PortWheat PortKind = "wheat"
	PortSheep PortKind = "sheep"
	PortOre   PortKind = "ore"
	PortNone  PortKind = "none"
)

// PortKinds lists the kinds a board port may carry, in setup cycle order.
var PortKinds = []PortKind{PortNone, PortAny3, PortWood, PortBrick, PortWheat, PortSheep, PortOre}

// Port sits on a coastal edge of a border tile. Settlements on either
// endpoint of that edge may use the port's ratio.
type Port struct {
	Tile Tile
	Dir  Direction
	Kind PortKind
}

// PieceKind is a placeable piece type.
type PieceKind string

const (
	Road       PieceKind = "road"
	Settlement PieceKind = "settlement"
	City       PieceKind = "city"
)

// Piece is a placed piece with its owner.
type Piece struct {
	Kind  PieceKind
	Owner Seat
}

// Board is the mutable assignment of terrain, numbers, ports, pieces, and
// the robber onto a Grid. It checks slot occupancy only; legality of a move
// is the validator's job. All occupancy changes go through PlacePiece,
// RemovePiece, and MoveRobber so that every mutation has an exact inverse.
type Board struct {
	grid    *Grid
	terrain map[Tile]Terrain
	numbers map[Tile]HexNumber
	ports   []Port

	nodePieces map[Node]Piece
	edgePieces map[Edge]Piece
	robber     Tile

	locked bool
}

// NewBoard wraps a grid with empty occupancy. Terrain, numbers, and ports
// are filled in by the builder before the board locks.
func NewBoard(grid *Grid) *Board {
	return &Board{
		grid:       grid,
		terrain:    make(map[Tile]Terrain),
		numbers:    make(map[Tile]HexNumber),
		nodePieces: make(map[Node]Piece),
		edgePieces: make(map[Edge]Piece),
	}
}

// Grid exposes the read-only geometry index.
func (b *Board) Grid() *Grid { return b.grid }

// Lock freezes the board shape at game start. Undecided port slots are
// dropped, as in setup they only exist so the operator can cycle them.
func (b *Board) Lock() {
	b.locked = true
	kept := b.ports[:0]
	for _, p := range b.ports {
		if p.Kind != PortNone {
			kept = append(kept, p)
		}
	}
	b.ports = kept
}

// Locked reports whether the board shape is frozen.
func (b *Board) Locked() bool { return b.locked }

// Terrain returns the terrain of tile t.
func (b *Board) Terrain(t Tile) Terrain {
	b.grid.checkTile(t)
	return b.terrain[t]
}

// Number returns the yield number of tile t.
func (b *Board) Number(t Tile) HexNumber {
	b.grid.checkTile(t)
	return b.numbers[t]
}

// Ports returns the board's ports.
func (b *Board) Ports() []Port { return b.ports }

// PortNodes returns the two nodes that may use port p.
func (b *Board) PortNodes(p Port) [2]Node {
	e := b.grid.EdgeInDirection(p.Tile, p.Dir)
	return b.grid.NodesOfEdge(e)
}

// Robber returns the tile the robber currently occupies.
func (b *Board) Robber() Tile { return b.robber }

// PieceAt returns the piece occupying node n, if any.
func (b *Board) PieceAt(n Node) (Piece, bool) {
	b.grid.checkNode(n)
	p, ok := b.nodePieces[n]
	return p, ok
}

// RoadAt returns the road occupying edge e, if any.
func (b *Board) RoadAt(e Edge) (Piece, bool) {
	b.grid.checkEdge(e)
	p, ok := b.edgePieces[e]
	return p, ok
}

// PlaceNodePiece puts a settlement or city on node n.
func (b *Board) PlaceNodePiece(n Node, p Piece) error {
	b.grid.checkNode(n)
	if _, ok := b.nodePieces[n]; ok {
		return fmt.Errorf("place %s on node %d: %w", p.Kind, n, ErrOccupiedSlot)
	}
	b.nodePieces[n] = p
	return nil
}

// RemoveNodePiece takes the piece off node n and returns it.
func (b *Board) RemoveNodePiece(n Node) (Piece, error) {
	b.grid.checkNode(n)
	p, ok := b.nodePieces[n]
	if !ok {
		return Piece{}, fmt.Errorf("remove piece from node %d: %w", n, ErrEmptySlot)
	}
	delete(b.nodePieces, n)
	return p, nil
}

// PlaceRoad puts a road on edge e.
func (b *Board) PlaceRoad(e Edge, p Piece) error {
	b.grid.checkEdge(e)
	if _, ok := b.edgePieces[e]; ok {
		return fmt.Errorf("place road on edge %d: %w", e, ErrOccupiedSlot)
	}
	b.edgePieces[e] = p
	return nil
}

// RemoveRoad takes the road off edge e and returns it.
func (b *Board) RemoveRoad(e Edge) (Piece, error) {
	b.grid.checkEdge(e)
	p, ok := b.edgePieces[e]
	if !ok {
		return Piece{}, fmt.Errorf("remove road from edge %d: %w", e, ErrEmptySlot)
	}
	delete(b.edgePieces, e)
	return p, nil
}

// MoveRobber relocates the robber and returns the prior tile so the move
// can be undone. It succeeds unconditionally; whether the destination is
// legal is the validator's decision.
func (b *Board) MoveRobber(t Tile) Tile {
	b.grid.checkTile(t)
	prev := b.robber
	b.robber = t
	return prev
}

// SetTerrain assigns terrain during setup.
func (b *Board) SetTerrain(t Tile, terrain Terrain) error {
	b.grid.checkTile(t)
	if b.locked {
		return fmt.Errorf("set terrain of tile %d: %w", t, ErrBoardLocked)
	}
	b.terrain[t] = terrain
	return nil
}

// SetNumber assigns a yield number during setup.
func (b *Board) SetNumber(t Tile, n HexNumber) error {
	b.grid.checkTile(t)
	if b.locked {
		return fmt.Errorf("set number of tile %d: %w", t, ErrBoardLocked)
	}
	b.numbers[t] = n
	return nil
}

// PortAt finds the port on tile t side d, creating an undecided slot if
// none exists yet. Setup-only.
func (b *Board) PortAt(t Tile, d Direction) *Port {
	b.grid.checkTile(t)
	for i := range b.ports {
		if b.ports[i].Tile == t && b.ports[i].Dir == d {
			return &b.ports[i]
		}
	}
	b.ports = append(b.ports, Port{Tile: t, Dir: d, Kind: PortNone})
	return &b.ports[len(b.ports)-1]
}

// CycleTerrain steps tile t to the next terrain kind. Setup-only; the
// operator clicks through kinds until the physical board matches.
func (b *Board) CycleTerrain(t Tile) error {
	if b.locked {
		return fmt.Errorf("cycle terrain of tile %d: %w", t, ErrBoardLocked)
	}
	cur := b.Terrain(t)
	for i, k := range Terrains {
		if k == cur {
			b.terrain[t] = Terrains[(i+1)%len(Terrains)]
			return nil
		}
	}
	b.terrain[t] = Terrains[0]
	return nil
}

// CycleNumber steps tile t to the next yield number. Setup-only.
func (b *Board) CycleNumber(t Tile) error {
	if b.locked {
		return fmt.Errorf("cycle number of tile %d: %w", t, ErrBoardLocked)
	}
	cur := b.Number(t)
	for i, n := range HexNumbers {
		if n == cur {
			b.numbers[t] = HexNumbers[(i+1)%len(HexNumbers)]
			return nil
		}
	}
	b.numbers[t] = HexNumbers[0]
	return nil
}

// CyclePort steps the port on tile t side d to the next kind. Setup-only.
func (b *Board) CyclePort(t Tile, d Direction) error {
	if b.locked {
		return fmt.Errorf("cycle port on tile %d %s: %w", t, d, ErrBoardLocked)
	}
	p := b.PortAt(t, d)
	for i, k := range PortKinds {
		if k == p.Kind {
			p.Kind = PortKinds[(i+1)%len(PortKinds)]
			return nil
		}
	}
	p.Kind = PortKinds[0]
	return nil
}

// PiecesOn returns the pieces occupying the corners of tile t. Used for
// resource distribution and steal eligibility.
func (b *Board) PiecesOn(t Tile) map[Node]Piece {
	found := make(map[Node]Piece)
	for _, n := range b.grid.NodesOfTile(t) {
		if p, ok := b.nodePieces[n]; ok {
			found[n] = p
		}
	}
	return found
}

// NodeCount returns how many node pieces of kind k seat s has placed.
func (b *Board) NodeCount(s Seat, k PieceKind) int {
	count := 0
	for _, p := range b.nodePieces {
		if p.Owner == s && p.Kind == k {
			count++
		}
	}
	return count
}

// RoadCount returns how many roads seat s has placed.
func (b *Board) RoadCount(s Seat) int {
	count := 0
	for _, p := range b.edgePieces {
		if p.Owner == s {
			count++
		}
	}
	return count
}

// HasBuildingAt reports whether seat s owns a settlement or city on node n.
func (b *Board) HasBuildingAt(s Seat, n Node) bool {
	p, ok := b.nodePieces[n]
	return ok && p.Owner == s
}

// ConnectedToNetwork reports whether either endpoint of edge e carries seat
// s's road network: an own road on an incident edge, or an own settlement
// or city on the endpoint itself.
func (b *Board) ConnectedToNetwork(e Edge, s Seat) bool {
	for _, n := range b.grid.NodesOfEdge(e) {
		if b.HasBuildingAt(s, n) {
			return true
		}
		for _, other := range b.grid.EdgesAt(n) {
			if other == e {
				continue
			}
			if p, ok := b.edgePieces[other]; ok && p.Owner == s {
				return true
			}
		}
	}
	return false
}
