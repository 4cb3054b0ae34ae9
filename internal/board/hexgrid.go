// Package board models the hex board: the static geometry of tiles, nodes,
// and edges, and the mutable assignment of terrain, numbers, ports, and
// placed pieces onto that geometry.
package board

import (
	"fmt"
	"sort"
)

// Tile identifies a hex on the board, numbered 1..19 row by row from the
// top-left, matching the classic 3-4-5-4-3 layout.
type Tile int

// Node identifies a corner where up to three tiles meet. Settlements and
// cities occupy nodes.
type Node int

// Edge identifies the border between two corners. Roads occupy edges.
type Edge int

// NumTiles is the tile count of the standard board (3+4+5+4+3).
const NumTiles = 19

// axial is a pointy-top hex coordinate. The third cube coordinate is
// implicit: s = -q - r.
type axial struct{ q, r int }

// hexDirs lists neighbor offsets clockwise starting at north-east. Corner i
// of a hex is the corner shared with neighbors hexDirs[i] and hexDirs[i+1].
var hexDirs = [6]axial{{1, -1}, {1, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, -1}}

// Direction names one of the six sides of a tile, in the same clockwise
// order as hexDirs.
type Direction int

const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

var dirNames = [6]string{"NE", "E", "SE", "SW", "W", "NW"}

func (d Direction) String() string {
	if d < 0 || d > 5 {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return dirNames[d]
}

// ParseDirection maps a direction name back to its constant.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range dirNames {
		if name == s {
			return Direction(i), true
		}
	}
	return 0, false
}

type cornerKey [3]axial

type borderKey [2]axial

// Grid is the static adjacency index of the board. It is built once and is
// read-only afterward; all queries are pure lookups. Out-of-range
// identifiers are programming errors and panic.
type Grid struct {
	tileCoords []axial
	coordTile  map[axial]Tile

	tileNodes [][6]Node
	tileEdges [][6]Edge

	nodeTiles [][]Tile
	nodeEdges [][]Edge
	nodeAdj   [][]Node

	edgeNodes [][2]Node
	edgeTiles [][]Tile
}

// NewGrid constructs the standard 19-tile topology: 54 nodes and 72 edges.
func NewGrid() *Grid {
	g := &Grid{coordTile: make(map[axial]Tile)}

	// Rows of 3, 4, 5, 4, 3 tiles, top to bottom.
	rows := []struct{ r, qMin, qMax int }{
		{-2, 0, 2},
		{-1, -1, 2},
		{0, -2, 2},
		{1, -2, 1},
		{2, -2, 0},
	}
	for _, row := range rows {
		for q := row.qMin; q <= row.qMax; q++ {
			c := axial{q, row.r}
			g.tileCoords = append(g.tileCoords, c)
			g.coordTile[c] = Tile(len(g.tileCoords))
		}
	}

	nodeIDs := make(map[cornerKey]Node)
	edgeIDs := make(map[borderKey]Edge)
	g.tileNodes = make([][6]Node, NumTiles)
	g.tileEdges = make([][6]Edge, NumTiles)

	cornerAt := func(h axial, i int) cornerKey {
		a := axial{h.q + hexDirs[i].q, h.r + hexDirs[i].r}
		b := axial{h.q + hexDirs[(i+1)%6].q, h.r + hexDirs[(i+1)%6].r}
		return sortedCorner(h, a, b)
	}

	for ti, h := range g.tileCoords {
		t := Tile(ti + 1)
		for i := 0; i < 6; i++ {
			key := cornerAt(h, i)
			n, ok := nodeIDs[key]
			if !ok {
				n = Node(len(g.nodeTiles))
				nodeIDs[key] = n
				g.nodeTiles = append(g.nodeTiles, nil)
			}
			g.tileNodes[ti][i] = n
			g.nodeTiles[n] = append(g.nodeTiles[n], t)
		}
		for i := 0; i < 6; i++ {
			nb := axial{h.q + hexDirs[i].q, h.r + hexDirs[i].r}
			key := sortedBorder(h, nb)
			e, ok := edgeIDs[key]
			if !ok {
				e = Edge(len(g.edgeNodes))
				edgeIDs[key] = e
				from := nodeIDs[cornerAt(h, (i+5)%6)]
				to := nodeIDs[cornerAt(h, i)]
				g.edgeNodes = append(g.edgeNodes, [2]Node{from, to})
				g.edgeTiles = append(g.edgeTiles, nil)
			}
			g.tileEdges[ti][i] = e
			g.edgeTiles[e] = append(g.edgeTiles[e], t)
		}
	}

	g.nodeEdges = make([][]Edge, len(g.nodeTiles))
	g.nodeAdj = make([][]Node, len(g.nodeTiles))
	for e, ends := range g.edgeNodes {
		a, b := ends[0], ends[1]
		g.nodeEdges[a] = append(g.nodeEdges[a], Edge(e))
		g.nodeEdges[b] = append(g.nodeEdges[b], Edge(e))
		g.nodeAdj[a] = append(g.nodeAdj[a], b)
		g.nodeAdj[b] = append(g.nodeAdj[b], a)
	}

	return g
}

func sortedCorner(a, b, c axial) cornerKey {
	k := cornerKey{a, b, c}
	sort.Slice(k[:], func(i, j int) bool {
		if k[i].q != k[j].q {
			return k[i].q < k[j].q
		}
		return k[i].r < k[j].r
	})
	return k
}

func sortedBorder(a, b axial) borderKey {
	if a.q > b.q || (a.q == b.q && a.r > b.r) {
		a, b = b, a
	}
	return borderKey{a, b}
}

// NumNodes reports how many distinct corners the board has.
func (g *Grid) NumNodes() int { return len(g.nodeTiles) }

// NumEdges reports how many distinct borders the board has.
func (g *Grid) NumEdges() int { return len(g.edgeNodes) }

// ValidTile reports whether t is a real tile identifier.
func (g *Grid) ValidTile(t Tile) bool { return t >= 1 && int(t) <= NumTiles }

// ValidNode reports whether n is a real node identifier.
func (g *Grid) ValidNode(n Node) bool { return n >= 0 && int(n) < len(g.nodeTiles) }

// ValidEdge reports whether e is a real edge identifier.
func (g *Grid) ValidEdge(e Edge) bool { return e >= 0 && int(e) < len(g.edgeNodes) }

func (g *Grid) checkTile(t Tile) {
	if !g.ValidTile(t) {
		panic(fmt.Sprintf("board: tile %d out of range", t))
	}
}

func (g *Grid) checkNode(n Node) {
	if !g.ValidNode(n) {
		panic(fmt.Sprintf("board: node %d out of range", n))
	}
}

func (g *Grid) checkEdge(e Edge) {
	if !g.ValidEdge(e) {
		panic(fmt.Sprintf("board: edge %d out of range", e))
	}
}

// TilesTouching returns the 1..3 tiles that meet at node n.
func (g *Grid) TilesTouching(n Node) []Tile {
	g.checkNode(n)
	return g.nodeTiles[n]
}

// NodesOfEdge returns the two endpoints of edge e.
func (g *Grid) NodesOfEdge(e Edge) [2]Node {
	g.checkEdge(e)
	return g.edgeNodes[e]
}

// TilesOfEdge returns the 1..2 tiles bordered by edge e.
func (g *Grid) TilesOfEdge(e Edge) []Tile {
	g.checkEdge(e)
	return g.edgeTiles[e]
}

// EdgesAt returns the 2..3 edges incident to node n.
func (g *Grid) EdgesAt(n Node) []Edge {
	g.checkNode(n)
	return g.nodeEdges[n]
}

// AdjacentNodes returns the distance-1 neighbors of node n. The distance
// rule forbids settlements on any node this returns.
func (g *Grid) AdjacentNodes(n Node) []Node {
	g.checkNode(n)
	return g.nodeAdj[n]
}

// NodesOfTile returns the six corners of tile t in clockwise order.
func (g *Grid) NodesOfTile(t Tile) [6]Node {
	g.checkTile(t)
	return g.tileNodes[t-1]
}

// EdgesOfTile returns the six borders of tile t in clockwise order, indexed
// by Direction.
func (g *Grid) EdgesOfTile(t Tile) [6]Edge {
	g.checkTile(t)
	return g.tileEdges[t-1]
}

// EdgeInDirection returns the border of tile t on side d.
func (g *Grid) EdgeInDirection(t Tile, d Direction) Edge {
	g.checkTile(t)
	return g.tileEdges[t-1][d]
}

// EdgeBetween finds the edge connecting nodes a and b, if they are adjacent.
func (g *Grid) EdgeBetween(a, b Node) (Edge, bool) {
	g.checkNode(a)
	g.checkNode(b)
	for _, e := range g.nodeEdges[a] {
		ends := g.edgeNodes[e]
		if ends[0] == b || ends[1] == b {
			return e, true
		}
	}
	return 0, false
}

// Coastal reports whether edge e lies on the outer rim of the board.
func (g *Grid) Coastal(e Edge) bool {
	g.checkEdge(e)
	return len(g.edgeTiles[e]) == 1
}
