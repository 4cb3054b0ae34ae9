package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridCounts(t *testing.T) {
	g := NewGrid()
	assert.Equal(t, 54, g.NumNodes())
	assert.Equal(t, 72, g.NumEdges())
}

func TestEveryTileHasSixCornersAndEdges(t *testing.T) {
	g := NewGrid()
	for tile := Tile(1); tile <= NumTiles; tile++ {
		nodes := g.NodesOfTile(tile)
		seen := make(map[Node]bool)
		for _, n := range nodes {
			require.True(t, g.ValidNode(n))
			seen[n] = true
		}
		assert.Len(t, seen, 6, "tile %d corners", tile)

		edges := g.EdgesOfTile(tile)
		seenE := make(map[Edge]bool)
		for _, e := range edges {
			require.True(t, g.ValidEdge(e))
			seenE[e] = true
		}
		assert.Len(t, seenE, 6, "tile %d edges", tile)
	}
}

func TestEdgeEndpointsAreAdjacent(t *testing.T) {
	g := NewGrid()
	for e := Edge(0); int(e) < g.NumEdges(); e++ {
		ends := g.NodesOfEdge(e)
		assert.NotEqual(t, ends[0], ends[1])
		assert.Contains(t, g.AdjacentNodes(ends[0]), ends[1])
		assert.Contains(t, g.AdjacentNodes(ends[1]), ends[0])

		got, ok := g.EdgeBetween(ends[0], ends[1])
		require.True(t, ok)
		assert.Equal(t, e, got)
	}
}

func TestNodeDegrees(t *testing.T) {
	g := NewGrid()
	for n := Node(0); int(n) < g.NumNodes(); n++ {
		deg := len(g.EdgesAt(n))
		assert.Contains(t, []int{2, 3}, deg, "node %d degree", n)
		assert.Len(t, g.AdjacentNodes(n), deg)

		tiles := len(g.TilesTouching(n))
		assert.GreaterOrEqual(t, tiles, 1)
		assert.LessOrEqual(t, tiles, 3)
	}
}

func TestInteriorEdgesTouchTwoTiles(t *testing.T) {
	g := NewGrid()
	coastal := 0
	for e := Edge(0); int(e) < g.NumEdges(); e++ {
		tiles := g.TilesOfEdge(e)
		switch len(tiles) {
		case 1:
			assert.True(t, g.Coastal(e))
			coastal++
		case 2:
			assert.False(t, g.Coastal(e))
		default:
			t.Fatalf("edge %d touches %d tiles", e, len(tiles))
		}
	}
	assert.Equal(t, 30, coastal)
}

func TestEdgeInDirection(t *testing.T) {
	g := NewGrid()
	for tile := Tile(1); tile <= NumTiles; tile++ {
		seen := make(map[Edge]bool)
		for _, d := range []Direction{NE, E, SE, SW, W, NW} {
			e := g.EdgeInDirection(tile, d)
			require.True(t, g.ValidEdge(e))
			seen[e] = true
		}
		assert.Len(t, seen, 6, "tile %d directional edges", tile)
	}
}

func TestStandardPortSitesAreCoastal(t *testing.T) {
	g := NewGrid()
	for _, site := range portSites {
		e := g.EdgeInDirection(site.Tile, site.Dir)
		assert.True(t, g.Coastal(e), "tile %d %s", site.Tile, site.Dir)
	}
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("NW")
	require.True(t, ok)
	assert.Equal(t, NW, d)

	_, ok = ParseDirection("up")
	assert.False(t, ok)
}
