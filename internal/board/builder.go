package board

import (
	"fmt"
	"math/rand"
)

// Opt selects how one aspect of the board is produced at setup.
type Opt string

const (
	OptRandom Opt = "random"
	OptPreset Opt = "preset"
	OptEmpty  Opt = "empty"
	OptDebug  Opt = "debug"
)

// ParseOpt validates a setup mode name.
func ParseOpt(s string) (Opt, error) {
	switch Opt(s) {
	case OptRandom, OptPreset, OptEmpty, OptDebug:
		return Opt(s), nil
	}
	return "", fmt.Errorf("unknown board option %q", s)
}

// Config drives the builder. Each aspect is generated independently, as in
// the original recorder: the operator may want a random terrain layout but
// the classic number arrangement.
type Config struct {
	Terrain Opt
	Numbers Opt
	Ports   Opt

	// PresetFile names a YAML board loaded through Loader when any aspect
	// is OptPreset and the file defines that aspect.
	PresetFile string

	// Seed fixes the shuffle for OptRandom aspects. Zero means a random
	// game; tests pass a fixed seed.
	Seed int64
}

// DefaultConfig is the classic fixed board.
func DefaultConfig() Config {
	return Config{Terrain: OptDebug, Numbers: OptDebug, Ports: OptDebug}
}

// terrainBag is the standard tile mix: 4 wood, 3 brick, 4 wheat, 4 sheep,
// 3 ore, 1 desert.
var terrainBag = []Terrain{
	Wood, Wood, Wood, Wood,
	Brick, Brick, Brick,
	Wheat, Wheat, Wheat, Wheat,
	Sheep, Sheep, Sheep, Sheep,
	Ore, Ore, Ore,
	Desert,
}

// numberBag is the standard token mix for the 18 non-desert tiles.
var numberBag = []HexNumber{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// classicTerrain is the beginner layout, tiles 1..19 row by row.
var classicTerrain = []Terrain{
	Ore, Sheep, Wood,
	Wheat, Brick, Sheep, Brick,
	Wheat, Wood, Desert, Wood, Ore,
	Wood, Ore, Wheat, Sheep,
	Brick, Wheat, Sheep,
}

// classicNumbers pairs with classicTerrain; 0 is the desert.
var classicNumbers = []HexNumber{
	10, 2, 9,
	12, 6, 4, 10,
	9, 11, 0, 3, 8,
	8, 3, 4, 5,
	5, 6, 11,
}

// portSites are the nine coastal edges that carry ports on the standard
// board.
var portSites = []struct {
	Tile Tile
	Dir  Direction
}{
	{1, NW}, {2, NE}, {7, E}, {12, E}, {16, SE},
	{19, SE}, {18, SW}, {13, W}, {8, W},
}

// classicPorts pairs with portSites: four generic 3:1 ports and one 2:1
// port per resource.
var classicPorts = []PortKind{
	PortAny3, PortWood, PortBrick, PortAny3, PortSheep,
	PortAny3, PortOre, PortWheat, PortAny3,
}

// Build produces a board per cfg. Preset aspects read from loader; empty
// aspects are left for the operator to cycle by hand before game start.
func Build(cfg Config, loader *Loader) (*Board, error) {
	b := NewBoard(NewGrid())
	rng := rand.New(rand.NewSource(cfg.Seed))

	var preset *BoardFile
	needsPreset := cfg.Terrain == OptPreset || cfg.Numbers == OptPreset || cfg.Ports == OptPreset
	if needsPreset {
		if loader == nil || cfg.PresetFile == "" {
			return nil, fmt.Errorf("preset board requested but no preset file configured")
		}
		var err error
		preset, err = loader.LoadBoardFile(cfg.PresetFile)
		if err != nil {
			return nil, fmt.Errorf("build board: %w", err)
		}
	}

	if err := buildTerrain(b, cfg.Terrain, preset, rng); err != nil {
		return nil, err
	}
	if err := buildNumbers(b, cfg.Numbers, preset, rng); err != nil {
		return nil, err
	}
	if err := buildPorts(b, cfg.Ports, preset, rng); err != nil {
		return nil, err
	}

	// The robber starts on the desert, or the center tile of a board with
	// no desert yet.
	robberTile := Tile(10)
	for t := Tile(1); t <= NumTiles; t++ {
		if b.Terrain(t) == Desert {
			robberTile = t
			break
		}
	}
	b.MoveRobber(robberTile)

	return b, nil
}

func buildTerrain(b *Board, opt Opt, preset *BoardFile, rng *rand.Rand) error {
	switch opt {
	case OptEmpty:
		return nil
	case OptDebug:
		return assignTerrain(b, classicTerrain)
	case OptRandom:
		bag := make([]Terrain, len(terrainBag))
		copy(bag, terrainBag)
		rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
		return assignTerrain(b, bag)
	case OptPreset:
		return assignTerrain(b, preset.Terrain)
	}
	return fmt.Errorf("unknown terrain option %q", opt)
}

func assignTerrain(b *Board, layout []Terrain) error {
	if len(layout) != NumTiles {
		return fmt.Errorf("terrain layout has %d tiles, want %d", len(layout), NumTiles)
	}
	for i, terrain := range layout {
		if err := b.SetTerrain(Tile(i+1), terrain); err != nil {
			return err
		}
	}
	return nil
}

func buildNumbers(b *Board, opt Opt, preset *BoardFile, rng *rand.Rand) error {
	switch opt {
	case OptEmpty:
		return nil
	case OptDebug:
		return assignNumbers(b, classicNumbers)
	case OptRandom:
		bag := make([]HexNumber, len(numberBag))
		copy(bag, numberBag)
		rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
		layout := make([]HexNumber, 0, NumTiles)
		for t := Tile(1); t <= NumTiles; t++ {
			if b.Terrain(t) == Desert {
				layout = append(layout, NoNumber)
				continue
			}
			if len(bag) == 0 {
				return fmt.Errorf("ran out of number tokens at tile %d", t)
			}
			layout = append(layout, bag[0])
			bag = bag[1:]
		}
		return assignNumbers(b, layout)
	case OptPreset:
		return assignNumbers(b, preset.Numbers)
	}
	return fmt.Errorf("unknown numbers option %q", opt)
}

func assignNumbers(b *Board, layout []HexNumber) error {
	if len(layout) != NumTiles {
		return fmt.Errorf("number layout has %d tiles, want %d", len(layout), NumTiles)
	}
	for i, n := range layout {
		if err := b.SetNumber(Tile(i+1), n); err != nil {
			return err
		}
	}
	return nil
}

func buildPorts(b *Board, opt Opt, preset *BoardFile, rng *rand.Rand) error {
	switch opt {
	case OptEmpty:
		// Create undecided slots at the standard sites so the operator can
		// cycle them. Undecided slots vanish when the board locks.
		for _, site := range portSites {
			b.PortAt(site.Tile, site.Dir)
		}
		return nil
	case OptDebug:
		return assignPorts(b, classicPorts)
	case OptRandom:
		kinds := make([]PortKind, len(classicPorts))
		copy(kinds, classicPorts)
		rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })
		return assignPorts(b, kinds)
	case OptPreset:
		for _, p := range preset.Ports {
			dir, ok := ParseDirection(p.Dir)
			if !ok {
				return fmt.Errorf("port on tile %d: unknown direction %q", p.Tile, p.Dir)
			}
			if !b.Grid().Coastal(b.Grid().EdgeInDirection(Tile(p.Tile), dir)) {
				return fmt.Errorf("port on tile %d %s: not a coastal edge", p.Tile, dir)
			}
			b.PortAt(Tile(p.Tile), dir).Kind = PortKind(p.Kind)
		}
		return nil
	}
	return fmt.Errorf("unknown ports option %q", opt)
}

func assignPorts(b *Board, kinds []PortKind) error {
	if len(kinds) != len(portSites) {
		return fmt.Errorf("port layout has %d ports, want %d", len(kinds), len(portSites))
	}
	for i, site := range portSites {
		b.PortAt(site.Tile, site.Dir).Kind = kinds[i]
	}
	return nil
}
