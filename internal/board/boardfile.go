package board

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BoardFile is the on-disk YAML shape of a preset board.
type BoardFile struct {
	Terrain []Terrain   `yaml:"terrain"`
	Numbers []HexNumber `yaml:"numbers"`
	Ports   []struct {
		Tile int    `yaml:"tile"`
		Dir  string `yaml:"dir"`
		Kind string `yaml:"kind"`
	} `yaml:"ports"`
}

// Loader reads preset boards from a fallback hierarchy of directories,
// first match wins.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a Loader with the given directory hierarchy.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// LoadBoardFile finds and decodes boards/<name>.yaml in the data
// directories.
func (l *Loader) LoadBoardFile(name string) (*BoardFile, error) {
	var bf BoardFile
	ref := filepath.Join("boards", fmt.Sprintf("%s.yaml", name))
	if err := l.load(ref, &bf); err != nil {
		return nil, err
	}
	if err := bf.validate(); err != nil {
		return nil, fmt.Errorf("board file %s: %w", name, err)
	}
	return &bf, nil
}

func (l *Loader) load(ref string, target interface{}) error {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			decoder := yaml.NewDecoder(f)
			if err := decoder.Decode(target); err != nil {
				return fmt.Errorf("failed to decode board file %s: %w", ref, err)
			}
			return nil
		}
	}
	return fmt.Errorf("could not find or open %s in any available data directory", ref)
}

func (bf *BoardFile) validate() error {
	if len(bf.Terrain) != 0 && len(bf.Terrain) != NumTiles {
		return fmt.Errorf("terrain has %d entries, want %d", len(bf.Terrain), NumTiles)
	}
	for i, t := range bf.Terrain {
		if !knownTerrain(t) {
			return fmt.Errorf("tile %d: unknown terrain %q", i+1, t)
		}
	}
	if len(bf.Numbers) != 0 && len(bf.Numbers) != NumTiles {
		return fmt.Errorf("numbers has %d entries, want %d", len(bf.Numbers), NumTiles)
	}
	for i, n := range bf.Numbers {
		if !knownNumber(n) {
			return fmt.Errorf("tile %d: illegal number %d", i+1, n)
		}
	}
	for _, p := range bf.Ports {
		if p.Tile < 1 || p.Tile > NumTiles {
			return fmt.Errorf("port tile %d out of range", p.Tile)
		}
		if _, ok := ParseDirection(p.Dir); !ok {
			return fmt.Errorf("port on tile %d: unknown direction %q", p.Tile, p.Dir)
		}
		if !knownPortKind(PortKind(p.Kind)) {
			return fmt.Errorf("port on tile %d: unknown kind %q", p.Tile, p.Kind)
		}
	}
	return nil
}

func knownTerrain(t Terrain) bool {
	for _, k := range Terrains {
		if k == t {
			return true
		}
	}
	return false
}

func knownNumber(n HexNumber) bool {
	for _, k := range HexNumbers {
		if k == n {
			return true
		}
	}
	return false
}

func knownPortKind(k PortKind) bool {
	for _, p := range PortKinds {
		if p == k {
			return true
		}
	}
	return false
}
