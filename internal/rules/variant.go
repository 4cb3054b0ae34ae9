package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Variant is the on-disk YAML shape of a house-rule file. Every field is a
// CEL expression; empty fields keep the base game behavior.
type Variant struct {
	Name string `yaml:"name"`

	// WinThreshold yields the victory point total that ends the game.
	WinThreshold string `yaml:"win_threshold"`
	// MustDiscard yields whether a hand of hand_size cards discards on a 7.
	MustDiscard string `yaml:"must_discard"`
	// DiscardQuota yields how many cards such a hand discards.
	DiscardQuota string `yaml:"discard_quota"`
	// RobberMayStay yields whether the robber may stay on its tile.
	RobberMayStay string `yaml:"robber_may_stay"`
}

// Loader reads variant files from a fallback hierarchy of directories,
// first match wins.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a Loader with the given directory hierarchy.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// LoadVariant finds and decodes variants/<name>.yaml in the data
// directories.
func (l *Loader) LoadVariant(name string) (*Variant, error) {
	ref := filepath.Join("variants", fmt.Sprintf("%s.yaml", name))
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		var v Variant
		if err := yaml.NewDecoder(f).Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode variant file %s: %w", ref, err)
		}
		return &v, nil
	}
	return nil, fmt.Errorf("could not find or open %s in any available data directory", ref)
}
