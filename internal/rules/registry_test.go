package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardRegistry(t *testing.T) {
	r, err := Standard()
	require.NoError(t, err)

	assert.Equal(t, 10, r.WinThreshold())
	assert.False(t, r.RobberMayStay())

	assert.False(t, r.MustDiscard(7))
	assert.True(t, r.MustDiscard(8))

	// floor(n/2)
	assert.Equal(t, 4, r.DiscardQuota(9))
	assert.Equal(t, 4, r.DiscardQuota(8))
	assert.Equal(t, 7, r.DiscardQuota(15))
}

func TestVariantOverrides(t *testing.T) {
	r, err := NewRegistry(Variant{
		WinThreshold:  "7",
		MustDiscard:   "hand_size > 9",
		DiscardQuota:  "hand_size / 3",
		RobberMayStay: "true",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, r.WinThreshold())
	assert.True(t, r.RobberMayStay())
	assert.False(t, r.MustDiscard(9))
	assert.True(t, r.MustDiscard(10))
	assert.Equal(t, 4, r.DiscardQuota(12))
}

func TestVariantRejectsBadExpressions(t *testing.T) {
	cases := map[string]Variant{
		"syntax error":     {MustDiscard: "hand_size >"},
		"wrong type":       {MustDiscard: "hand_size + 1"},
		"unknown variable": {DiscardQuota: "cards / 2"},
		"threshold kind":   {WinThreshold: "'ten'"},
		"threshold range":  {WinThreshold: "1"},
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewRegistry(v)
			assert.Error(t, err)
		})
	}
}

func TestLoadVariant(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "variants"), 0o755))
	content := "name: short game\nwin_threshold: \"8\"\nrobber_may_stay: \"true\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variants", "short.yaml"), []byte(content), 0o644))

	v, err := NewLoader([]string{dir}).LoadVariant("short")
	require.NoError(t, err)
	assert.Equal(t, "short game", v.Name)

	r, err := NewRegistry(*v)
	require.NoError(t, err)
	assert.Equal(t, 8, r.WinThreshold())
	assert.True(t, r.RobberMayStay())
	// Untouched knobs keep the base behavior.
	assert.True(t, r.MustDiscard(8))

	_, err = NewLoader([]string{dir}).LoadVariant("missing")
	assert.Error(t, err)
}
