package services

import (
	"spd/internal/structures"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameGenerator_DefaultLists(t *testing.T) {
	g := NewNameGenerator(&structures.Config{})

	for i := 0; i < 100; i++ {
		name := g.Generate()
		parts := strings.SplitN(name, " ", 2)
		require.Len(t, parts, 2)
		assert.Contains(t, defaultPrefixes, parts[0])
		assert.Contains(t, defaultSuffixes, parts[1])
	}
}

func TestNameGenerator_ConfiguredLists(t *testing.T) {
	conf := &structures.Config{}
	conf.Names.Prefixes = []string{"Lone"}
	conf.Names.Suffixes = []string{"Wolf"}

	g := NewNameGenerator(conf)
	assert.Equal(t, "Lone Wolf", g.Generate())
}

func TestNameGenerator_CoversBothLists(t *testing.T) {
	conf := &structures.Config{}
	conf.Names.Prefixes = []string{"A", "B"}
	conf.Names.Suffixes = []string{"X", "Y"}

	g := NewNameGenerator(conf)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[g.Generate()] = true
	}
	assert.Len(t, seen, 4)
}
