package services

import (
	"math/rand"
	"spd/internal/structures"
	"sync"
	"time"
)

var defaultPrefixes = []string{
	"Platinum", "Golden", "Diamond", "Silver", "Dark", "Radiant",
	"Blazing", "Frozen", "Thunder", "Gale", "Earthen", "Celestial",
	"Starlit", "Moonlight", "Solar", "Abyssal", "Sacred", "Mystic",
	"Aurora", "Tempest", "Ocean", "Forest", "Crimson", "Emerald",
	"Amber", "Crystal", "Phantom", "Eternal", "Obsidian", "Scarlet",
}

var defaultSuffixes = []string{
	"Star", "Emissary", "Warrior", "Guardian", "Blade", "Wing",
	"Force", "King", "Knight", "Mage", "Heart", "Soul",
	"Destiny", "Judgement", "Verdict", "Redemption", "Hope", "Dream",
	"Legend", "Myth", "Miracle", "Shadow", "Storm", "Flame",
	"Tide", "Angel", "Spirit", "Oath", "Requiem", "Echo",
}

// NameGenerator produces stand names as one uniform pick from each of two
// word lists. The lists come from configuration, with built-in defaults
// when unset.
type NameGenerator struct {
	prefixes []string
	suffixes []string

	mu  sync.Mutex
	rng *rand.Rand
}

func NewNameGenerator(conf *structures.Config) *NameGenerator {
	prefixes := conf.Names.Prefixes
	if len(prefixes) == 0 {
		prefixes = defaultPrefixes
	}
	suffixes := conf.Names.Suffixes
	if len(suffixes) == 0 {
		suffixes = defaultSuffixes
	}
	return &NameGenerator{
		prefixes: prefixes,
		suffixes: suffixes,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *NameGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.prefixes[g.rng.Intn(len(g.prefixes))] + " " + g.suffixes[g.rng.Intn(len(g.suffixes))]
}
