package filemanager

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/filedesk/internal/providers/filesystem"
)

// MaxNameAttempts is the number of random candidates tried before numbering
const MaxNameAttempts = 10

// Adjectives and Nouns are the word lists for generated destination names
var (
	Adjectives = []string{
		"grand", "petit", "beau", "ancien", "nouveau",
		"rouge", "bleu", "vert", "dore", "argente",
		"rapide", "calme", "brillant", "sombre", "clair",
		"joyeux", "paisible", "mysterieux", "magique", "eternel",
	}

	Nouns = []string{
		"soleil", "lune", "etoile", "montagne", "riviere",
		"foret", "ocean", "desert", "prairie", "colline",
		"nuage", "vent", "tempete", "aurore", "crepuscule",
		"jardin", "cascade", "vallee", "plaine", "horizon",
	}
)

// NameGenerator produces destination directory names that do not collide
type NameGenerator struct {
	fs     filesystem.Filesystem
	random RandomSource
}

// NewNameGenerator creates a name generator
func NewNameGenerator(fs filesystem.Filesystem, random RandomSource) *NameGenerator {
	return &NameGenerator{fs: fs, random: random}
}

// Candidate draws an adjective, then a noun, and joins them with an underscore
func (g *NameGenerator) Candidate() string {
	adjective := g.random.Choice(Adjectives)
	noun := g.random.Choice(Nouns)
	return adjective + "_" + noun
}

type namingPhase int

const (
	phaseProbing namingPhase = iota
	phaseNumbering
)

// UniqueName returns a name that does not exist under base.
//
// Up to MaxNameAttempts random candidates are tried. If all of them exist, the
// last candidate drawn is suffixed with _1, _2, ... until a free name is found.
// The numbering phase has no upper bound.
func (g *NameGenerator) UniqueName(ctx context.Context, base string) string {
	phase := phaseProbing
	attempt := 0
	counter := 0
	last := ""

	for {
		var name string
		switch phase {
		case phaseProbing:
			attempt++
			name = g.Candidate()
			last = name
			if attempt == MaxNameAttempts {
				phase = phaseNumbering
			}
		case phaseNumbering:
			counter++
			name = fmt.Sprintf("%s_%d", last, counter)
		}

		if !g.fs.Exists(ctx, g.fs.JoinPath(base, name)) {
			return name
		}
	}
}

// ResolveDestination returns explicit when set, otherwise a fresh path under base
func (g *NameGenerator) ResolveDestination(ctx context.Context, base, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return g.fs.JoinPath(base, g.UniqueName(ctx, base))
}
