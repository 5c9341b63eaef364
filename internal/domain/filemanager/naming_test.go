package filemanager

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordLists(t *testing.T) {
	letters := regexp.MustCompile(`^[a-z]+$`)

	for name, list := range map[string][]string{"adjectives": Adjectives, "nouns": Nouns} {
		t.Run(name, func(t *testing.T) {
			assert.Len(t, list, 20)
			seen := make(map[string]bool)
			for _, word := range list {
				assert.Regexp(t, letters, word)
				assert.False(t, seen[word], "duplicate word %q", word)
				seen[word] = true
			}
		})
	}
}

func TestCandidate(t *testing.T) {
	random := &scriptedRandom{values: []string{"beau", "soleil"}}
	gen := NewNameGenerator(newMemFS(), random)

	assert.Equal(t, "beau_soleil", gen.Candidate())
	require.Len(t, random.lists, 2)
	assert.Equal(t, Adjectives, random.lists[0])
	assert.Equal(t, Nouns, random.lists[1])
}

func TestCandidateWithMathRandom(t *testing.T) {
	gen := NewNameGenerator(newMemFS(), MathRandom{})
	pattern := regexp.MustCompile(`^([a-z]+)_([a-z]+)$`)

	for i := 0; i < 50; i++ {
		m := pattern.FindStringSubmatch(gen.Candidate())
		require.NotNil(t, m)
		assert.Contains(t, Adjectives, m[1])
		assert.Contains(t, Nouns, m[2])
	}
}

func TestUniqueNameFirstFree(t *testing.T) {
	fs := newMemFS()
	random := &scriptedRandom{values: []string{"grand", "montagne"}}
	gen := NewNameGenerator(fs, random)

	assert.Equal(t, "grand_montagne", gen.UniqueName(context.Background(), "/base"))
	assert.Len(t, random.lists, 2)
}

func TestUniqueNameRetriesOnCollision(t *testing.T) {
	fs := newMemFS()
	fs.paths["/base/rouge_lune"] = true
	fs.paths["/base/bleu_vent"] = true
	random := &scriptedRandom{values: []string{"rouge", "lune", "bleu", "vent", "vert", "ocean"}}
	gen := NewNameGenerator(fs, random)

	assert.Equal(t, "vert_ocean", gen.UniqueName(context.Background(), "/base"))
	assert.Len(t, random.lists, 6)
}

// collidingGenerator scripts ten candidates nom0_test0 .. nom9_test9, all taken
func collidingGenerator(taken ...string) (*NameGenerator, *scriptedRandom) {
	fs := newMemFS()
	var values []string
	for i := 0; i < MaxNameAttempts; i++ {
		adjective := fmt.Sprintf("nom%d", i)
		noun := fmt.Sprintf("test%d", i)
		values = append(values, adjective, noun)
		fs.paths["/base/"+adjective+"_"+noun] = true
	}
	for _, name := range taken {
		fs.paths["/base/"+name] = true
	}
	random := &scriptedRandom{values: values}
	return NewNameGenerator(fs, random), random
}

func TestUniqueNameNumbersLastCandidate(t *testing.T) {
	gen, random := collidingGenerator()

	assert.Equal(t, "nom9_test9_1", gen.UniqueName(context.Background(), "/base"))
	assert.Len(t, random.lists, 2*MaxNameAttempts, "no draws after the attempt bound")
}

func TestUniqueNameIncrementsCounter(t *testing.T) {
	gen, random := collidingGenerator("nom9_test9_1", "nom9_test9_2", "nom9_test9_3")

	assert.Equal(t, "nom9_test9_4", gen.UniqueName(context.Background(), "/base"))
	assert.Len(t, random.lists, 2*MaxNameAttempts)
}

func TestResolveDestination(t *testing.T) {
	ctx := context.Background()
	gen := NewNameGenerator(newMemFS(), &scriptedRandom{values: []string{"calme", "jardin"}})

	assert.Equal(t, "/explicit/dest", gen.ResolveDestination(ctx, "/base", "/explicit/dest"))
	assert.Equal(t, "/base/calme_jardin", gen.ResolveDestination(ctx, "/base", ""))
}
