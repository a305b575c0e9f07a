package utils

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	orig := append([]string(nil), in...)

	out := Shuffle(in, rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, orig, in)
	assert.ElementsMatch(t, orig, out)
	assert.Len(t, out, len(in))
}

func TestShuffle_SameSeedSameOrder(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	a := Shuffle(in, rand.New(rand.NewPCG(7, 7)))
	b := Shuffle(in, rand.New(rand.NewPCG(7, 7)))

	assert.Equal(t, a, b)
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, Shuffle([]string{}, nil))
	assert.Equal(t, []string{"x"}, Shuffle([]string{"x"}, nil))
}

func TestShuffle_EveryPermutationReachable(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1024))
	in := []string{"a", "b", "c"}
	counts := map[string]int{}

	const trials = 60000
	for i := 0; i < trials; i++ {
		counts[strings.Join(Shuffle(in, rng), "")]++
	}

	require.Len(t, counts, 6)
	for perm, n := range counts {
		assert.InDelta(t, trials/6, n, 500, "permutation %s", perm)
	}
}

func TestSample(t *testing.T) {
	deck := []string{"a", "b", "c", "d", "e", "f"}

	t.Run("returns k distinct elements", func(t *testing.T) {
		got, err := Sample(deck, 4, rand.New(rand.NewPCG(3, 4)))
		require.NoError(t, err)
		assert.Len(t, got, 4)

		seen := map[string]bool{}
		for _, c := range got {
			assert.Contains(t, deck, c)
			assert.False(t, seen[c], "duplicate %s", c)
			seen[c] = true
		}
	})

	t.Run("whole sequence", func(t *testing.T) {
		got, err := Sample(deck, len(deck), nil)
		require.NoError(t, err)
		assert.ElementsMatch(t, deck, got)
	})

	t.Run("zero", func(t *testing.T) {
		got, err := Sample(deck, 0, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("k larger than sequence", func(t *testing.T) {
		_, err := Sample(deck, 7, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("negative k", func(t *testing.T) {
		_, err := Sample(deck, -1, nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestCleanName(t *testing.T) {
	name, err := CleanName("player name", "  Alice ", 10)
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)

	_, err = CleanName("player name", "   ", 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CleanName("room id", "ñññññññññññ", 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDefaultDeck(t *testing.T) {
	deck, err := DefaultDeck()
	require.NoError(t, err)
	assert.Len(t, deck, 54)
	assert.Equal(t, "The Hummingbird", deck[0])
	assert.Equal(t, "The Frog", deck[53])
}

func TestLoadDeck(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	t.Run("json objects", func(t *testing.T) {
		p := write("objects.json", `[{"name":"The Sun","number":46},{"name":"The Moon"}]`)
		deck, err := LoadDeck(p)
		require.NoError(t, err)
		assert.Equal(t, []string{"The Sun", "The Moon"}, deck)
	})

	t.Run("json strings", func(t *testing.T) {
		p := write("strings.json", `["The Rose", " The Bell "]`)
		deck, err := LoadDeck(p)
		require.NoError(t, err)
		assert.Equal(t, []string{"The Rose", "The Bell"}, deck)
	})

	t.Run("csv with header", func(t *testing.T) {
		p := write("deck.csv", "name,number\nThe Star,35\nThe Frog,54\n")
		deck, err := LoadDeck(p)
		require.NoError(t, err)
		assert.Equal(t, []string{"The Star", "The Frog"}, deck)
	})

	t.Run("duplicates rejected", func(t *testing.T) {
		p := write("dup.json", `["The Sun","The Sun"]`)
		_, err := LoadDeck(p)
		assert.Error(t, err)
	})

	t.Run("empty rejected", func(t *testing.T) {
		p := write("empty.json", `[]`)
		_, err := LoadDeck(p)
		assert.ErrorIs(t, err, ErrEmptyDeck)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDeck(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}
