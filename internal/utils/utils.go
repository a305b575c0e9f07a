package utils

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

var ErrInvalidArgument = errors.New("invalid argument")

// GenerateID returns a fresh random identifier for connections and records.
func GenerateID() string {
	return uuid.NewString()
}

// Shuffle returns a uniformly random permutation of seq, leaving seq as is.
// A nil rng falls back to the process-wide source.
func Shuffle[T any](seq []T, rng *rand.Rand) []T {
	out := make([]T, len(seq))
	copy(out, seq)

	for i := len(out) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns the first k elements of a fresh shuffle of seq.
func Sample[T any](seq []T, k int, rng *rand.Rand) ([]T, error) {
	if k < 0 || k > len(seq) {
		return nil, fmt.Errorf("%w: cannot sample %d of %d elements", ErrInvalidArgument, k, len(seq))
	}
	return Shuffle(seq, rng)[:k], nil
}

// CleanName trims a client supplied name and checks it is usable as a room
// id or display name.
func CleanName(field, raw string, maxLen int) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidArgument, field)
	}
	if utf8.RuneCountInString(name) > maxLen {
		return "", fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidArgument, field, maxLen)
	}
	return name, nil
}
