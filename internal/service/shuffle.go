package service

import "math/rand/v2"

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the process-wide source, fresh on every call.
var DefaultRand Rand = globalRand{}

// Shuffle permutes items in place with Fisher–Yates and returns the same slice.
func Shuffle[T any](rng Rand, items []T) []T {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// Shuffled returns a shuffled copy, leaving items untouched.
func Shuffled[T any](rng Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return Shuffle(rng, out)
}
