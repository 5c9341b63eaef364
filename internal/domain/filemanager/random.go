package filemanager

import "math/rand/v2"

// RandomSource picks one element of a list
type RandomSource interface {
	Choice(items []string) string
}

// MathRandom picks uniformly using math/rand/v2
type MathRandom struct{}

// Choice returns a random element of items, or "" when items is empty
func (MathRandom) Choice(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[rand.IntN(len(items))]
}
