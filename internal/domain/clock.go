package domain

import "time"

// Clock supplies the current instant with the local zone already resolved.
type Clock interface {
	Now() time.Time
}

// RandomSource is a uniform integer generator. IntN panics if n <= 0,
// matching math/rand/v2.
type RandomSource interface {
	IntN(n int) int
}
