package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations.
// Process-wide implicit randomness is disallowed: every stream is derived from
// an explicit seed so resampling is reproducible and unit-testable.
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for one chunk of one comparison.
	// The (stage, streamKey, chunk) tuple sub-seeds a counter-based split of
	// the base seed, so the same chunk draws the same values regardless of
	// how many workers execute the run - and a replay with the same seed
	// reproduces the run exactly. Run identity deliberately stays out of
	// the stream identity.
	Stream(ctx context.Context, stage, streamKey string, chunk int, baseSeed int64) (*rand.Rand, error)
}
