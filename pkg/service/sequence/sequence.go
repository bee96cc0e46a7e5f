// Package sequence issues the human-facing movement and transfer numbers.
package sequence

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Number prefixes for the two kinds of human-facing numbers.
const (
	MovementPrefix = "MOV"
	TransferPrefix = "TRF"
)

// NumberGenerator produces unique, monotonically-legible numbers for
// movements and transfers. Implementations may be backed by an external
// service; callers must tolerate failure and fall back (see NextOrFallback).
type NumberGenerator interface {
	Next(prefix string) (string, error)
}

// ULIDGenerator issues lexicographically sortable numbers backed by ULIDs.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates a generator with monotonic entropy so numbers
// issued in the same millisecond still sort in issue order.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0),
	}
}

// Next implements NumberGenerator.
func (g *ULIDGenerator) Next(prefix string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), g.entropy)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", prefix, id.String()), nil
}

// FallbackNumber builds a timestamp-based number, e.g. "MOV-1717171717171".
// It is used when the generator is unavailable so a movement can still be
// recorded; uniqueness is then only as good as the millisecond clock.
func FallbackNumber(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}

// NextOrFallback asks the generator for a number and falls back to a
// timestamp-based one on failure. Recording a movement must not fail just
// because the number generator is down.
func NextOrFallback(g NumberGenerator, prefix string) string {
	if g != nil {
		if n, err := g.Next(prefix); err == nil {
			return n
		}
	}
	return FallbackNumber(prefix)
}
