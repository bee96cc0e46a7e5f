package sequence_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/albahri/sarraf/pkg/service/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULIDGenerator_Next(t *testing.T) {
	g := sequence.NewULIDGenerator()

	n1, err := g.Next(sequence.MovementPrefix)
	require.NoError(t, err)
	n2, err := g.Next(sequence.MovementPrefix)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(n1, "MOV-"))
	assert.NotEqual(t, n1, n2)
	assert.Less(t, n1, n2, "numbers issued in order must sort in order")
}

func TestULIDGenerator_Prefixes(t *testing.T) {
	g := sequence.NewULIDGenerator()
	n, err := g.Next(sequence.TransferPrefix)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(n, "TRF-"))
}

type failingGenerator struct{}

func (failingGenerator) Next(string) (string, error) { return "", errors.New("generator down") }

func TestNextOrFallback(t *testing.T) {
	t.Run("uses generator when healthy", func(t *testing.T) {
		n := sequence.NextOrFallback(sequence.NewULIDGenerator(), sequence.MovementPrefix)
		assert.True(t, strings.HasPrefix(n, "MOV-"))
	})

	t.Run("falls back on failure", func(t *testing.T) {
		n := sequence.NextOrFallback(failingGenerator{}, sequence.MovementPrefix)
		assert.True(t, strings.HasPrefix(n, "MOV-"))
		assert.NotEmpty(t, strings.TrimPrefix(n, "MOV-"))
	})

	t.Run("falls back on nil generator", func(t *testing.T) {
		n := sequence.NextOrFallback(nil, sequence.TransferPrefix)
		assert.True(t, strings.HasPrefix(n, "TRF-"))
	})
}
