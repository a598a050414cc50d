package wine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crate/internal/adapters/wine"
)

func TestTailBuffer_KeepsOnlyTail(t *testing.T) {
	tail := wine.NewTailBuffer(8)

	_, err := tail.Write([]byte("0123456789abcdef"))
	require.NoError(t, err)

	assert.Equal(t, "89abcdef", tail.String())
}

func TestTailBuffer_ShortWritesAccumulate(t *testing.T) {
	tail := wine.NewTailBuffer(64)

	for _, chunk := range []string{"one ", "two ", "three"} {
		_, err := tail.Write([]byte(chunk))
		require.NoError(t, err)
	}

	assert.Equal(t, "one two three", tail.String())
}

func TestTailBuffer_LargeSingleWrite(t *testing.T) {
	tail := wine.NewTailBuffer(4)

	_, err := tail.Write([]byte(strings.Repeat("x", 100) + "tail"))
	require.NoError(t, err)

	assert.Equal(t, "tail", tail.String())
}
