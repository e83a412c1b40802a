package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.NoError(t, ComparePassword("123456", hash))
	assert.Error(t, ComparePassword("654321", hash))
}

func TestSixDigitPassword(t *testing.T) {
	for i := 0; i < 100; i++ {
		p, err := SixDigitPassword()
		require.NoError(t, err)
		assert.Len(t, p, 6)
		for _, r := range p {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q in %q", r, p)
		}
	}
}
