package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountKey(t *testing.T) {
	k, err := ParseAccountKey("42")
	require.NoError(t, err)
	id, ok := k.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	_, ok = k.Number()
	assert.False(t, ok)

	k, err = ParseAccountKey(" SAV-20260107-A1B2C ")
	require.NoError(t, err)
	number, ok := k.Number()
	assert.True(t, ok)
	assert.Equal(t, "SAV-20260107-A1B2C", number)
	_, ok = k.ID()
	assert.False(t, ok)

	_, err = ParseAccountKey("")
	assert.Error(t, err)

	_, err = ParseAccountKey("-3")
	assert.Error(t, err)
}
