package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, ComparePassword(hash, "secret1"))
	assert.ErrorIs(t, ComparePassword(hash, "secret2"), ErrPasswordMismatch)
	assert.ErrorIs(t, ComparePassword("", "secret1"), ErrPasswordMismatch)
	assert.Error(t, ComparePassword("not-a-bcrypt-hash", "secret1"))
}

func TestHashPasswordFallsBackToDefaultCost(t *testing.T) {
	hash, err := HashPassword("secret1", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestDummyHashMatchesRequestedCost(t *testing.T) {
	for _, cost := range []int{bcrypt.MinCost, bcrypt.MinCost + 2} {
		dummy, err := NewDummyHash(cost)
		require.NoError(t, err)

		got, err := bcrypt.Cost([]byte(dummy))
		require.NoError(t, err)
		assert.Equal(t, cost, got)
	}
}

func TestCompareDummyAlwaysFails(t *testing.T) {
	dummy, err := NewDummyHash(bcrypt.MinCost)
	require.NoError(t, err)

	assert.ErrorIs(t, CompareDummy(dummy, dummyPassword), ErrPasswordMismatch)
	assert.ErrorIs(t, CompareDummy(dummy, "anything"), ErrPasswordMismatch)
	assert.ErrorIs(t, CompareDummy("", "anything"), ErrPasswordMismatch)
}
