package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotContains(t, hash, "pw1")
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.NoError(t, h.Verify(hash, "pw1"))
	assert.ErrorIs(t, h.Verify(hash, "pw2"), ErrPasswordMismatch)
	assert.Error(t, h.Verify("not-a-hash", "pw1"))
}

func TestNewBcryptHasher_CostRange(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
