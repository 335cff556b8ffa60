package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	h := &Hasher{Cost: bcrypt.MinCost}

	hashed, err := h.HashPassword("pw1")
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hashed)
	require.True(t, h.CheckPassword(hashed, "pw1"))
	require.False(t, h.CheckPassword(hashed, "wrong"))
	require.False(t, h.CheckPassword("not-a-hash", "pw1"))
}

func TestHashTooLong(t *testing.T) {
	h := &Hasher{Cost: bcrypt.MinCost}
	_, err := h.HashPassword(strings.Repeat("x", 100))
	require.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestBurnCompareDoesNotPanic(t *testing.T) {
	h := &Hasher{Cost: bcrypt.MinCost}
	h.BurnCompare("anything")
	h.BurnCompare("again")
	require.NotEmpty(t, h.dummy)
}

func TestDefaultCost(t *testing.T) {
	var h *Hasher
	require.Equal(t, bcrypt.DefaultCost, h.cost())
}
