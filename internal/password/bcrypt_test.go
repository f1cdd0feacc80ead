package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/clinic-server/internal/apperr"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	ok, err := h.Verify("s3cret!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_SaltsEachHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcrypt_Hash_Rejects(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = h.Hash(strings.Repeat("a", 73))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestBcrypt_Verify_MalformedHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	ok, err := h.Verify("pw", "not-a-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewBcrypt_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)
}
