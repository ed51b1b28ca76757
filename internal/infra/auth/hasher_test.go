package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passgate/internal/domain/service"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "password1", hash)

	ok, err := hasher.Verify("password1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("password2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltRandomness(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)

	first, err := hasher.Hash("password1")
	require.NoError(t, err)
	second, err := hasher.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	ok, err := hasher.Verify("password1", first)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = hasher.Verify("password1", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_CorruptHash(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)

	ok, err := hasher.Verify("password1", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, service.ErrCorruptHash)
}

func TestArgon2idHasher_RoundTrip(t *testing.T) {
	hasher := NewArgon2idHasher()

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := hasher.Verify("password1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("Password1", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2idHasher_SaltRandomness(t *testing.T) {
	hasher := NewArgon2idHasher()

	first, err := hasher.Hash("password1")
	require.NoError(t, err)
	second, err := hasher.Hash("password1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	ok, err := hasher.Verify("password1", first)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = hasher.Verify("password1", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2idHasher_CorruptHash(t *testing.T) {
	hasher := NewArgon2idHasher()

	cases := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "wrong field count", hash: "$argon2id$v=19$m=65536"},
		{name: "wrong algorithm", hash: "$scrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{name: "bad hash encoding", hash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
		{name: "zero threads", hash: "$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$aGFzaA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := hasher.Verify("password1", tc.hash)
			assert.False(t, ok)
			assert.ErrorIs(t, err, service.ErrCorruptHash)
		})
	}
}

// bcryptTestCost keeps the bcrypt tests fast; production cost comes from config.
const bcryptTestCost = 4
