package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_Bcrypt(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.ErrorIs(t, h.Compare(hash, "battery staple"), ErrPasswordMismatch)
}

func TestHasher_DjangoPBKDF2(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	// generated with hashlib.pbkdf2_hmac("sha256", b"correct horse", b"seasalt", 1000)
	encoded := "pbkdf2_sha256$1000$seasalt$mQnueSakb748zqBAC1tmWVZsZbi2zPGZarEzTGdfmso="

	assert.Equal(t, encoded, HashPBKDF2("correct horse", "seasalt", 1000))
	assert.NoError(t, h.Compare(encoded, "correct horse"))
	assert.ErrorIs(t, h.Compare(encoded, "wrong"), ErrPasswordMismatch)
}

func TestHasher_MalformedPBKDF2(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	assert.Error(t, h.Compare("pbkdf2_sha256$abc$salt$hash", "pw"))
	assert.Error(t, h.Compare("pbkdf2_sha256$1000", "pw"))
}
