package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const djangoPBKDF2Prefix = "pbkdf2_sha256"

var ErrPasswordMismatch = errors.New("password does not match")

// PasswordVerifier compares a stored hash with a plaintext password.
// Returns nil on match.
type PasswordVerifier interface {
	Compare(hashedPassword, password string) error
}

// Hasher hashes new passwords with bcrypt and verifies both bcrypt hashes and
// Django's "pbkdf2_sha256$<iterations>$<salt>$<hash>" format, so accounts
// created by the Django admin keep working.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *Hasher) Compare(hashedPassword, password string) error {
	if strings.HasPrefix(hashedPassword, djangoPBKDF2Prefix+"$") {
		return comparePBKDF2(hashedPassword, password)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// HashPBKDF2 encodes password in Django's pbkdf2_sha256 format.
func HashPBKDF2(password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", djangoPBKDF2Prefix, iterations, salt, base64.StdEncoding.EncodeToString(key))
}

func comparePBKDF2(encoded, password string) error {
	parts := strings.SplitN(encoded, "$", 4)
	if len(parts) != 4 {
		return fmt.Errorf("malformed %s hash", djangoPBKDF2Prefix)
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return fmt.Errorf("malformed %s iteration count", djangoPBKDF2Prefix)
	}

	expected := HashPBKDF2(password, parts[2], iterations)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(encoded)) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}
