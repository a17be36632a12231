package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"labstock/internal/util"
)

// DefaultIterations is the PBKDF2 iteration count for newly created users.
const DefaultIterations = 200000

const saltSize = 16

// NewSalt returns a fresh random salt, hex encoded.
func NewSalt() (string, error) {
	b := make([]byte, saltSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashPassword derives a PBKDF2-HMAC-SHA256 digest of the password under the
// given hex salt and iteration count, returned hex encoded.
func HashPassword(password, saltHex string, iterations int) string {
	salt := util.DecodeHexOrRaw(saltHex)
	dk := pbkdf2.Key([]byte(password), salt, iterations, sha256.Size, sha256.New)
	return hex.EncodeToString(dk)
}

// CheckPassword recomputes the digest and compares it to the stored one.
func CheckPassword(password, saltHex, hashHex string, iterations int) bool {
	if iterations <= 0 {
		return false
	}
	got := HashPassword(password, saltHex, iterations)
	return hmac.Equal([]byte(got), []byte(hashHex))
}
