package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const tokenPrefix = "foodgram-token|"

// NewToken generates a fresh API token. The plain value is handed to the
// client once; only the digest is stored.
func NewToken() (plain, digest string) {
	plain = strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	return plain, Digest(plain)
}

// Digest hashes a plain token into its stored form.
func Digest(plain string) string {
	sum := sha256.Sum256([]byte(tokenPrefix + plain))
	return hex.EncodeToString(sum[:])
}
