package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const resetTokenBytes = 32

// GenerateResetToken returns a high-entropy plaintext token and its one-way
// digest. Only the digest is meant to be persisted; the plaintext goes into
// the emailed link and is never stored.
func GenerateResetToken() (plain string, digest []byte, err error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", nil, err
	}
	plain = hex.EncodeToString(buf)
	return plain, HashResetToken(plain), nil
}

// HashResetToken derives the stored digest for a plaintext reset token.
func HashResetToken(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return sum[:]
}
