// Package password derives and verifies salted password hashes.
//
// Hashes are PBKDF2-HMAC-SHA512 with 10000 iterations and a 512 byte key,
// hex encoded. Salts are 16 random bytes, hex encoded; the hex text itself is
// the salt fed to the key derivation.
package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	Iterations = 10000 // PBKDF2 rounds
	KeyLength  = 512   // derived key length in bytes
	SaltBytes  = 16    // random bytes per salt
)

// NewSalt returns a fresh hex encoded random salt.
func NewSalt() (string, error) {
	b := make([]byte, SaltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Derive computes the hex encoded hash of password under salt.
// It is deterministic for a given (password, salt) pair.
func Derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha512.New)
	return hex.EncodeToString(key)
}

// Hash generates a new salt and returns the hash of password under it.
func Hash(password string) (hash, salt string, err error) {
	salt, err = NewSalt()
	if err != nil {
		return "", "", err
	}
	return Derive(password, salt), salt, nil
}

// Verify reports whether password hashes to hash under salt.
func Verify(password, hash, salt string) bool {
	if hash == "" || salt == "" {
		return false
	}
	computed := Derive(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
