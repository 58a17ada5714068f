// Package security provides password hashing for local credentials.
package security

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword hashes a plaintext password with argon2id and returns the
// encoded form, including salt and parameters.
func HashPassword(password string) (string, error) {
	cfg := argon2.DefaultConfig()

	hash, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the encoded hash. The
// comparison is performed by the argon2 library, which is constant-time;
// callers must never compare hashes directly.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
