package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	iterations = 10000
	keyLength  = 64
)

// Encryptor derives salted PBKDF2-SHA512 password hashes.
type Encryptor struct{}

func NewEncryptor() *Encryptor { return &Encryptor{} }

func (e *Encryptor) Generate(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = hex.EncodeToString(raw)
	return e.hashWith(password, salt), salt, nil
}

func (e *Encryptor) Compare(password, salt, hash string) bool {
	computed := e.hashWith(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func (e *Encryptor) hashWith(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	return hex.EncodeToString(key)
}
