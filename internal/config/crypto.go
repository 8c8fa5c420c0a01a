package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"os"
)

var key []byte

var ErrInvalidCode = errors.New("invalid or tampered code")

func InitCrypto() {
	k := os.Getenv("CRYPTO_KEY")
	if len(k) != 32 {
		panic("CRYPTO_KEY must be 32 bytes")
	}
	key = []byte(k)
}

// Seal wraps a plaintext payload in AES-GCM and encodes it for use in URLs.
// Invitation codes are minted this way so a team id can travel through an
// invite link without being forgeable.
func Seal(payload string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(payload), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Unseal reverses Seal. Any decode or authentication failure is reported
// as ErrInvalidCode so callers never leak cipher details to clients.
func Unseal(encoded string) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCode
	}
	nonceSize := aead.NonceSize()
	if len(sealed) < nonceSize {
		return "", ErrInvalidCode
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	payload, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidCode
	}
	return string(payload), nil
}
