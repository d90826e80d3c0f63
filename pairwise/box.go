package pairwise

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// SymmetricKey wraps a ChaCha20-Poly1305 AEAD keyed by a pairwise DH shared
// secret. Its 12-byte nonce and 16-byte tag fix the wire layout used by
// EncryptedSecretShare.
type SymmetricKey struct {
	aead cipherAEAD
}

type cipherAEAD interface {
	Seal(dst, nonce, plaintext, additionalData []byte) []byte
	Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	NonceSize() int
	Overhead() int
}

func newSymmetricKey(key [32]byte) *SymmetricKey {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		// chacha20poly1305.New only fails on a key of the wrong length; key
		// is always exactly 32 bytes here.
		panic(err)
	}
	return &SymmetricKey{aead: aead}
}

// Seal encrypts plaintext under a fresh random nonce and ad, returning the
// nonce and the ciphertext-with-tag separately so callers can place them
// into a fixed-width wire layout.
func (k *SymmetricKey) Seal(plaintext, ad []byte) (nonce, ciphertext []byte, err error) {
	nonce = make([]byte, k.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}
	ciphertext = k.aead.Seal(nil, nonce, plaintext, ad)
	return nonce, ciphertext, nil
}

// Open decrypts ciphertext (which includes the trailing Poly1305 tag)
// under the given nonce and ad.
func (k *SymmetricKey) Open(nonce, ciphertext, ad []byte) ([]byte, error) {
	plaintext, err := k.aead.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, fmt.Errorf("pairwise: decryption failed: %w", err)
	}
	return plaintext, nil
}

// NonceSize and TagSize describe the fixed wire widths used by the
// encrypted share channel.
const (
	NonceSize = chacha20poly1305.NonceSize
	TagSize   = chacha20poly1305.Overhead
)
