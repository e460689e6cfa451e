package cipher

import (
	// Go Internal Packages
	"bytes"
	"crypto/aes"
	gocipher "crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	// Local Packages
	errors "remit-api/errors"
)

// Delimiter separates the hex-encoded IV from the hex-encoded
// ciphertext in an envelope. Neither half can contain it.
const Delimiter = ":"

const keySize = 32

// Cipher seals and opens payout payloads with AES-256-CBC. A fresh
// random IV is drawn per Encrypt call and embedded in the envelope, so
// the envelope alone is sufficient to decrypt.
type Cipher struct {
	key []byte
}

// New builds a Cipher from 32 bytes of key material.
func New(key []byte) (*Cipher, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("cipher key must be %d bytes, got %d", keySize, len(key))
	}
	return &Cipher{key: bytes.Clone(key)}, nil
}

// NewFromHex builds a Cipher from a hex-encoded 32-byte key, the form
// the key takes in configuration.
func NewFromHex(hexKey string) (*Cipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("cipher key is not valid hex: %w", err)
	}
	return New(key)
}

// Encrypt seals plaintext into a hex(iv):hex(ciphertext) envelope.
// Two calls on the same plaintext produce different envelopes.
func (c *Cipher) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("cannot draw iv: %w", err)
	}

	padded := pad(plaintext)
	ciphertext := make([]byte, len(padded))
	gocipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + Delimiter + hex.EncodeToString(ciphertext), nil
}

// Decrypt opens an envelope produced by Encrypt. It returns
// ErrMalformedEnvelope when the envelope does not have the
// hex(iv):hex(ciphertext) shape, and ErrDecryptionFailed when the key
// or data is wrong; it never returns partial plaintext.
func (c *Cipher) Decrypt(envelope string) ([]byte, error) {
	parts := strings.Split(envelope, Delimiter)
	if len(parts) != 2 {
		return nil, errors.ErrMalformedEnvelope
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return nil, errors.ErrMalformedEnvelope
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return nil, errors.ErrMalformedEnvelope
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	gocipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return unpad(plaintext)
}

// pad applies PKCS#7 padding up to the AES block size.
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

// unpad strips PKCS#7 padding, rejecting anything inconsistent. A bad
// key almost always surfaces here as garbled padding.
func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, errors.ErrDecryptionFailed
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, errors.ErrDecryptionFailed
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errors.ErrDecryptionFailed
		}
	}
	return b[:len(b)-n], nil
}
