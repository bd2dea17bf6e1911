// Package encryption provides field-level AES-256-GCM encryption for user PII.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const (
	// DevelopmentKey is used when no ENCRYPTION_KEY is configured.
	DevelopmentKey = "jobnaut_development_encryption_key_32bytes!"

	ivSize  = 16
	tagSize = 16
)

var (
	// ErrEncryption is returned when the cipher fails to seal a value.
	ErrEncryption = errors.New("failed to encrypt data")

	// ErrDecryption is returned when a value cannot be opened, including tag mismatches.
	ErrDecryption = errors.New("failed to decrypt data")
)

// Envelope is the stored form of an encrypted value. All fields are hex-encoded.
type Envelope struct {
	Data string `json:"data"`
	IV   string `json:"iv"`
	Tag  string `json:"tag"`
}

// Service encrypts and decrypts individual string values with a process-wide key.
type Service struct {
	aead cipher.AEAD
	rand io.Reader
}

// NewService derives a 256-bit key by hashing passphrase with SHA-256.
// An empty passphrase falls back to DevelopmentKey.
func NewService(passphrase string) (*Service, error) {
	if passphrase == "" {
		slog.Warn("ENCRYPTION_KEY is not set, using development key")
		passphrase = DevelopmentKey
	}
	key := sha256.Sum256([]byte(passphrase))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return &Service{aead: aead, rand: rand.Reader}, nil
}

// Encrypt seals plaintext under a fresh random IV. Empty input yields nil.
func (s *Service) Encrypt(plaintext string) (*Envelope, error) {
	if plaintext == "" {
		return nil, nil
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(s.rand, iv); err != nil {
		slog.Error("encryption failed", "error", err)
		return nil, fmt.Errorf("%w: read iv: %v", ErrEncryption, err)
	}

	sealed := s.aead.Seal(nil, iv, []byte(plaintext), nil)
	ct, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	return &Envelope{
		Data: hex.EncodeToString(ct),
		IV:   hex.EncodeToString(iv),
		Tag:  hex.EncodeToString(tag),
	}, nil
}

// Decrypt opens env and verifies its authentication tag. A nil envelope yields "".
func (s *Service) Decrypt(env *Envelope) (string, error) {
	if env == nil {
		return "", nil
	}

	ct, err := hex.DecodeString(env.Data)
	if err != nil {
		return "", fmt.Errorf("%w: data: %v", ErrDecryption, err)
	}
	iv, err := hex.DecodeString(env.IV)
	if err != nil || len(iv) != ivSize {
		return "", fmt.Errorf("%w: malformed iv", ErrDecryption)
	}
	tag, err := hex.DecodeString(env.Tag)
	if err != nil || len(tag) != tagSize {
		return "", fmt.Errorf("%w: malformed tag", ErrDecryption)
	}

	plain, err := s.aead.Open(nil, iv, append(ct, tag...), nil)
	if err != nil {
		slog.Error("decryption failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return string(plain), nil
}
