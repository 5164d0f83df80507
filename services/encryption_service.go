package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"crm_legal_go/config"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrInvalidCiphertext indicates the ciphertext is malformed or too short
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// backupMagic prefixes encrypted backups so a restore can tell them apart
// from a plain SQLite file
var backupMagic = []byte("CRMLEGAL1")

// EncryptBackup seals data with XChaCha20-Poly1305. The output is
// magic || nonce || ciphertext.
func EncryptBackup(key, data []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(backupMagic)+len(nonce)+len(data)+aead.Overhead())
	out = append(out, backupMagic...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, data, backupMagic), nil
}

// DecryptBackup reverses EncryptBackup
func DecryptBackup(key, sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if !IsEncryptedBackup(sealed) || len(sealed) < len(backupMagic)+aead.NonceSize() {
		return nil, ErrInvalidCiphertext
	}
	body := sealed[len(backupMagic):]
	nonce, ciphertext := body[:aead.NonceSize()], body[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, backupMagic)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// IsEncryptedBackup reports whether data starts with the backup header
func IsEncryptedBackup(data []byte) bool {
	if len(data) < len(backupMagic) {
		return false
	}
	return string(data[:len(backupMagic)]) == string(backupMagic)
}

// GenerateBackupKey returns a new random key encoded for the BACKUP_KEY variable
func GenerateBackupKey() (string, error) {
	key := make([]byte, config.BackupKeyLength)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}
