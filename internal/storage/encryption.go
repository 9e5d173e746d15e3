package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
)

const (
	// encryptionMagic is prepended to encrypted backup files.
	encryptionMagic = "DLEDGER1"

	// Argon2id parameters (RFC 9106 recommendations).
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // KiB
	argon2Threads = 4
	argon2KeyLen  = 32 // AES-256

	saltLength = 32
)

// deriveKey derives an AES-256 key from a passphrase using Argon2id.
func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

// EncryptData seals plaintext with AES-256-GCM under a passphrase-derived
// key. The output layout is salt || nonce || ciphertext+tag.
func EncryptData(plaintext []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("passphrase required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecryptData opens data sealed by EncryptData.
func DecryptData(encrypted []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, fmt.Errorf("passphrase required")
	}

	// salt + 12-byte nonce + 16-byte tag
	if len(encrypted) < saltLength+12+16 {
		return nil, fmt.Errorf("encrypted data too short")
	}

	salt := encrypted[:saltLength]
	rest := encrypted[saltLength:]

	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(rest) < nonceSize {
		return nil, fmt.Errorf("encrypted data too short for nonce")
	}

	plaintext, err := gcm.Open(nil, rest[:nonceSize], rest[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong passphrase or corrupted data): %w", err)
	}
	return plaintext, nil
}

// EncryptFile reads sourcePath, seals it, and writes magic header plus
// ciphertext to destPath.
func EncryptFile(sourcePath, destPath, password string) error {
	plaintext, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	encrypted, err := EncryptData(plaintext, password)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() { _ = dest.Close() }()

	if _, err := dest.Write([]byte(encryptionMagic)); err != nil {
		return fmt.Errorf("failed to write magic header: %w", err)
	}
	if _, err := dest.Write(encrypted); err != nil {
		return fmt.Errorf("failed to write encrypted data: %w", err)
	}
	return nil
}

// DecryptFile reverses EncryptFile.
func DecryptFile(sourcePath, destPath, password string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read encrypted file: %w", err)
	}

	if len(data) < len(encryptionMagic) || string(data[:len(encryptionMagic)]) != encryptionMagic {
		return fmt.Errorf("file is not an encrypted backup")
	}

	plaintext, err := DecryptData(data[len(encryptionMagic):], password)
	if err != nil {
		return err
	}

	if err := os.WriteFile(destPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("failed to write decrypted file: %w", err)
	}
	return nil
}

// IsEncrypted reports whether the file carries the encrypted-backup header.
func IsEncrypted(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer func() { _ = file.Close() }()

	header := make([]byte, len(encryptionMagic))
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		return false, err
	}
	return n == len(encryptionMagic) && string(header) == encryptionMagic, nil
}
