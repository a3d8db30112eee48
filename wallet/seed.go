// Package wallet derives the spending session from a BIP39 recovery phrase:
// the legacy P2PKH address at m/44'/coin'/0'/0/0 and an opaque signing
// capability over its key.
package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/argon2"
)

const (
	// Mnemonic entropy sizes.
	Mnemonic12Words = 128
	Mnemonic24Words = 256

	// Argon2id parameters for seed encryption at rest.
	argon2Time        = 3
	argon2Memory      = 64 * 1024 // KiB
	argon2Parallelism = 4
	argon2KeyLen      = 32

	saltLen     = 16
	nonceLen    = 12
	checksumLen = 4
)

// GenerateMnemonic creates a new BIP39 mnemonic with the given entropy bits
// (Mnemonic12Words or Mnemonic24Words).
func GenerateMnemonic(entropyBits int) (string, error) {
	if entropyBits != Mnemonic12Words && entropyBits != Mnemonic24Words {
		return "", ErrInvalidEntropy
	}

	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("wallet: generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("wallet: generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic reports whether the phrase is valid BIP39.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// SeedFromMnemonic derives the 64-byte BIP39 seed. The passphrase may be
// empty; it still participates in derivation.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, ErrInvalidMnemonic
	}
	return seed, nil
}

// EncryptSeed seals the seed for at-rest storage with Argon2id + AES-256-GCM.
//
// Output layout: salt(16) || nonce(12) || GCM(key, nonce, seed || checksum)
// where checksum = SHA256(seed)[:4], used to detect wrong-password decrypts.
func EncryptSeed(seed []byte, password string) ([]byte, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("wallet: generate salt: %w", err)
	}

	gcm, err := seedCipher(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("wallet: generate nonce: %w", err)
	}

	digest := sha256.Sum256(seed)
	plaintext := append(append([]byte{}, seed...), digest[:checksumLen]...)

	out := make([]byte, 0, saltLen+nonceLen+len(plaintext)+gcm.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// DecryptSeed reverses EncryptSeed and verifies the embedded checksum.
func DecryptSeed(encrypted []byte, password string) ([]byte, error) {
	if len(encrypted) < saltLen+nonceLen+checksumLen {
		return nil, ErrDecryptionFailed
	}

	salt := encrypted[:saltLen]
	nonce := encrypted[saltLen : saltLen+nonceLen]
	ciphertext := encrypted[saltLen+nonceLen:]

	gcm, err := seedCipher(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil || len(plaintext) < checksumLen {
		return nil, ErrDecryptionFailed
	}

	seed := plaintext[:len(plaintext)-checksumLen]
	digest := sha256.Sum256(seed)
	if subtle.ConstantTimeCompare(plaintext[len(plaintext)-checksumLen:], digest[:checksumLen]) != 1 {
		return nil, ErrChecksumMismatch
	}
	return seed, nil
}

// seedCipher builds the AES-256-GCM AEAD for a password and salt.
func seedCipher(password string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Parallelism, argon2KeyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("wallet: AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("wallet: GCM: %w", err)
	}
	return gcm, nil
}
