// Package crypto implements the authenticated file transform used by the
// encrypt and decrypt commands, and the ways a key can be provisioned.
//
// Sealed files are laid out as a 12-byte random nonce followed by the
// AES-256-GCM ciphertext with its 16-byte tag appended.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"os"

	"filescout/internal/errors"
)

const (
	// KeySize is the length of an AES-256 key.
	KeySize = 32
	// NonceSize is the length of the nonce prefix of a sealed file.
	NonceSize = 12
	// TagSize is the length of the authentication tag GCM appends.
	TagSize = 16
)

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errors.NewCryptoError("key must be 32 bytes", "", errors.InvalidKey, nil)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.NewCryptoError("invalid key", "", errors.InvalidKey, err)
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under key with a fresh random nonce.
func Seal(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, errors.NewCryptoError("generate nonce", "", errors.EncryptFailed, err)
	}
	return nonce, aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open verifies and decrypts ciphertext. Any tampering is reported as
// ErrDecryptFailed and no plaintext is returned.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, errors.ErrDecryptFailed
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.ErrDecryptFailed
	}
	return plaintext, nil
}

// SealBytes returns the nonce-prefixed sealed form of plaintext.
func SealBytes(key, plaintext []byte) ([]byte, error) {
	nonce, ciphertext, err := Seal(key, plaintext)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(ciphertext))
	out = append(out, nonce...)
	return append(out, ciphertext...), nil
}

// OpenBytes reverses SealBytes.
func OpenBytes(key, sealed []byte) ([]byte, error) {
	if len(sealed) < NonceSize+TagSize {
		if _, err := newAEAD(key); err != nil {
			return nil, err
		}
		return nil, errors.ErrDecryptFailed
	}
	return Open(key, sealed[:NonceSize], sealed[NonceSize:])
}

// EncryptFile seals src into dst. An existing dst is overwritten.
func EncryptFile(key []byte, src, dst string) error {
	data, mode, err := readSource(src)
	if err != nil {
		return err
	}
	sealed, err := SealBytes(key, data)
	if err != nil {
		return errors.NewCryptoError("encryption failed", src, errors.KindOf(err), err)
	}
	if err := os.WriteFile(dst, sealed, mode); err != nil {
		return errors.FromOS("write file", dst, err)
	}
	return nil
}

// DecryptFile opens src into dst. Nothing is written when authentication
// fails.
func DecryptFile(key []byte, src, dst string) error {
	data, mode, err := readSource(src)
	if err != nil {
		return err
	}
	plaintext, err := OpenBytes(key, data)
	if err != nil {
		if errors.IsDecryptFailed(err) {
			return errors.NewCryptoError("decryption failed", src, errors.DecryptFailed, nil)
		}
		return err
	}
	if err := os.WriteFile(dst, plaintext, mode); err != nil {
		return errors.FromOS("write file", dst, err)
	}
	return nil
}

func readSource(path string) ([]byte, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, errors.FromOS("read file", path, err)
	}
	if info.IsDir() {
		return nil, 0, errors.NewFileError("not a file", path, errors.IsDirectory, nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.FromOS("read file", path, err)
	}
	return data, info.Mode().Perm(), nil
}
