package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"os"
	"strings"

	"filescout/internal/errors"
	"filescout/internal/log"

	"golang.org/x/crypto/argon2"
)

// PassphraseEnv names the variable a passphrase can be supplied through.
const PassphraseEnv = "FILESCOUT_PASSPHRASE"

// Argon2id parameters for passphrase stretching.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// KeyOptions lists where a key may come from. Sources are tried in field
// order and the first one that yields a value wins.
type KeyOptions struct {
	// EnvVar names an environment variable holding the key.
	EnvVar string
	// File is a path to a file holding the key.
	File string
	// Salt is mixed into a passphrase-derived key.
	Salt string
	// Passphrase, when set, is called if no other source supplied a key
	// and the passphrase variable is unset.
	Passphrase func() ([]byte, error)
}

// LoadKey resolves a key from opts. It returns ErrNoKey when no source is
// configured.
func LoadKey(opts KeyOptions) ([]byte, error) {
	if opts.EnvVar != "" {
		if v, ok := os.LookupEnv(opts.EnvVar); ok && v != "" {
			key, err := ParseKey(v)
			if err != nil {
				return nil, errors.NewCryptoError("invalid key in environment", opts.EnvVar, errors.InvalidKey, err)
			}
			log.Debugf("using key from $%s", opts.EnvVar)
			return key, nil
		}
	}

	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, errors.FromOS("read key file", opts.File, err)
		}
		key, err := ParseKey(string(data))
		if err != nil {
			return nil, errors.NewCryptoError("invalid key file", opts.File, errors.InvalidKey, err)
		}
		log.Debugf("using key from %s", opts.File)
		return key, nil
	}

	if v := os.Getenv(PassphraseEnv); v != "" {
		return DeriveKey([]byte(v), opts.Salt)
	}
	if opts.Passphrase != nil {
		pass, err := opts.Passphrase()
		if err != nil {
			return nil, errors.NewCryptoError("read passphrase", "", errors.InvalidKey, err)
		}
		return DeriveKey(pass, opts.Salt)
	}
	return nil, errors.ErrNoKey
}

// ParseKey decodes a 32-byte key written as hex, standard or URL-safe
// base64 (padded or not), or the raw bytes themselves. Surrounding
// whitespace is ignored.
func ParseKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)

	if len(s) == hex.EncodedLen(KeySize) {
		if key, err := hex.DecodeString(s); err == nil {
			return key, nil
		}
	}
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding,
		base64.URLEncoding, base64.RawURLEncoding,
	} {
		if key, err := enc.DecodeString(s); err == nil && len(key) == KeySize {
			return key, nil
		}
	}
	if len(s) == KeySize {
		return []byte(s), nil
	}
	return nil, errors.NewKind(errors.InvalidKey, "key must be 32 bytes as hex, base64 or raw text")
}

// DeriveKey stretches a passphrase into a key with Argon2id.
func DeriveKey(passphrase []byte, salt string) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, errors.NewCryptoError("empty passphrase", "", errors.InvalidKey, nil)
	}
	if salt == "" {
		return nil, errors.NewCryptoError("passphrase keys need crypto.salt", "", errors.InvalidKey, nil)
	}
	return argon2.IDKey(passphrase, []byte(salt), argonTime, argonMemory, argonThreads, KeySize), nil
}
