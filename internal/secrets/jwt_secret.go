package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// KeyringService namespaces our entries in the OS credential store.
const KeyringService = "neighborfit-engine"

// EnvJWTSecret overrides the keyring, for containers and CI where no
// credential store is available.
const EnvJWTSecret = "NEIGHBORFIT_JWT_SECRET"

// JWTSecret returns the token-signing secret, generating and persisting one
// on first run. Lookup order is environment, then keyring.
func JWTSecret(account string) ([]byte, error) {
	if v := os.Getenv(EnvJWTSecret); v != "" {
		return []byte(v), nil
	}

	s, err := keyring.Get(KeyringService, account)
	if err == nil && s != "" {
		return []byte(s), nil
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("keyring get: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	fresh := hex.EncodeToString(buf)
	if err := keyring.Set(KeyringService, account, fresh); err != nil {
		return nil, fmt.Errorf("keyring set: %w", err)
	}
	return []byte(fresh), nil
}
