// Package credential stores the ResourceHub API token in the system
// keyring and builds the authorization header from it.
package credential

import (
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

const serviceName = "resourcehub"

// tokenKey is the keyring entry holding the API token.
const tokenKey = "api-token"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/resourcehub/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("resourcehub-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Token retrieves the stored API token. The RESOURCEHUB_TOKEN
// environment variable takes precedence over the keyring.
func Token() (string, error) {
	if tok := os.Getenv("RESOURCEHUB_TOKEN"); tok != "" {
		return tok, nil
	}

	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(tokenKey)
	if err != nil {
		return "", fmt.Errorf("getting API token: %w", err)
	}

	return string(item.Data), nil
}

// SetToken stores the API token in the system keyring.
func SetToken(value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  tokenKey,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting API token: %w", err)
	}

	return nil
}

// DeleteToken removes the API token from the system keyring.
func DeleteToken() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Remove(tokenKey); err != nil {
		return fmt.Errorf("deleting API token: %w", err)
	}

	return nil
}

// AuthHeader returns the Authorization header value sent with every
// API request.
func AuthHeader() (string, error) {
	tok, err := Token()
	if err != nil {
		return "", err
	}
	return "Bearer " + tok, nil
}
