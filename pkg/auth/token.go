package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "pinpager"
	keyringKey     = "telegram_bot_token"
)

// ErrTokenNotFound indicates no bot token has been stored yet
var ErrTokenNotFound = errors.New("bot token not found")

// TokenStore stores the Telegram bot token in the system keychain so it
// never has to live in a config file or shell history
type TokenStore struct{}

// NewTokenStore creates a keychain-backed token store, verifying that the
// keyring is usable on this system
func NewTokenStore() (*TokenStore, error) {
	testKey := "test_availability"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &TokenStore{}, nil
}

// Store saves the bot token to the system keychain
func (s *TokenStore) Store(token string) error {
	if token == "" {
		return errors.New("token must not be empty")
	}
	if err := keyring.Set(keyringService, keyringKey, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// Retrieve gets the bot token from the system keychain
func (s *TokenStore) Retrieve() (string, error) {
	token, err := keyring.Get(keyringService, keyringKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to retrieve token from keyring: %w", err)
	}
	return token, nil
}

// Delete removes the bot token from the system keychain
func (s *TokenStore) Delete() error {
	err := keyring.Delete(keyringService, keyringKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

// Exists checks whether a bot token is stored
func (s *TokenStore) Exists() bool {
	_, err := keyring.Get(keyringService, keyringKey)
	return err == nil
}
