package storage

import (
	"context"
	"encoding/json"

	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/logger"
)

// GetPremiumMode reports the premium flag. Unset or unreadable flags are false.
func (s *Store) GetPremiumMode(ctx context.Context) bool {
	return s.getFlag(ctx, constants.KeyPremiumMode)
}

// SetPremiumMode overwrites the premium flag and returns the value written.
func (s *Store) SetPremiumMode(ctx context.Context, value bool) (bool, error) {
	return s.setFlag(ctx, constants.KeyPremiumMode, "set premium mode", value)
}

// GetHumidifierClaimed reports whether the free humidifier was claimed.
func (s *Store) GetHumidifierClaimed(ctx context.Context) bool {
	return s.getFlag(ctx, constants.KeyFreeHumidifierClaimed)
}

// SetHumidifierClaimed overwrites the humidifier flag and returns the value written.
func (s *Store) SetHumidifierClaimed(ctx context.Context, value bool) (bool, error) {
	return s.setFlag(ctx, constants.KeyFreeHumidifierClaimed, "set humidifier claimed", value)
}

func (s *Store) getFlag(ctx context.Context, key string) bool {
	raw, found, err := s.medium.Get(ctx, key)
	if err != nil {
		logger.Warn("Failed to read flag", "key", key, "error", err)
		return false
	}
	if !found {
		return false
	}
	var value bool
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.Warn("Discarding unreadable flag payload", "key", key, "error", err)
		return false
	}
	return value
}

func (s *Store) setFlag(ctx context.Context, key, op string, value bool) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, &WriteError{Op: op, Key: key, Err: err}
	}
	if err := s.medium.Set(ctx, key, string(data)); err != nil {
		logger.Error("Failed to write flag", "key", key, "error", err)
		return false, &WriteError{Op: op, Key: key, Err: err}
	}
	return value, nil
}
