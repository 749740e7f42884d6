// Package membership implements the locally persisted premium toggle and the
// free humidifier perk that comes with it. Nothing is billed or verified.
package membership

import (
	"context"
	"errors"

	"github.com/julianstephens/humidor/internal/logger"
)

var (
	ErrPremiumRequired = errors.New("premium membership required")
	ErrAlreadyClaimed  = errors.New("free humidifier already claimed")
)

// Benefits lists what premium advertises.
var Benefits = []string{
	"AI-Powered Recommendations",
	"Market Insights & Pricing",
	"Community Access",
	"Free Premium Humidifier",
	"Cloud Backup & Sync",
}

// FlagStore is the part of the record store membership needs.
type FlagStore interface {
	GetPremiumMode(ctx context.Context) bool
	SetPremiumMode(ctx context.Context, v bool) (bool, error)
	GetHumidifierClaimed(ctx context.Context) bool
	SetHumidifierClaimed(ctx context.Context, v bool) (bool, error)
}

// Status is a snapshot of both flags.
type Status struct {
	Premium           bool
	HumidifierClaimed bool
}

type Service struct {
	store FlagStore
}

func New(store FlagStore) *Service {
	return &Service{store: store}
}

func (s *Service) Status(ctx context.Context) Status {
	return Status{
		Premium:           s.store.GetPremiumMode(ctx),
		HumidifierClaimed: s.store.GetHumidifierClaimed(ctx),
	}
}

// SetPremium turns premium mode on or off. Turning it off keeps a claimed humidifier claimed.
func (s *Service) SetPremium(ctx context.Context, on bool) error {
	if _, err := s.store.SetPremiumMode(ctx, on); err != nil {
		return err
	}
	logger.Info("Premium mode changed", "premium", on)
	return nil
}

// ClaimHumidifier records the one-time perk. It requires premium and fails once claimed.
func (s *Service) ClaimHumidifier(ctx context.Context) error {
	if !s.store.GetPremiumMode(ctx) {
		return ErrPremiumRequired
	}
	if s.store.GetHumidifierClaimed(ctx) {
		return ErrAlreadyClaimed
	}
	if _, err := s.store.SetHumidifierClaimed(ctx, true); err != nil {
		return err
	}
	logger.Info("Free humidifier claimed")
	return nil
}
