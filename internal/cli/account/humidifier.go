package account

import (
	"errors"
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/membership"
)

type HumidifierCmd struct {
	Claim  HumidifierClaimCmd  `cmd:"" help:"Claim the free humidifier included with premium."`
	Status HumidifierStatusCmd `cmd:"" default:"1" help:"Show whether the humidifier was claimed."`
}

type HumidifierClaimCmd struct{}

func (c *HumidifierClaimCmd) Run(ctx *cli.Context) error {
	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	err = membership.New(ctx.Store).ClaimHumidifier(ctx.Ctx)
	switch {
	case errors.Is(err, membership.ErrPremiumRequired):
		return fmt.Errorf("%w: run 'humidor premium enable' first", err)
	case errors.Is(err, membership.ErrAlreadyClaimed):
		ctx.Println("Your free humidifier was already claimed")
		return nil
	case err != nil:
		return fmt.Errorf("failed to claim humidifier: %w", err)
	}

	ctx.Println("Free humidifier claimed! It will ship within 5-7 business days.")
	return nil
}

type HumidifierStatusCmd struct{}

func (c *HumidifierStatusCmd) Run(ctx *cli.Context) error {
	status := membership.New(ctx.Store).Status(ctx.Ctx)
	switch {
	case status.HumidifierClaimed:
		ctx.Println("Free humidifier: claimed")
	case status.Premium:
		ctx.Println("Free humidifier: available, claim it with 'humidor humidifier claim'")
	default:
		ctx.Println("Free humidifier: requires premium")
	}
	return nil
}
