package account

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/membership"
)

type PremiumCmd struct {
	Enable  PremiumEnableCmd  `cmd:"" help:"Turn on premium membership."`
	Disable PremiumDisableCmd `cmd:"" help:"Turn off premium membership."`
	Status  PremiumStatusCmd  `cmd:"" default:"1" help:"Show membership status."`
}

type PremiumEnableCmd struct{}

func (c *PremiumEnableCmd) Run(ctx *cli.Context) error {
	return setPremium(ctx, true)
}

type PremiumDisableCmd struct{}

func (c *PremiumDisableCmd) Run(ctx *cli.Context) error {
	return setPremium(ctx, false)
}

func setPremium(ctx *cli.Context, on bool) error {
	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	if err := membership.New(ctx.Store).SetPremium(ctx.Ctx, on); err != nil {
		return fmt.Errorf("failed to update premium mode: %w", err)
	}
	if on {
		ctx.Println("Premium enabled. Welcome to Humidor Premium!")
	} else {
		ctx.Println("Premium disabled")
	}
	return nil
}

type PremiumStatusCmd struct{}

func (c *PremiumStatusCmd) Run(ctx *cli.Context) error {
	status := membership.New(ctx.Store).Status(ctx.Ctx)
	if !status.Premium {
		ctx.Println("Membership: free")
		ctx.Println("Upgrade with 'humidor premium enable' to unlock:")
		for _, b := range membership.Benefits {
			ctx.Printf("  - %s\n", b)
		}
		return nil
	}

	ctx.Println("Membership: premium")
	ctx.Printf("Free humidifier: %s\n", humidifierState(status.HumidifierClaimed))
	return nil
}

func humidifierState(claimed bool) string {
	if claimed {
		return "claimed"
	}
	return "available"
}
