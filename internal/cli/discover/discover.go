package discover

import (
	"errors"
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/membership"
	"github.com/julianstephens/humidor/internal/recommend"
)

var errPremiumHint = errors.New("run 'humidor premium enable' to unlock recommendations")

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	recs, err := recommend.New(ctx.Store).List(ctx.Ctx)
	if errors.Is(err, membership.ErrPremiumRequired) {
		return fmt.Errorf("%w: %w", err, errPremiumHint)
	}
	if err != nil {
		return err
	}

	ctx.Println("Recommended for you:")
	for _, r := range recs {
		ctx.Printf("  [%d] %s %s  %.1f/5  %s\n", r.ID, r.Brand, r.Name, r.Rating, r.Price)
		ctx.Printf("      %s | %s | %s\n", r.Origin, r.Strength, r.FlavorProfile)
		ctx.Printf("      %s\n", r.Reason)
	}
	ctx.Println("Add one with 'humidor discover add <id>'")
	return nil
}

type AddCmd struct {
	ID int `arg:"" help:"Recommendation number from 'discover list'."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	cigar, err := recommend.New(ctx.Store).AddToHumidor(ctx.Ctx, c.ID)
	if errors.Is(err, membership.ErrPremiumRequired) {
		return fmt.Errorf("%w: %w", err, errPremiumHint)
	}
	if err != nil {
		return fmt.Errorf("failed to add recommendation: %w", err)
	}

	ctx.Printf("Added %s to your humidor (ID: %s)\n", cigar.DisplayName(), cigar.ID)
	return nil
}
