package cigars

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
)

type RemoveCmd struct {
	ID string `arg:"" help:"Cigar ID to remove."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	cigar, err := ctx.Store.GetCigar(ctx.Ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find cigar with ID %s: %w", c.ID, err)
	}

	ok, err := ctx.Confirm(fmt.Sprintf("Remove %s from your humidor?", cigar.DisplayName()))
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Cancelled")
		return nil
	}

	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	remaining, err := ctx.Store.RemoveCigar(ctx.Ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to remove cigar: %w", err)
	}

	ctx.Printf("Removed cigar: %s (%d left)\n", cigar.DisplayName(), len(remaining))
	return nil
}
