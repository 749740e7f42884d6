package account

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
)

type ClearCmd struct{}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	ok, err := ctx.Confirm("This deletes every cigar, journal entry and membership setting. Continue?")
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

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ClearAll(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}

	ctx.Println("All data cleared")
	return nil
}
