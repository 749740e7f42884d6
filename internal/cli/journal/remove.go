package journal

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
)

type RemoveCmd struct {
	ID string `arg:"" help:"Journal entry ID to remove."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.Store.GetJournalEntry(ctx.Ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry with ID %s: %w", c.ID, err)
	}

	ok, err := ctx.Confirm(fmt.Sprintf("Delete the %s entry from %s?", entry.CigarName, cli.FormatDate(entry.Date)))
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

	if _, err := ctx.Store.RemoveJournalEntry(ctx.Ctx, c.ID); err != nil {
		return fmt.Errorf("failed to remove journal entry: %w", err)
	}

	ctx.Printf("Removed journal entry for %s\n", entry.CigarName)
	return nil
}
