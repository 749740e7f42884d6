package journal

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
)

type ShowCmd struct {
	ID string `arg:"" help:"Journal entry ID."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Store.GetJournalEntry(ctx.Ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry with ID %s: %w", c.ID, err)
	}

	ctx.Printf("%s, %s\n", e.CigarName, cli.FormatDate(e.Date))
	ctx.Printf("  ID:      %s\n", e.ID)
	ctx.Printf("  Rating:  %s\n", cli.FormatRating(e.Rating))
	ctx.Printf("  Flavors: %s\n", cli.OrDash(e.Flavors))
	ctx.Printf("  Pairing: %s\n", cli.OrDash(e.Pairing))
	ctx.Printf("  Notes:   %s\n", cli.OrDash(e.Notes))
	return nil
}
