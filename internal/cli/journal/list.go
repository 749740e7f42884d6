package journal

import (
	"encoding/json"

	"github.com/julianstephens/humidor/internal/cli"
)

type ListCmd struct {
	JSON    bool `help:"Print the journal as JSON."`
	ShowIDs bool `help:"Show entry IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	entries := ctx.Store.ListJournalEntries(ctx.Ctx)

	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		ctx.Println("No journal entries yet")
		return nil
	}

	ctx.Println("Journal:")
	for _, e := range entries {
		idStr := ""
		if c.ShowIDs {
			idStr = " (ID: " + e.ID + ")"
		}
		ctx.Printf("  %s  %s%s  %s\n", cli.FormatDate(e.Date), e.CigarName, idStr, cli.FormatRating(e.Rating))
		if e.Notes != "" {
			ctx.Printf("      %s\n", e.Notes)
		}
	}
	return nil
}
