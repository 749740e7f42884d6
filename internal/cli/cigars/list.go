package cigars

import (
	"encoding/json"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/humidor/internal/cli"
)

type ListCmd struct {
	JSON bool `help:"Print the collection as JSON."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	cigars := ctx.Store.ListCigars(ctx.Ctx)

	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(cigars)
	}

	if len(cigars) == 0 {
		ctx.Println("Your humidor is empty")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "CIGAR", "SIZE", "ORIGIN", "RATING", "ADDED")
	for _, cigar := range cigars {
		t.Row(
			cigar.ID,
			cigar.DisplayName(),
			cli.OrDash(cigar.Size),
			cli.OrDash(cigar.Origin),
			cli.FormatRating(cigar.Rating),
			cli.FormatDate(cigar.AddedDate),
		)
	}
	ctx.Println(t.Render())
	ctx.Printf("%d cigar(s)\n", len(cigars))
	return nil
}
