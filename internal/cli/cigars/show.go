package cigars

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
)

type ShowCmd struct {
	ID string `arg:"" help:"Cigar ID."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	cigar, err := ctx.Store.GetCigar(ctx.Ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find cigar with ID %s: %w", c.ID, err)
	}

	ctx.Printf("%s\n", cigar.DisplayName())
	ctx.Printf("  ID:     %s\n", cigar.ID)
	ctx.Printf("  Size:   %s\n", cli.OrDash(cigar.Size))
	ctx.Printf("  Origin: %s\n", cli.OrDash(cigar.Origin))
	ctx.Printf("  Rating: %s\n", cli.FormatRating(cigar.Rating))
	ctx.Printf("  Image:  %s\n", cli.OrDash(cigar.ImageURI))
	ctx.Printf("  Added:  %s\n", cli.FormatDate(cigar.AddedDate))
	return nil
}
