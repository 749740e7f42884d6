package cigars

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/validation"
)

type EditCmd struct {
	ID          string  `arg:"" help:"Cigar ID to edit."`
	Brand       *string `help:"New brand."`
	Name        *string `help:"New name."`
	Size        *string `short:"s" help:"New size."`
	Origin      *string `short:"o" help:"New origin."`
	Rating      *string `short:"r" help:"New rating from 1 to 5. Pass an empty value to clear it."`
	Image       *string `short:"i" help:"New image path or URI."`
	Interactive bool    `help:"Edit all fields in a form."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	// Held across the prompt so the record cannot change under the form
	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	cigar, err := ctx.Store.GetCigar(ctx.Ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find cigar with ID %s: %w", c.ID, err)
	}

	fields := fieldsOf(cigar)
	setIf(&fields.Brand, c.Brand)
	setIf(&fields.Name, c.Name)
	setIf(&fields.Size, c.Size)
	setIf(&fields.Origin, c.Origin)
	setIf(&fields.Rating, c.Rating)
	setIf(&fields.Image, c.Image)

	if c.Interactive {
		if err := promptCigar("Edit cigar", &fields); err != nil {
			return err
		}
	}

	in, err := fields.input()
	if err != nil {
		return err
	}
	in = validation.NormalizeCigar(in)
	if err := validation.New().Cigar(in).Err(); err != nil {
		return err
	}

	updated, err := ctx.Store.UpdateCigar(ctx.Ctx, c.ID, in)
	if err != nil {
		return fmt.Errorf("failed to update cigar: %w", err)
	}

	ctx.Printf("Updated cigar: %s (ID: %s)\n", updated.DisplayName(), updated.ID)
	return nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
