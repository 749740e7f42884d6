package journal

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
)

type EditCmd struct {
	ID          string  `arg:"" help:"Journal entry ID to edit."`
	CigarName   *string `name:"cigar" help:"New cigar name."`
	Rating      *string `short:"r" help:"New rating from 1 to 5. Pass an empty value to clear it."`
	Notes       *string `short:"n" help:"New notes."`
	Flavors     *string `short:"f" help:"New flavors."`
	Pairing     *string `short:"p" help:"New pairing."`
	Interactive bool    `help:"Edit all fields in a form."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	// Held across the prompt so the record cannot change under the form
	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	entry, err := ctx.Store.GetJournalEntry(ctx.Ctx, c.ID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry with ID %s: %w", c.ID, err)
	}

	fields := fieldsOf(entry)
	for dst, v := range map[*string]*string{
		&fields.CigarName: c.CigarName,
		&fields.Rating:    c.Rating,
		&fields.Notes:     c.Notes,
		&fields.Flavors:   c.Flavors,
		&fields.Pairing:   c.Pairing,
	} {
		if v != nil {
			*dst = *v
		}
	}

	if c.Interactive {
		if err := promptEntry("Edit journal entry", &fields); err != nil {
			return err
		}
	}

	in, err := fields.input()
	if err != nil {
		return err
	}

	updated, err := ctx.Store.UpdateJournalEntry(ctx.Ctx, c.ID, in)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}

	ctx.Printf("Updated journal entry for %s (ID: %s)\n", updated.CigarName, updated.ID)
	return nil
}
