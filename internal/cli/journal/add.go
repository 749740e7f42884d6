package journal

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/models"
	"github.com/julianstephens/humidor/internal/validation"
)

type AddCmd struct {
	CigarName string `arg:"" optional:"" name:"cigar" help:"Name of the cigar smoked."`
	Rating    string `short:"r" help:"Rating from 1 to 5."`
	Notes     string `short:"n" help:"Tasting notes."`
	Flavors   string `short:"f" help:"Flavors, e.g. cedar, cocoa."`
	Pairing   string `short:"p" help:"Drink pairing."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	fields := entryFields{
		CigarName: c.CigarName,
		Rating:    c.Rating,
		Notes:     c.Notes,
		Flavors:   c.Flavors,
		Pairing:   c.Pairing,
	}
	if fields.CigarName == "" {
		if err := promptEntry("New journal entry", &fields); err != nil {
			return err
		}
	}

	in, err := fields.input()
	if err != nil {
		return err
	}

	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	entry, err := ctx.Store.AddJournalEntry(ctx.Ctx, in)
	if err != nil {
		return fmt.Errorf("failed to add journal entry: %w", err)
	}

	ctx.Printf("Added journal entry for %s (ID: %s)\n", entry.CigarName, entry.ID)
	return nil
}

type entryFields struct {
	CigarName, Rating, Notes, Flavors, Pairing string
}

func fieldsOf(e models.JournalEntry) entryFields {
	f := entryFields{
		CigarName: e.CigarName,
		Notes:     e.Notes,
		Flavors:   e.Flavors,
		Pairing:   e.Pairing,
	}
	if e.Rating != nil {
		f.Rating = fmt.Sprintf("%g", *e.Rating)
	}
	return f
}

// input parses, normalizes and validates the fields.
func (f entryFields) input() (models.JournalInput, error) {
	rating, err := validation.ParseRating(f.Rating)
	if err != nil {
		return models.JournalInput{}, err
	}
	in := validation.NormalizeJournal(models.JournalInput{
		CigarName: f.CigarName,
		Rating:    rating,
		Notes:     f.Notes,
		Flavors:   f.Flavors,
		Pairing:   f.Pairing,
	})
	if err := validation.New().JournalEntry(in).Err(); err != nil {
		return models.JournalInput{}, err
	}
	return in, nil
}
