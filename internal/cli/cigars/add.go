package cigars

import (
	"fmt"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/models"
	"github.com/julianstephens/humidor/internal/validation"
)

type AddCmd struct {
	Brand  string `arg:"" optional:"" help:"Brand, e.g. Padron."`
	Name   string `arg:"" optional:"" help:"Line or vitola name, e.g. 1964 Anniversary."`
	Size   string `short:"s" help:"Size, e.g. 6 x 52."`
	Origin string `short:"o" help:"Country of origin."`
	Rating string `short:"r" help:"Rating from 1 to 5."`
	Image  string `short:"i" help:"Image path or URI."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	fields := cigarFields{
		Brand:  c.Brand,
		Name:   c.Name,
		Size:   c.Size,
		Origin: c.Origin,
		Rating: c.Rating,
		Image:  c.Image,
	}
	if fields.Brand == "" || fields.Name == "" {
		if err := promptCigar("Add cigar", &fields); err != nil {
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

	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	cigar, err := ctx.Store.AddCigar(ctx.Ctx, in)
	if err != nil {
		return fmt.Errorf("failed to add cigar: %w", err)
	}

	ctx.Printf("Added cigar: %s (ID: %s)\n", cigar.DisplayName(), cigar.ID)
	return nil
}

// cigarFields is the raw text form of a cigar, as typed on the command line or in a form.
type cigarFields struct {
	Brand, Name, Size, Origin, Rating, Image string
}

func fieldsOf(c models.Cigar) cigarFields {
	f := cigarFields{
		Brand:  c.Brand,
		Name:   c.Name,
		Size:   c.Size,
		Origin: c.Origin,
		Image:  c.ImageURI,
	}
	if c.Rating != nil {
		f.Rating = fmt.Sprintf("%g", *c.Rating)
	}
	return f
}

func (f cigarFields) input() (models.CigarInput, error) {
	rating, err := validation.ParseRating(f.Rating)
	if err != nil {
		return models.CigarInput{}, err
	}
	image, err := cli.ImageURI(f.Image)
	if err != nil {
		return models.CigarInput{}, err
	}
	return models.CigarInput{
		Brand:    f.Brand,
		Name:     f.Name,
		Size:     f.Size,
		Origin:   f.Origin,
		Rating:   rating,
		ImageURI: image,
	}, nil
}
