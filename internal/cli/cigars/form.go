package cigars

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/humidor/internal/validation"
)

// promptCigar fills f interactively. Tests replace it.
var promptCigar = func(title string, f *cigarFields) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Brand").Value(&f.Brand).Validate(required("brand")),
			huh.NewInput().Title("Name").Value(&f.Name).Validate(required("name")),
			huh.NewInput().Title("Size").Placeholder("6 x 52").Value(&f.Size),
			huh.NewInput().Title("Origin").Placeholder("Nicaragua").Value(&f.Origin),
			huh.NewInput().Title("Rating (1-5)").Value(&f.Rating).Validate(func(s string) error {
				_, err := validation.ParseRating(s)
				return err
			}),
			huh.NewInput().Title("Image").Placeholder("~/Pictures/padron.jpg").Value(&f.Image),
		),
	)
	return form.Run()
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}
