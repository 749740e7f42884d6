package journal

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/humidor/internal/validation"
)

var promptEntry = func(title string, f *entryFields) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Cigar").Value(&f.CigarName).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("cigar name is required")
				}
				return nil
			}),
			huh.NewInput().Title("Rating (1-5)").Value(&f.Rating).Validate(func(s string) error {
				_, err := validation.ParseRating(s)
				return err
			}),
			huh.NewText().Title("Notes").Value(&f.Notes),
			huh.NewInput().Title("Flavors").Placeholder("cedar, cocoa, leather").Value(&f.Flavors),
			huh.NewInput().Title("Pairing").Placeholder("espresso").Value(&f.Pairing),
		),
	)
	return form.Run()
}
