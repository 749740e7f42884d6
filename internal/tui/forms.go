package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/models"
	"github.com/julianstephens/humidor/internal/validation"
)

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func validRating(s string) error {
	_, err := validation.ParseRating(s)
	return err
}

// NewCigarForm creates a new form for adding or editing cigars
func NewCigarForm(title string, fm *CigarFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Title("Brand").
				Value(&fm.Brand).
				Validate(notBlank("brand")),
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Size").
				Placeholder("6 x 52").
				Value(&fm.Size),
			huh.NewInput().
				Title("Origin").
				Placeholder("Nicaragua").
				Value(&fm.Origin),
			huh.NewInput().
				Title("Rating (1-5)").
				Value(&fm.Rating).
				Validate(validRating),
			huh.NewInput().
				Title("Image").
				Description("Local path or URI").
				Value(&fm.Image),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewJournalForm creates a new form for adding or editing journal entries
func NewJournalForm(title string, fm *JournalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().
				Title("Cigar").
				Value(&fm.CigarName).
				Validate(notBlank("cigar name")),
			huh.NewInput().
				Title("Rating (1-5)").
				Value(&fm.Rating).
				Validate(validRating),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
			huh.NewInput().
				Title("Flavors").
				Placeholder("cedar, cocoa, leather").
				Value(&fm.Flavors),
			huh.NewInput().
				Title("Pairing").
				Placeholder("espresso").
				Value(&fm.Pairing),
		),
	).WithTheme(huh.ThemeDracula())
}

func cigarFormFrom(c models.Cigar) *CigarFormModel {
	fm := &CigarFormModel{
		Brand:  c.Brand,
		Name:   c.Name,
		Size:   c.Size,
		Origin: c.Origin,
		Image:  c.ImageURI,
	}
	if c.Rating != nil {
		fm.Rating = fmt.Sprintf("%g", *c.Rating)
	}
	return fm
}

func journalFormFrom(e models.JournalEntry) *JournalFormModel {
	fm := &JournalFormModel{
		CigarName: e.CigarName,
		Notes:     e.Notes,
		Flavors:   e.Flavors,
		Pairing:   e.Pairing,
	}
	if e.Rating != nil {
		fm.Rating = fmt.Sprintf("%g", *e.Rating)
	}
	return fm
}

// saveCigar adds or updates the cigar described by the form.
func (m *Model) saveCigar() error {
	fm := m.cigarForm
	if fm == nil {
		return errors.New("no cigar form open")
	}
	rating, err := validation.ParseRating(fm.Rating)
	if err != nil {
		return err
	}
	image, err := cli.ImageURI(fm.Image)
	if err != nil {
		return err
	}
	in := validation.NormalizeCigar(models.CigarInput{
		Brand:    fm.Brand,
		Name:     fm.Name,
		Size:     fm.Size,
		Origin:   fm.Origin,
		Rating:   rating,
		ImageURI: image,
	})
	if err := validation.New().Cigar(in).Err(); err != nil {
		return err
	}

	if m.editingID == "" {
		_, err = m.store.AddCigar(m.ctx, in)
	} else {
		_, err = m.store.UpdateCigar(m.ctx, m.editingID, in)
	}
	return err
}

// saveJournal adds or updates the journal entry described by the form.
func (m *Model) saveJournal() error {
	fm := m.journalForm
	if fm == nil {
		return errors.New("no journal form open")
	}
	rating, err := validation.ParseRating(fm.Rating)
	if err != nil {
		return err
	}
	in := validation.NormalizeJournal(models.JournalInput{
		CigarName: fm.CigarName,
		Rating:    rating,
		Notes:     fm.Notes,
		Flavors:   fm.Flavors,
		Pairing:   fm.Pairing,
	})
	if err := validation.New().JournalEntry(in).Err(); err != nil {
		return err
	}

	if m.editingID == "" {
		_, err = m.store.AddJournalEntry(m.ctx, in)
	} else {
		_, err = m.store.UpdateJournalEntry(m.ctx, m.editingID, in)
	}
	return err
}
