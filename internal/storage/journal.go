package storage

import (
	"context"
	"fmt"

	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/models"
)

func entryID(e models.JournalEntry) string { return e.ID }

// ListJournalEntries returns the journal in insertion order, or an empty journal if it cannot be read.
func (s *Store) ListJournalEntries(ctx context.Context) []models.JournalEntry {
	return listCollection[models.JournalEntry](ctx, s.medium, constants.KeyJournalEntries)
}

// GetJournalEntry returns the journal entry with the given id.
func (s *Store) GetJournalEntry(ctx context.Context, id string) (models.JournalEntry, error) {
	entries := s.ListJournalEntries(ctx)
	i, ok := findByID(entries, id, entryID)
	if !ok {
		return models.JournalEntry{}, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
	}
	return entries[i], nil
}

// AddJournalEntry appends a new entry, assigning its id and date.
func (s *Store) AddJournalEntry(ctx context.Context, in models.JournalInput) (models.JournalEntry, error) {
	entry := models.JournalEntry{
		ID:        s.newID(),
		CigarName: in.CigarName,
		Rating:    in.Rating,
		Notes:     in.Notes,
		Flavors:   in.Flavors,
		Pairing:   in.Pairing,
		Date:      s.timestamp(),
	}

	_, err := mutateCollection(ctx, s, &s.journalMu, constants.KeyJournalEntries, "add journal entry",
		func(entries []models.JournalEntry) ([]models.JournalEntry, error) {
			return append(entries, entry), nil
		})
	if err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// UpdateJournalEntry replaces the editable fields of an entry. ID and Date are kept.
func (s *Store) UpdateJournalEntry(ctx context.Context, id string, in models.JournalInput) (models.JournalEntry, error) {
	var updated models.JournalEntry
	_, err := mutateCollection(ctx, s, &s.journalMu, constants.KeyJournalEntries, "update journal entry",
		func(entries []models.JournalEntry) ([]models.JournalEntry, error) {
			i, ok := findByID(entries, id, entryID)
			if !ok {
				return nil, fmt.Errorf("journal entry %s: %w", id, ErrNotFound)
			}
			updated = models.JournalEntry{
				ID:        entries[i].ID,
				CigarName: in.CigarName,
				Rating:    in.Rating,
				Notes:     in.Notes,
				Flavors:   in.Flavors,
				Pairing:   in.Pairing,
				Date:      entries[i].Date,
			}
			entries[i] = updated
			return entries, nil
		})
	if err != nil {
		return models.JournalEntry{}, err
	}
	return updated, nil
}

// RemoveJournalEntry drops the entry with the given id and returns the remaining journal.
func (s *Store) RemoveJournalEntry(ctx context.Context, id string) ([]models.JournalEntry, error) {
	return mutateCollection(ctx, s, &s.journalMu, constants.KeyJournalEntries, "remove journal entry",
		func(entries []models.JournalEntry) ([]models.JournalEntry, error) {
			return removeByID(entries, id, entryID), nil
		})
}
