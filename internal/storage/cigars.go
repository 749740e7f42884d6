package storage

import (
	"context"
	"fmt"

	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/models"
)

func cigarID(c models.Cigar) string { return c.ID }

// ListCigars returns the humidor in insertion order. It never fails: unreadable data
// is logged and reported as an empty humidor.
func (s *Store) ListCigars(ctx context.Context) []models.Cigar {
	return listCollection[models.Cigar](ctx, s.medium, constants.KeyCigars)
}

// GetCigar returns the cigar with the given id.
func (s *Store) GetCigar(ctx context.Context, id string) (models.Cigar, error) {
	cigars := s.ListCigars(ctx)
	i, ok := findByID(cigars, id, cigarID)
	if !ok {
		return models.Cigar{}, fmt.Errorf("cigar %s: %w", id, ErrNotFound)
	}
	return cigars[i], nil
}

// AddCigar appends a new cigar, assigning its id and addedDate.
func (s *Store) AddCigar(ctx context.Context, in models.CigarInput) (models.Cigar, error) {
	cigar := models.Cigar{
		ID:        s.newID(),
		Brand:     in.Brand,
		Name:      in.Name,
		Size:      in.Size,
		Origin:    in.Origin,
		Rating:    in.Rating,
		ImageURI:  in.ImageURI,
		AddedDate: s.timestamp(),
	}

	_, err := mutateCollection(ctx, s, &s.cigarsMu, constants.KeyCigars, "add cigar",
		func(cigars []models.Cigar) ([]models.Cigar, error) {
			return append(cigars, cigar), nil
		})
	if err != nil {
		return models.Cigar{}, err
	}
	return cigar, nil
}

// UpdateCigar replaces the editable fields of a cigar. ID and AddedDate are kept.
func (s *Store) UpdateCigar(ctx context.Context, id string, in models.CigarInput) (models.Cigar, error) {
	var updated models.Cigar
	_, err := mutateCollection(ctx, s, &s.cigarsMu, constants.KeyCigars, "update cigar",
		func(cigars []models.Cigar) ([]models.Cigar, error) {
			i, ok := findByID(cigars, id, cigarID)
			if !ok {
				return nil, fmt.Errorf("cigar %s: %w", id, ErrNotFound)
			}
			updated = models.Cigar{
				ID:        cigars[i].ID,
				Brand:     in.Brand,
				Name:      in.Name,
				Size:      in.Size,
				Origin:    in.Origin,
				Rating:    in.Rating,
				ImageURI:  in.ImageURI,
				AddedDate: cigars[i].AddedDate,
			}
			cigars[i] = updated
			return cigars, nil
		})
	if err != nil {
		return models.Cigar{}, err
	}
	return updated, nil
}

// RemoveCigar drops the cigar with the given id and returns the remaining humidor.
// Removing an unknown id rewrites the collection unchanged.
func (s *Store) RemoveCigar(ctx context.Context, id string) ([]models.Cigar, error) {
	return mutateCollection(ctx, s, &s.cigarsMu, constants.KeyCigars, "remove cigar",
		func(cigars []models.Cigar) ([]models.Cigar, error) {
			return removeByID(cigars, id, cigarID), nil
		})
}
