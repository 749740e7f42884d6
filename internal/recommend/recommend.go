// Package recommend serves the discover catalog: a fixed list of mock
// recommendations available to premium members.
package recommend

import (
	"context"
	"fmt"

	"github.com/julianstephens/humidor/internal/logger"
	"github.com/julianstephens/humidor/internal/membership"
	"github.com/julianstephens/humidor/internal/models"
)

var catalog = []models.Recommendation{
	{
		ID:            1,
		Brand:         "Cohiba",
		Name:          "Behike 52",
		Reason:        "Based on your preference for full-bodied cigars with complex flavors",
		Rating:        4.8,
		Price:         "$45",
		Origin:        "Cuba",
		Strength:      "Full",
		FlavorProfile: "Woody, Spicy, Earthy",
	},
	{
		ID:            2,
		Brand:         "Montecristo",
		Name:          "No. 2",
		Reason:        "Perfect for beginners, mild to medium strength with smooth draw",
		Rating:        4.5,
		Price:         "$18",
		Origin:        "Cuba",
		Strength:      "Medium",
		FlavorProfile: "Creamy, Nutty, Sweet",
	},
	{
		ID:            3,
		Brand:         "Arturo Fuente",
		Name:          "Opus X",
		Reason:        "Premium Dominican cigar with exceptional construction and aging",
		Rating:        4.9,
		Price:         "$35",
		Origin:        "Dominican Republic",
		Strength:      "Full",
		FlavorProfile: "Rich, Complex, Spicy",
	},
	{
		ID:            4,
		Brand:         "Padron",
		Name:          "1964 Anniversary",
		Reason:        "Award-winning Nicaraguan cigar with consistent quality",
		Rating:        4.7,
		Price:         "$28",
		Origin:        "Nicaragua",
		Strength:      "Medium-Full",
		FlavorProfile: "Chocolate, Coffee, Cedar",
	},
}

// Store is the part of the record store recommendations need.
type Store interface {
	GetPremiumMode(ctx context.Context) bool
	AddCigar(ctx context.Context, in models.CigarInput) (models.Cigar, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// Catalog returns a copy of the full catalog regardless of membership.
func Catalog() []models.Recommendation {
	out := make([]models.Recommendation, len(catalog))
	copy(out, catalog)
	return out
}

// List returns the recommendations for a premium member.
func (s *Service) List(ctx context.Context) ([]models.Recommendation, error) {
	if !s.store.GetPremiumMode(ctx) {
		return nil, membership.ErrPremiumRequired
	}
	return Catalog(), nil
}

// Get looks up a catalog entry by id.
func Get(id int) (models.Recommendation, bool) {
	for _, r := range catalog {
		if r.ID == id {
			return r, true
		}
	}
	return models.Recommendation{}, false
}

// AddToHumidor stores recommendation id as a new cigar.
func (s *Service) AddToHumidor(ctx context.Context, id int) (models.Cigar, error) {
	if !s.store.GetPremiumMode(ctx) {
		return models.Cigar{}, membership.ErrPremiumRequired
	}
	rec, ok := Get(id)
	if !ok {
		return models.Cigar{}, fmt.Errorf("no recommendation with id %d", id)
	}
	cigar, err := s.store.AddCigar(ctx, rec.AsCigar())
	if err != nil {
		return models.Cigar{}, err
	}
	logger.Info("Recommendation added to humidor", "recommendation", id, "cigar", cigar.ID)
	return cigar, nil
}
