package models

// Recommendation is an entry of the discover catalog.
type Recommendation struct {
	ID            int     `json:"id"`
	Brand         string  `json:"brand"`
	Name          string  `json:"name"`
	Reason        string  `json:"reason"`
	Rating        float64 `json:"rating"`
	Price         string  `json:"price"`
	Origin        string  `json:"origin"`
	Strength      string  `json:"strength"`
	FlavorProfile string  `json:"flavorProfile"`
}

// AsCigar converts the recommendation into input suitable for adding to the humidor.
func (r Recommendation) AsCigar() CigarInput {
	rating := r.Rating
	return CigarInput{
		Brand:  r.Brand,
		Name:   r.Name,
		Origin: r.Origin,
		Rating: &rating,
	}
}
