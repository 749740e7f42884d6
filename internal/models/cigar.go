package models

// Cigar is a single cigar kept in the humidor.
type Cigar struct {
	ID        string   `json:"id"`
	Brand     string   `json:"brand"`
	Name      string   `json:"name"`
	Size      string   `json:"size,omitempty"`
	Origin    string   `json:"origin,omitempty"`
	Rating    *float64 `json:"rating,omitempty"`
	ImageURI  string   `json:"imageUri,omitempty"`
	AddedDate string   `json:"addedDate"` // ISO-8601, set once at creation
}

// CigarInput holds the caller-supplied fields of a cigar. The store assigns ID and AddedDate.
type CigarInput struct {
	Brand    string
	Name     string
	Size     string
	Origin   string
	Rating   *float64
	ImageURI string
}

// Input returns the editable fields of c.
func (c Cigar) Input() CigarInput {
	return CigarInput{
		Brand:    c.Brand,
		Name:     c.Name,
		Size:     c.Size,
		Origin:   c.Origin,
		Rating:   c.Rating,
		ImageURI: c.ImageURI,
	}
}

// DisplayName joins brand and name, e.g. "Padron 1964".
func (c Cigar) DisplayName() string {
	if c.Name == "" {
		return c.Brand
	}
	if c.Brand == "" {
		return c.Name
	}
	return c.Brand + " " + c.Name
}

// Rating returns a pointer to v, for filling optional rating fields.
func Rating(v float64) *float64 {
	return &v
}
