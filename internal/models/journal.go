package models

// JournalEntry is a tasting note. CigarName is free text and is not tied to a Cigar ID.
type JournalEntry struct {
	ID        string   `json:"id"`
	CigarName string   `json:"cigarName"`
	Rating    *float64 `json:"rating,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Flavors   string   `json:"flavors,omitempty"`
	Pairing   string   `json:"pairing,omitempty"`
	Date      string   `json:"date"` // ISO-8601, set once at creation
}

// JournalInput holds the caller-supplied fields of a journal entry.
type JournalInput struct {
	CigarName string
	Rating    *float64
	Notes     string
	Flavors   string
	Pairing   string
}

func (e JournalEntry) Input() JournalInput {
	return JournalInput{
		CigarName: e.CigarName,
		Rating:    e.Rating,
		Notes:     e.Notes,
		Flavors:   e.Flavors,
		Pairing:   e.Pairing,
	}
}
