// Package summary computes the figures shown on the home screen.
package summary

import (
	"context"
	"sort"

	"github.com/julianstephens/humidor/internal/models"
)

// Reader is the read side of the record store.
type Reader interface {
	ListCigars(ctx context.Context) []models.Cigar
	ListJournalEntries(ctx context.Context) []models.JournalEntry
	GetPremiumMode(ctx context.Context) bool
}

// OriginCount is the number of cigars from one origin.
type OriginCount struct {
	Origin string
	Count  int
}

type Summary struct {
	CigarCount   int
	JournalCount int
	Premium      bool

	// AverageRating covers every rated cigar and journal entry; nil when nothing is rated.
	AverageRating *float64
	RatedCount    int

	// Origins is sorted by count, then name. Cigars without an origin are left out.
	Origins []OriginCount

	// LatestEntry is the journal entry with the newest date, nil for an empty journal.
	LatestEntry *models.JournalEntry
}

func Build(ctx context.Context, r Reader) Summary {
	cigars := r.ListCigars(ctx)
	entries := r.ListJournalEntries(ctx)

	s := Summary{
		CigarCount:   len(cigars),
		JournalCount: len(entries),
		Premium:      r.GetPremiumMode(ctx),
	}

	var total float64
	origins := map[string]int{}
	for _, c := range cigars {
		if c.Rating != nil {
			total += *c.Rating
			s.RatedCount++
		}
		if c.Origin != "" {
			origins[c.Origin]++
		}
	}
	for i, e := range entries {
		if e.Rating != nil {
			total += *e.Rating
			s.RatedCount++
		}
		// ISO-8601 UTC stamps order lexically; ties go to the later insertion.
		if s.LatestEntry == nil || e.Date >= s.LatestEntry.Date {
			s.LatestEntry = &entries[i]
		}
	}
	if s.RatedCount > 0 {
		avg := total / float64(s.RatedCount)
		s.AverageRating = &avg
	}

	for origin, n := range origins {
		s.Origins = append(s.Origins, OriginCount{Origin: origin, Count: n})
	}
	sort.Slice(s.Origins, func(i, j int) bool {
		if s.Origins[i].Count != s.Origins[j].Count {
			return s.Origins[i].Count > s.Origins[j].Count
		}
		return s.Origins[i].Origin < s.Origins[j].Origin
	})

	return s
}
