package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/models"
)

// IssueType represents the kind of validation problem
type IssueType string

const (
	IssueMissingField      IssueType = "missing_field"
	IssueRatingOutOfRange  IssueType = "rating_out_of_range"
	IssueDuplicateID       IssueType = "duplicate_id"
	IssueMissingID         IssueType = "missing_id"
	IssueInvalidTimestamp  IssueType = "invalid_timestamp"
	IssueDuplicateCigar    IssueType = "duplicate_cigar"
	IssueUnsupportedScheme IssueType = "unsupported_image_scheme"
)

// ErrInvalid is matched by the error returned from Result.Err.
var ErrInvalid = errors.New("invalid input")

// Issue is a single problem found in user input or stored records
type Issue struct {
	Type        IssueType
	Field       string
	Description string
	IDs         []string // record ids involved, for stored-data checks
}

// Result contains all detected issues
type Result struct {
	Issues []Issue
}

func (r *Result) add(t IssueType, field, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Type: t, Field: field, Description: fmt.Sprintf(format, args...)})
}

// HasIssues returns true if any issue was found
func (r Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// FormatReport returns a human-readable report of all issues
func (r Result) FormatReport() string {
	if !r.HasIssues() {
		return "No problems detected."
	}
	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

// Err returns nil for a clean result, otherwise an error wrapping ErrInvalid.
func (r Result) Err() error {
	if !r.HasIssues() {
		return nil
	}
	msgs := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		msgs[i] = issue.Description
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Validator checks cigar and journal input before it reaches the store
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// NormalizeCigar trims surrounding whitespace from every text field.
func NormalizeCigar(in models.CigarInput) models.CigarInput {
	in.Brand = strings.TrimSpace(in.Brand)
	in.Name = strings.TrimSpace(in.Name)
	in.Size = strings.TrimSpace(in.Size)
	in.Origin = strings.TrimSpace(in.Origin)
	in.ImageURI = strings.TrimSpace(in.ImageURI)
	return in
}

// NormalizeJournal trims surrounding whitespace from every text field.
func NormalizeJournal(in models.JournalInput) models.JournalInput {
	in.CigarName = strings.TrimSpace(in.CigarName)
	in.Notes = strings.TrimSpace(in.Notes)
	in.Flavors = strings.TrimSpace(in.Flavors)
	in.Pairing = strings.TrimSpace(in.Pairing)
	return in
}

// Cigar requires brand and name and a rating within bounds when one is given.
func (v *Validator) Cigar(in models.CigarInput) Result {
	var r Result
	if strings.TrimSpace(in.Brand) == "" {
		r.add(IssueMissingField, "brand", "brand is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		r.add(IssueMissingField, "name", "name is required")
	}
	checkRating(&r, in.Rating)
	if uri := strings.TrimSpace(in.ImageURI); uri != "" {
		if scheme, _, ok := strings.Cut(uri, "://"); ok && !supportedImageScheme(scheme) {
			r.add(IssueUnsupportedScheme, "imageUri", "image scheme %q is not supported", scheme)
		}
	}
	return r
}

// JournalEntry requires a cigar name and a rating within bounds when one is given.
func (v *Validator) JournalEntry(in models.JournalInput) Result {
	var r Result
	if strings.TrimSpace(in.CigarName) == "" {
		r.add(IssueMissingField, "cigarName", "cigar name is required")
	}
	checkRating(&r, in.Rating)
	return r
}

// Collections checks records already in the store: ids present and unique,
// timestamps parseable, no brand/name pair stored twice.
func (v *Validator) Collections(cigars []models.Cigar, entries []models.JournalEntry) Result {
	var r Result

	ids := map[string]int{}
	var seen []string
	pairs := map[string][]string{}
	for _, c := range cigars {
		if c.ID == "" {
			r.add(IssueMissingID, "id", "cigar %q has no id", c.DisplayName())
		} else {
			if ids[c.ID] == 0 {
				seen = append(seen, c.ID)
			}
			ids[c.ID]++
		}
		if !validTimestamp(c.AddedDate) {
			r.Issues = append(r.Issues, Issue{
				Type:        IssueInvalidTimestamp,
				Field:       "addedDate",
				Description: fmt.Sprintf("cigar %q has invalid addedDate %q", c.DisplayName(), c.AddedDate),
				IDs:         []string{c.ID},
			})
		}
		checkStoredRating(&r, "cigar", c.ID, c.DisplayName(), c.Rating)
		key := strings.ToLower(c.Brand + "\x00" + c.Name)
		pairs[key] = append(pairs[key], c.ID)
	}
	for _, c := range cigars {
		key := strings.ToLower(c.Brand + "\x00" + c.Name)
		if dup, ok := pairs[key]; ok && len(dup) > 1 {
			r.Issues = append(r.Issues, Issue{
				Type:        IssueDuplicateCigar,
				Field:       "name",
				Description: fmt.Sprintf("cigar %q is stored %d times", c.DisplayName(), len(dup)),
				IDs:         dup,
			})
			delete(pairs, key)
		}
	}

	for _, e := range entries {
		if e.ID == "" {
			r.add(IssueMissingID, "id", "journal entry for %q has no id", e.CigarName)
		} else {
			if ids[e.ID] == 0 {
				seen = append(seen, e.ID)
			}
			ids[e.ID]++
		}
		if !validTimestamp(e.Date) {
			r.Issues = append(r.Issues, Issue{
				Type:        IssueInvalidTimestamp,
				Field:       "date",
				Description: fmt.Sprintf("journal entry for %q has invalid date %q", e.CigarName, e.Date),
				IDs:         []string{e.ID},
			})
		}
		checkStoredRating(&r, "journal entry", e.ID, e.CigarName, e.Rating)
	}

	// First-seen order keeps reports stable between runs
	for _, id := range seen {
		if n := ids[id]; n > 1 {
			r.Issues = append(r.Issues, Issue{
				Type:        IssueDuplicateID,
				Field:       "id",
				Description: fmt.Sprintf("id %s is used by %d records", id, n),
				IDs:         []string{id},
			})
		}
	}
	return r
}

// ParseRating converts user text into an optional rating. Empty input means no rating.
func ParseRating(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: rating %q is not a number", ErrInvalid, s)
	}
	if !ratingInRange(v) {
		return nil, fmt.Errorf("%w: rating must be between %.0f and %.0f", ErrInvalid, constants.MinRating, constants.MaxRating)
	}
	return &v, nil
}

func ratingInRange(v float64) bool {
	return v >= constants.MinRating && v <= constants.MaxRating
}

func checkRating(r *Result, rating *float64) {
	if rating != nil && !ratingInRange(*rating) {
		r.add(IssueRatingOutOfRange, "rating", "rating must be between %.0f and %.0f, got %g", constants.MinRating, constants.MaxRating, *rating)
	}
}

func checkStoredRating(r *Result, kind, id, label string, rating *float64) {
	if rating != nil && !ratingInRange(*rating) {
		r.Issues = append(r.Issues, Issue{
			Type:        IssueRatingOutOfRange,
			Field:       "rating",
			Description: fmt.Sprintf("%s %q has rating %g outside %.0f-%.0f", kind, label, *rating, constants.MinRating, constants.MaxRating),
			IDs:         []string{id},
		})
	}
}

func validTimestamp(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func supportedImageScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "file", "http", "https", "content", "ph", "assets-library":
		return true
	}
	return false
}
