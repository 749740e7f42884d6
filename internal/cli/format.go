package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/humidor/internal/config"
	"github.com/julianstephens/humidor/internal/constants"
)

// FormatRating renders an optional rating as "4.5/5" or "-".
func FormatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%g/5", *r)
}

// FormatDate renders a stored ISO-8601 stamp in local time, or the raw value if it does not parse.
func FormatDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format(constants.DisplayDateFormat)
}

// OrDash returns s, or "-" when s is empty.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// ImageURI turns a local path into a file:// URI. Values that already carry a scheme pass through.
func ImageURI(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.Contains(ref, "://") {
		return ref, nil
	}

	path := config.ExpandPath(ref)
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve image path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("image not found: %s", abs)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}
