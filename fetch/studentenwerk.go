package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/goquery"
)

// DefaultStudentenwerkURL is the schedule page URL template; the location
// id fills the placeholder.
const DefaultStudentenwerkURL = "http://www.studentenwerk-muenchen.de/mensa/speiseplan/speiseplan_%d_-de.html"

var _ mensa.MenuSource = (*StudentenwerkSource)(nil)

// StudentenwerkSource extracts the menus of one Studentenwerk location
// from its HTML schedule page.
type StudentenwerkSource struct {
	Location string

	Fetcher mensa.Fetcher
	Parser  mensa.MenuPageParser
	Limiter mensa.DomainLimiter
	Logger  *slog.Logger

	// URLTemplate overrides DefaultStudentenwerkURL, e.g. in tests.
	URLTemplate string
}

// NewStudentenwerkSource creates a source for the given location alias or
// numeric id.
func NewStudentenwerkSource(location string, fetcher mensa.Fetcher) *StudentenwerkSource {
	return &StudentenwerkSource{
		Location: location,
		Fetcher:  fetcher,
		Parser:   goquery.NewStudentenwerkParser(location),
	}
}

// Name returns the source's identifier.
func (s *StudentenwerkSource) Name() string {
	return "studentenwerk"
}

// Menus fetches the location's schedule page and extracts all published
// daily menus.
func (s *StudentenwerkSource) Menus(ctx context.Context) (mensa.MenuMap, error) {
	id, err := mensa.ResolveLocationID(s.Location)
	if err != nil {
		return nil, err
	}

	template := s.URLTemplate
	if template == "" {
		template = DefaultStudentenwerkURL
	}
	pageURL := fmt.Sprintf(template, id)

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, domainOf(pageURL)); err != nil {
			return nil, err
		}
	}
	page, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return s.Parser.ParseMenus(page)
}
