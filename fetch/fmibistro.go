package fetch

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/texttable"
)

// DefaultFMIBistroURL is the caterer's page carrying the weekly flyers.
const DefaultFMIBistroURL = "http://www.wilhelm-gastronomie.de/"

// fmiWeekRe extracts week number and optional 4-digit year from a flyer
// file name such as "Garching-KW46_2017.pdf".
var fmiWeekRe = regexp.MustCompile(`(?i)KW[^a-zA-Z1-9]*([1-9]+\d*)[^a-zA-Z1-9]*([1-9]+\d{3})?`)

var _ mensa.MenuSource = (*FMIBistroSource)(nil)

// FMIBistroSource discovers the FMI Bistro's weekly flyer PDFs and parses
// each into a week of menus.
type FMIBistroSource struct {
	Fetcher   mensa.Fetcher
	Converter mensa.PDFConverter
	Parser    mensa.WeekParser
	Limiter   mensa.DomainLimiter
	Logger    *slog.Logger

	// URL overrides DefaultFMIBistroURL, e.g. in tests.
	URL string

	// Now supplies the current time for the year fallback; nil means
	// time.Now.
	Now func() time.Time
}

// NewFMIBistroSource creates a source with the standard flyer parser.
func NewFMIBistroSource(fetcher mensa.Fetcher, converter mensa.PDFConverter) *FMIBistroSource {
	return &FMIBistroSource{
		Fetcher:   fetcher,
		Converter: converter,
		Parser:    texttable.NewFMIBistroParser(),
	}
}

// Name returns the source's identifier.
func (s *FMIBistroSource) Name() string {
	return "fmi-bistro"
}

func (s *FMIBistroSource) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *FMIBistroSource) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Menus discovers all linked weekly flyers and extracts their menus.
// Flyers that fail download, conversion or parsing are logged and skipped.
func (s *FMIBistroSource) Menus(ctx context.Context) (mensa.MenuMap, error) {
	pageURL := s.URL
	if pageURL == "" {
		pageURL = DefaultFMIBistroURL
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, domainOf(pageURL)); err != nil {
			return nil, err
		}
	}
	page, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, mensa.Errorf(mensa.EINVALID, "fmi-bistro: failed to parse page: %v", err)
	}

	var jobs []weekJob
	seen := make(map[string]bool)
	doc.Find("a[href*='Garching-KW']").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		pdfURL := resolveHref(pageURL, href)
		if seen[pdfURL] {
			return
		}
		seen[pdfURL] = true

		week, year, ok := s.weekAndYear(path.Base(pdfURL))
		if !ok {
			s.logger().Warn("fmi-bistro: skipping flyer with unrecognized name", "url", pdfURL)
			return
		}
		jobs = append(jobs, weekJob{url: pdfURL, week: week, year: year})
	})
	if len(jobs) == 0 {
		return nil, mensa.Errorf(mensa.ENOTFOUND, "fmi-bistro: no flyer links on %s", pageURL)
	}

	return collectWeeks(ctx, weekDeps{
		source:  s.Name(),
		fetcher: s.Fetcher,
		convert: s.Converter.Convert,
		parser:  s.Parser,
		limiter: s.Limiter,
		logger:  s.logger(),
	}, jobs)
}

// weekAndYear derives (week, year) from a flyer file name. Some flyers
// omit the year or append stray digits to it ("20181"); both fall back to
// the current year.
func (s *FMIBistroSource) weekAndYear(name string) (week, year int, ok bool) {
	m := fmiWeekRe.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	week, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}

	currentYear := s.now().Year()
	year = currentYear
	if m[2] != "" {
		if parsed, err := strconv.Atoi(m[2]); err == nil {
			if parsed == currentYear || !strings.Contains(m[2], strconv.Itoa(currentYear)) {
				year = parsed
			}
		}
	}
	return week, year, true
}
