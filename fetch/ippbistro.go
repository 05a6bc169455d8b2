package fetch

import (
	"context"
	"log/slog"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/texttable"
)

// DefaultIPPBistroURL is the caterer's page carrying the weekly flyers.
const DefaultIPPBistroURL = "http://konradhof-catering.de/ipp/"

// ippWeekRe extracts week number and year from a flyer file name such as
// "KW-48_27.11-01.12.10.2017-3.pdf"; the year is the last date's year and
// may have only two digits.
var ippWeekRe = regexp.MustCompile(`(?i)KW[^a-zA-Z1-9]*([1-9]+\d*).*\d+\.\d+\.(\d+).*`)

var _ mensa.MenuSource = (*IPPBistroSource)(nil)

// IPPBistroSource discovers the IPP Bistro's weekly flyer PDFs and parses
// each into a week of menus. Only the first flyer page carries the menu
// table.
type IPPBistroSource struct {
	Fetcher   mensa.Fetcher
	Converter mensa.PDFConverter
	Parser    mensa.WeekParser
	Limiter   mensa.DomainLimiter
	Logger    *slog.Logger

	// URL overrides DefaultIPPBistroURL, e.g. in tests.
	URL string
}

// NewIPPBistroSource creates a source with the standard flyer parser.
func NewIPPBistroSource(fetcher mensa.Fetcher, converter mensa.PDFConverter) *IPPBistroSource {
	return &IPPBistroSource{
		Fetcher:   fetcher,
		Converter: converter,
		Parser:    texttable.NewIPPBistroParser(),
	}
}

// Name returns the source's identifier.
func (s *IPPBistroSource) Name() string {
	return "ipp-bistro"
}

func (s *IPPBistroSource) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Menus discovers all linked weekly flyers and extracts their menus.
// Flyers that fail download, conversion or parsing are logged and skipped.
func (s *IPPBistroSource) Menus(ctx context.Context) (mensa.MenuMap, error) {
	pageURL := s.URL
	if pageURL == "" {
		pageURL = DefaultIPPBistroURL
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
		return nil, mensa.Errorf(mensa.EINVALID, "ipp-bistro: failed to parse page: %v", err)
	}

	var jobs []weekJob
	seen := make(map[string]bool)
	doc.Find("a[title*='KW-']").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		pdfURL := resolveHref(pageURL, href)
		if seen[pdfURL] {
			return
		}
		seen[pdfURL] = true

		week, year, ok := ippWeekAndYear(path.Base(pdfURL))
		if !ok {
			s.logger().Warn("ipp-bistro: skipping flyer with unrecognized name", "url", pdfURL)
			return
		}
		jobs = append(jobs, weekJob{url: pdfURL, week: week, year: year})
	})
	if len(jobs) == 0 {
		return nil, mensa.Errorf(mensa.ENOTFOUND, "ipp-bistro: no flyer links on %s", pageURL)
	}

	return collectWeeks(ctx, weekDeps{
		source:  s.Name(),
		fetcher: s.Fetcher,
		convert: s.Converter.ConvertFirstPage,
		parser:  s.Parser,
		limiter: s.Limiter,
		logger:  s.logger(),
	}, jobs)
}

// ippWeekAndYear derives (week, year) from a flyer file name, expanding
// 2-digit years to the 2000s.
func ippWeekAndYear(name string) (week, year int, ok bool) {
	m := ippWeekRe.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	week, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	year, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	if len(m[2]) == 2 {
		year += 2000
	}
	return week, year, true
}
