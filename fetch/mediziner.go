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

// DefaultMedizinerURL is the hospital cafeteria's start page, which links
// the current week's plan.
const DefaultMedizinerURL = "https://www.sv.tum.de/med/startseite/"

// medWeekRe extracts week number and year from a plan file name such as
// "KW_44_Herbst_4_Mensa_2018.pdf" or "KW_50_Winter_1_Mensa_-2018.pdf".
var medWeekRe = regexp.MustCompile(`(?i)KW_([1-9]+\d*)_.*_-?(\d+).*`)

var _ mensa.MenuSource = (*MedizinerSource)(nil)

// MedizinerSource extracts the Mediziner Mensa's current week from the
// single plan PDF linked on its start page.
type MedizinerSource struct {
	Fetcher   mensa.Fetcher
	Converter mensa.PDFConverter
	Parser    mensa.WeekParser
	Limiter   mensa.DomainLimiter
	Logger    *slog.Logger

	// URL overrides DefaultMedizinerURL, e.g. in tests.
	URL string
}

// NewMedizinerSource creates a source with the standard plan parser.
func NewMedizinerSource(fetcher mensa.Fetcher, converter mensa.PDFConverter) *MedizinerSource {
	return &MedizinerSource{
		Fetcher:   fetcher,
		Converter: converter,
		Parser:    texttable.NewMedizinerParser(),
	}
}

// Name returns the source's identifier.
func (s *MedizinerSource) Name() string {
	return "mediziner-mensa"
}

func (s *MedizinerSource) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Menus downloads and parses the current week's plan. The start page is
// expected to link exactly one plan; anything else is ENOTFOUND.
func (s *MedizinerSource) Menus(ctx context.Context) (mensa.MenuMap, error) {
	pageURL := s.URL
	if pageURL == "" {
		pageURL = DefaultMedizinerURL
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
		return nil, mensa.Errorf(mensa.EINVALID, "mediziner-mensa: failed to parse page: %v", err)
	}

	var hrefs []string
	doc.Find("a[href*='Mensaplan/KW_']").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			hrefs = append(hrefs, href)
		}
	})
	if len(hrefs) != 1 {
		return nil, mensa.Errorf(mensa.ENOTFOUND,
			"mediziner-mensa: expected exactly one plan link on %s, found %d", pageURL, len(hrefs))
	}

	pdfURL := resolveHref(pageURL, hrefs[0])
	week, year, ok := medWeekAndYear(path.Base(pdfURL))
	if !ok {
		return nil, mensa.Errorf(mensa.ENOTFOUND,
			"mediziner-mensa: unrecognized plan name %q", path.Base(pdfURL))
	}

	return collectWeeks(ctx, weekDeps{
		source:  s.Name(),
		fetcher: s.Fetcher,
		convert: s.Converter.ConvertFirstPage,
		parser:  s.Parser,
		limiter: s.Limiter,
		logger:  s.logger(),
	}, []weekJob{{url: pdfURL, week: week, year: year}})
}

// medWeekAndYear derives (week, year) from a plan file name, expanding
// 2-digit years to the 2000s.
func medWeekAndYear(name string) (week, year int, ok bool) {
	m := medWeekRe.FindStringSubmatch(name)
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
