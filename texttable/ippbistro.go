package texttable

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mensa-dev/mensa"
)

var _ mensa.WeekParser = (*IPPBistroParser)(nil)

// Column anchoring in the IPP flyer relies on the soup-availability phrase
// ("Tagessuppe siehe Aushang") that recurs once per weekday column. The
// text is center aligned, so the matched phrase starts right of the real
// column edge; the empirical indents below compensate. They are
// layout-coupled constants determined from the flyer's spacing.
const (
	// The gap between the phrase's first character and the previous
	// column's last character is always three.
	ippSoupIndent = 3
	// When the phrase wraps onto two physical lines only "Aushang"
	// appears in the second one, 14 characters right of the column edge
	// and 3 short of its width.
	ippSoupSecondLineIndent = 14
	ippSoupSecondLineTrail  = 3
)

var (
	ippSplitDaysRe    = regexp.MustCompile(`(?i)Tagessuppe siehe Aushang|Aushang|Aschermittwoch|Feiertag|Geschlossen`)
	ippSoupOneLineRe  = regexp.MustCompile(`(?i)T agessuppe siehe Aushang|Tagessuppe siehe Aushang`)
	ippSoupTwoLineRe  = regexp.MustCompile(`(?i)Aushang`)
	ippClosedRe       = regexp.MustCompile(`(?i)Aschermittwoch|Feiertag|Geschlossen`)
	// Detects the surprise-menu keyword without a trailing price; the
	// price is expected between the two groups.
	ippSurpriseRe = regexp.MustCompile(`(Überraschungsmenü\s)(\s+[^\s\d]+)`)
	ippDishRe     = regexp.MustCompile(`(.+?)(\d+,\d+|\?€)\s€[^)]`)
)

// ippDishTypes is the fixed category cycle of a regular four-dish day.
var ippDishTypes = []string{"Veggie", "Traditionelle Küche", "Internationale Küche", "Specials"}

// ippIngredients is the blanket annotation the flyer prints for all dishes.
const ippIngredients = "Mi,Gl,Sf,Sl,Ei,Se,4"

// IPPBistroParser extracts weekly menus from the IPP Bistro flyer
// (Monday-Friday whitespace table).
type IPPBistroParser struct {
	Logger *slog.Logger
}

// NewIPPBistroParser creates a parser.
func NewIPPBistroParser() *IPPBistroParser {
	return &IPPBistroParser{}
}

func (p *IPPBistroParser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// ParseWeek recovers the menus of one week from flyer text.
func (p *IPPBistroParser) ParseWeek(text string, year, week int) (mensa.MenuMap, error) {
	lines := strings.Split(text, "\n")

	// Find the table header carrying the weekday names. Montag and
	// Freitag also appear in the prose line announcing the week's range,
	// so only mid-week names are reliable signatures.
	header := -1
	for i, line := range lines {
		shrunk := strings.ToLower(strings.ReplaceAll(line, " ", ""))
		if strings.Contains(shrunk, "dienstag") ||
			strings.Contains(shrunk, "mittwoch") ||
			strings.Contains(shrunk, "donnerstag") {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, mensa.Errorf(mensa.EUNAVAILABLE,
			"ipp-bistro week %d/%d: text is not a weekly menu table", week, year)
	}
	lines = lines[header:]
	weekdayLine := lines[0]

	// The soup phrase may span one or two physical lines; closed days
	// print a closure keyword instead, sometimes already in the weekday
	// line. Collect candidate column spans from all of these.
	var soupLine1, soupLine2 string
	soupIndex1, soupIndex2 := -1, -1
	for i, line := range lines[1:] {
		if !ippSplitDaysRe.MatchString(line) {
			continue
		}
		if soupIndex1 < 0 {
			soupLine1, soupIndex1 = line, i+1
		} else {
			soupLine2, soupIndex2 = line, i+1
			break
		}
	}

	var spans [][2]int
	for _, s := range findAllRuneIndex(ippClosedRe, weekdayLine) {
		spans = append(spans, [2]int{max(s[0]-ippSoupIndent, 0), s[1]})
	}
	for _, s := range findAllRuneIndex(ippSoupOneLineRe, soupLine1) {
		spans = append(spans, [2]int{max(s[0]-ippSoupIndent, 0), s[1]})
	}
	twoLine := findAllRuneIndex(ippSoupTwoLineRe, soupLine2)
	for _, s := range twoLine {
		spans = append(spans, [2]int{max(s[0]-ippSoupSecondLineIndent, 0), s[1] + ippSoupSecondLineTrail})
	}
	for _, s := range findAllRuneIndex(ippClosedRe, soupLine1) {
		spans = append(spans, [2]int{max(s[0]-ippSoupIndent, 0), s[1]})
	}
	for _, s := range findAllRuneIndex(ippClosedRe, soupLine2) {
		spans = append(spans, [2]int{max(s[0]-ippSoupIndent, 0), s[1]})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	// Structural self-check: exact column count or no result at all.
	// Misaligned columns would silently scramble every dish of the week.
	if len(spans) != 5 {
		return nil, mensa.Errorf(mensa.EUNAVAILABLE,
			"ipp-bistro week %d/%d: %d of 5 columns detected", week, year, len(spans))
	}

	soupIndex := soupIndex1
	if len(twoLine) > 0 {
		soupIndex = soupIndex2
	}

	anchors := make([]Anchor, 5)
	for i, span := range spans {
		anchors[i] = Anchor{Weekday: mensa.Monday + i, Offset: span[0]}
	}

	// Skip the soup block entirely; starting any earlier would prepend
	// the soup price line to every day whenever a column is closed.
	blobs := SplitColumns(lines[soupIndex+3:], anchors)

	menus := make(mensa.MenuMap)
	for weekday := mensa.Monday; weekday <= mensa.Friday; weekday++ {
		date, err := mensa.ResolveDate(year, week, weekday)
		if err != nil {
			p.logger().Warn("ipp-bistro: skipping day",
				"year", year, "week", week, "weekday", weekday, "err", err)
			continue
		}
		menus[date] = p.parseDay(blobs[weekday], date)
	}
	return menus, nil
}

// parseDay tokenizes one weekday's text blob into dishes. A closed day has
// no price tokens and yields a valid menu with an empty dish list.
func (p *IPPBistroParser) parseDay(blob string, date time.Time) *mensa.Menu {
	// Give the surprise menu a price placeholder so splitting still finds
	// a boundary; the second € acts as the separator.
	blob = ippSurpriseRe.ReplaceAllString(blob, "${1}?€ € ${2}")
	blob = Normalize(blob)

	tuples := ippDishRe.FindAllStringSubmatch(blob+" ", -1)

	dishTypes := make([]string, len(tuples))
	if len(tuples) == len(ippDishTypes) {
		copy(dishTypes, ippDishTypes)
	} else {
		for i := range dishTypes {
			dishTypes[i] = "Tagesgericht"
		}
	}

	// The flyer annotates all dishes with one blanket ingredient list.
	ingredients := mensa.NewIngredients("ipp-bistro")
	ingredients.ParseIngredients(ippIngredients)

	var dishes []mensa.Dish
	for i, tuple := range tuples {
		name := strings.TrimSpace(tuple[1])
		if name == "" {
			continue
		}
		price := mensa.PriceUnknown
		if amount, err := ParsePrice(tuple[2]); err == nil {
			price = mensa.PriceOf(amount)
		}
		dishes = append(dishes, mensa.NewDish(name, price, ingredients.Set, dishTypes[i]))
	}

	menu := mensa.NewMenu(date, dishes)
	menu.RemoveDuplicates()
	return menu
}
