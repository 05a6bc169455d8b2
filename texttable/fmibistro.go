package texttable

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/mensa-dev/mensa"
)

var _ mensa.WeekParser = (*FMIBistroParser)(nil)

// fmiWeekdays are the active columns of the FMI Bistro table, in layout
// order.
var fmiWeekdays = []struct {
	Name    string
	Ordinal int
}{
	{"Montag", mensa.Monday},
	{"Dienstag", mensa.Tuesday},
	{"Mittwoch", mensa.Wednesday},
	{"Donnerstag", mensa.Thursday},
	{"Freitag", mensa.Friday},
}

// fmiHeaderSignature is the weekday header line with all whitespace
// removed; scanning stops at the first line matching it.
const fmiHeaderSignature = "montagdienstagmittwochdonnerstagfreitag"

var (
	// Allergens are written out as words behind an "Allergene:" tag,
	// comma-separated, possibly spanning line breaks. The list must be
	// extracted and stripped before dish splitting or the words would be
	// mistaken for dish-name fragments. Each word must end at a non-word
	// character so that a dish name starting with an allergen word
	// ("Fischfilet") is not partially swallowed into the list.
	fmiAllergenWords = "Gluten|Laktose|Milcheiweiß|Hühnerei|Soja|Nüsse|Erdnuss|Sellerie|Fisch|Krebstiere|Weichtiere|Sesam|Senf|Milch|Ei"
	fmiAllergensRe   = regexp.MustCompile(`Allergene:(?:\s*(?:` + fmiAllergenWords + `),?(?:[^\p{L}\p{N}_-]|$))*`)
	fmiDishRe        = regexp.MustCompile(`.+?€\s\d+,\d+`)
	fmiPriceRe       = regexp.MustCompile(`€\s\d+,\d+`)
)

// FMIBistroParser extracts weekly menus from the FMI Bistro flyer, a
// whitespace-aligned table with one column per weekday (Monday-Friday).
type FMIBistroParser struct {
	// MaxDishes truncates each day's dish list: the flyer's right margin
	// bleeds corrupted trailing entries into the Friday column. The value
	// is layout-coupled; revisit when the provider changes its template.
	MaxDishes int

	// LegacyMaxDishes applies to pre-2018 flyers, which carried three
	// dishes per day plus a weekly special block.
	LegacyMaxDishes int

	Logger *slog.Logger
}

// NewFMIBistroParser creates a parser with the current layout limits.
func NewFMIBistroParser() *FMIBistroParser {
	return &FMIBistroParser{MaxDishes: 5, LegacyMaxDishes: 3}
}

func (p *FMIBistroParser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// ParseWeek recovers the menus of one week from flyer text.
func (p *FMIBistroParser) ParseWeek(text string, year, week int) (mensa.MenuMap, error) {
	lines := strings.Split(text, "\n")

	// Discard the headline region above the weekday header.
	header := -1
	for i, line := range lines {
		shrunk := strings.ToLower(strings.ReplaceAll(line, " ", ""))
		if shrunk == fmiHeaderSignature {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, mensa.Errorf(mensa.EUNAVAILABLE,
			"fmi-bistro week %d/%d: weekday header not found", week, year)
	}
	lines = lines[header:]

	// The weekday names in the header line establish the column offsets.
	anchors := make([]Anchor, 0, len(fmiWeekdays))
	for _, wd := range fmiWeekdays {
		if off := runeIndex(lines[0], wd.Name); off >= 0 {
			anchors = append(anchors, Anchor{Weekday: wd.Ordinal, Offset: off})
		}
	}
	if len(anchors) != len(fmiWeekdays) {
		return nil, mensa.Errorf(mensa.EUNAVAILABLE,
			"fmi-bistro week %d/%d: %d of %d columns detected", week, year, len(anchors), len(fmiWeekdays))
	}

	blobs := SplitColumns(lines, anchors)
	for _, wd := range fmiWeekdays {
		blobs[wd.Ordinal] = strings.ReplaceAll(blobs[wd.Ordinal], wd.Name, "")
	}

	// Pre-2018 flyers list one special block that applies to every
	// weekday; it is prepended to each day and raises the dish budget by
	// the number of priced items it contains.
	maxDishes := p.MaxDishes
	if year < 2018 {
		maxDishes = p.LegacyMaxDishes
		if special := weeklySpecial(lines); special != "" {
			maxDishes += strings.Count(special, "€")
			for ordinal, blob := range blobs {
				blobs[ordinal] = special + ", " + blob
			}
		}
	}

	menus := make(mensa.MenuMap)
	for _, wd := range fmiWeekdays {
		date, err := mensa.ResolveDate(year, week, wd.Ordinal)
		if err != nil {
			p.logger().Warn("fmi-bistro: skipping day",
				"year", year, "week", week, "weekday", wd.Ordinal, "err", err)
			continue
		}

		blob := blobs[wd.Ordinal]

		// A closed day is a valid, empty menu, not a parse failure.
		if strings.Contains(strings.ToLower(blob), "geschlossen") {
			menus[date] = mensa.NewMenu(date, nil)
			continue
		}

		menus[date] = p.parseDay(blob, date, maxDishes)
	}
	return menus, nil
}

// parseDay tokenizes one weekday's text blob into dishes. Allergen lists
// are extracted first, then the remainder is split at price boundaries.
func (p *FMIBistroParser) parseDay(blob string, date time.Time, maxDishes int) *mensa.Menu {
	allergenLists, blob := StripAll(fmiAllergensRe, blob)
	allergens := make([]string, len(allergenLists))
	for i, raw := range allergenLists {
		allergens[i] = strings.TrimPrefix(Normalize(raw), "Allergene:")
	}

	blob = Normalize(blob)
	// "./." marks a dish without allergens.
	blob = strings.ReplaceAll(blob, "./.", "")

	units := fmiDishRe.FindAllString(blob, -1)
	var dishes []mensa.Dish
	for i, unit := range units {
		price := mensa.PriceUnknown
		if m := fmiPriceRe.FindString(unit); m != "" {
			if amount, err := ParsePrice(m); err == nil {
				price = mensa.PriceOf(amount)
			}
		}
		name := strings.TrimSpace(strings.ReplaceAll(fmiPriceRe.ReplaceAllString(unit, ""), ",", ""))
		if name == "" {
			continue
		}

		ingredients := mensa.NewIngredients("fmi-bistro")
		if i < len(allergens) {
			ingredients.ParseIngredients(allergens[i])
		}
		dishes = append(dishes, mensa.NewDish(name, price, ingredients.Set, "Tagesgericht"))
	}
	if len(dishes) > maxDishes {
		dishes = dishes[:maxDishes]
	}

	menu := mensa.NewMenu(date, dishes)
	menu.RemoveDuplicates()
	return menu
}

// weeklySpecial locates the pre-2018 "Aktion" block and returns its text
// with the framing phrases removed, or "" if the block is absent.
func weeklySpecial(lines []string) string {
	idx := -1
	for i, line := range lines {
		if strings.Contains(line, "Aktion") {
			if idx >= 0 {
				return "" // more than one candidate, layout unknown
			}
			idx = i
		}
	}
	if idx < 2 {
		return ""
	}
	special := strings.Join(lines[idx-2:idx+1], " ")
	for _, phrase := range []string{
		"Montag – Freitag",
		"Tagessuppe täglich wechselndes Angebot",
		"ab € 1,00",
		"Aktion",
	} {
		special = strings.ReplaceAll(special, phrase, "")
	}
	return special
}
