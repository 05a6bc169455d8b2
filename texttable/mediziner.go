package texttable

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/mensa-dev/mensa"
)

var _ mensa.WeekParser = (*MedizinerParser)(nil)

// The Mediziner Mensa plan lists all seven weekdays (the cafeteria is part
// of a hospital and serves every day) with two fixed sub-columns per day
// line: the soup on the left, the main dishes on the right. The rune
// offsets below are layout-coupled constants of the flyer template.
const (
	medSoupColumnEnd   = 36
	medMainColumnStart = 40
	medMainColumnEnd   = 100
)

var (
	// Ingredient codes are single letters and digits; runs like " A,C "
	// can re-expose nested runs once stripped, hence the fixed-point loop
	// in parseDish.
	medIngredientsRe = regexp.MustCompile(`\s(?:[A-C]|[E-H]|[K-P]|[R-Z]|[1-9])(?:,(?:[A-C]|[E-H]|[K-P]|[R-Z]|[1-9]))*(?:\s|\z)`)
	medPriceRe       = regexp.MustCompile(`\d+,\d{2}\s?€`)
	medDayHeaderRe   = regexp.MustCompile(`(?:Montag|Dienstag|Mittwoch|Donnerstag|Freitag|Samstag|Sonntag),\s\d{1,2}\.\d{1,2}\.\d{4}`)
	medTypesSplitRe  = regexp.MustCompile(`\s{2,}`)
)

// MedizinerParser extracts weekly menus from the Mediziner Mensa plan.
type MedizinerParser struct {
	Logger *slog.Logger
}

// NewMedizinerParser creates a parser.
func NewMedizinerParser() *MedizinerParser {
	return &MedizinerParser{}
}

func (p *MedizinerParser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// ParseWeek recovers the menus of one week from plan text.
func (p *MedizinerParser) ParseWeek(text string, year, week int) (mensa.MenuMap, error) {
	lines := strings.Split(text, "\n")

	// The category labels sit in the last non-empty line above the first
	// "***" rule, separated by wide whitespace runs.
	var dishTypes []string
	lastNonEmpty := -1
	for i, line := range lines {
		if strings.Contains(line, "***") {
			if lastNonEmpty >= 0 {
				for _, dt := range medTypesSplitRe.Split(lines[lastNonEmpty], -1) {
					if dt = strings.TrimSpace(dt); dt != "" {
						dishTypes = append(dishTypes, dt)
					}
				}
			}
			break
		} else if strings.TrimSpace(line) != "" {
			lastNonEmpty = i
		}
	}

	// The day grid starts at the first Monday header; everything below
	// the last "***" rule is the additive/allergen legend.
	start := -1
	for i, line := range lines {
		if strings.Contains(line, "Montag") {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, mensa.Errorf(mensa.EUNAVAILABLE,
			"mediziner-mensa week %d/%d: no day headers found", week, year)
	}
	lines = lines[start:]
	end := len(lines)
	for i, line := range lines {
		if strings.Contains(line, "***") {
			end = i
		}
	}
	lines = lines[:end]

	body := strings.TrimSpace(strings.ReplaceAll(strings.Join(lines, "\n"), "*", ""))
	var sections []string
	for _, part := range medDayHeaderRe.Split(body, -1) {
		if strings.TrimSpace(part) != "" {
			sections = append(sections, part)
		}
	}
	if len(sections) != 7 {
		return nil, mensa.Errorf(mensa.EUNAVAILABLE,
			"mediziner-mensa week %d/%d: %d of 7 day sections detected", week, year, len(sections))
	}

	menus := make(mensa.MenuMap)
	for i, section := range sections {
		weekday := mensa.Monday + i
		date, err := mensa.ResolveDate(year, week, weekday)
		if err != nil {
			p.logger().Warn("mediziner-mensa: skipping day",
				"year", year, "week", week, "weekday", weekday, "err", err)
			continue
		}
		menus[date] = p.parseDay(section, date, dishTypes)
	}
	return menus, nil
}

// parseDay assembles one day's menu from its section text.
func (p *MedizinerParser) parseDay(section string, date time.Time, dishTypes []string) *mensa.Menu {
	var soupCol, mainCol strings.Builder
	for _, line := range strings.Split(norm.NFKC.String(section), "\n") {
		runes := []rune(line)
		soupCol.WriteString(strings.TrimSpace(string(runes[:min(medSoupColumnEnd, len(runes))])))
		soupCol.WriteString("\n")
		if len(runes) > medMainColumnStart {
			mainCol.WriteString(strings.TrimSpace(string(runes[medMainColumnStart:min(medMainColumnEnd, len(runes))])))
		}
		mainCol.WriteString("\n")
	}

	var dishes []mensa.Dish

	// Soup: de-hyphenate wrapped words, then flatten.
	soupStr := strings.ReplaceAll(soupCol.String(), "-\n", "")
	soupStr = strings.ReplaceAll(strings.TrimSpace(soupStr), "\n", " ")
	soup := parseMedizinerDish(soupStr)
	if len(dishTypes) > 0 {
		soup.Type = dishTypes[0]
	} else {
		soup.Type = "Suppe"
	}
	if soup.Name != "" && soup.Name != "Feiertag" {
		dishes = append(dishes, soup)
	}

	// Mains: the "Extraessen" marker permanently switches the category of
	// everything after it.
	dishType := ""
	if len(dishTypes) > 1 {
		dishType = dishTypes[1]
	}
	for _, dishStr := range splitMedizinerDishes(mainCol.String()) {
		if strings.Contains(dishStr, "Extraessen") {
			dishType = "Extraessen"
			continue
		}
		dish := parseMedizinerDish(dishStr)
		if dish.Name == "" || dish.Name == "Feiertag" {
			continue
		}
		if dishType != "" {
			dish.Type = dishType
		}
		dishes = append(dishes, dish)
	}

	menu := mensa.NewMenu(date, dishes)
	menu.RemoveDuplicates()
	return menu
}

// splitMedizinerDishes splits the main-dish column into dish descriptions.
// A new dish starts at a blank line or at a line opening with an ASCII
// capital, except that a line ending in "mit" continues into the next one.
// Umlaut capitals ("Überbackener ...") only ever open continuation lines in
// this flyer, so they do not start a new dish.
func splitMedizinerDishes(s string) []string {
	var dishes []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			dishes = append(dishes, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		first := line[0]
		if first >= 'A' && first <= 'Z' && len(cur) > 0 && !strings.HasSuffix(cur[len(cur)-1], "mit") {
			flush()
		}
		cur = append(cur, line)
	}
	flush()
	return dishes
}

// parseMedizinerDish extracts ingredients and price from one dish string
// and returns the dish with the default category.
func parseMedizinerDish(dishStr string) mensa.Dish {
	ingredients := mensa.NewIngredients("mediziner-mensa")
	codes, dishStr := StripAll(medIngredientsRe, dishStr)
	for _, code := range codes {
		ingredients.ParseIngredients(strings.TrimSpace(code))
	}
	dishStr = Normalize(dishStr)
	dishStr = strings.ReplaceAll(dishStr, " , ", ", ")

	price := mensa.PriceUnknown
	if m := medPriceRe.FindAllString(dishStr, -1); len(m) > 0 {
		if amount, err := ParsePrice(m[len(m)-1]); err == nil {
			price = mensa.PriceOf(amount)
		}
	}
	dishStr = strings.TrimSpace(medPriceRe.ReplaceAllString(dishStr, ""))

	return mensa.NewDish(dishStr, price, ingredients.Set, "Tagesgericht")
}
