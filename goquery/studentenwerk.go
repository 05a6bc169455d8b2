package goquery

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mensa-dev/mensa"
)

var _ mensa.MenuPageParser = (*StudentenwerkParser)(nil)

// studentenwerkPrices maps a dish category label to its fixed price.
// One-course and per-weight categories carry a free-text label instead of
// an amount.
var studentenwerkPrices = map[string]mensa.Price{
	"Tagesgericht 1":  mensa.PriceOf(1),
	"Tagesgericht 2":  mensa.PriceOf(1.55),
	"Tagesgericht 3":  mensa.PriceOf(1.9),
	"Tagesgericht 4":  mensa.PriceOf(2.4),
	"Aktionsessen 1":  mensa.PriceOf(1.55),
	"Aktionsessen 2":  mensa.PriceOf(1.9),
	"Aktionsessen 3":  mensa.PriceOf(2.4),
	"Aktionsessen 4":  mensa.PriceOf(2.6),
	"Aktionsessen 5":  mensa.PriceOf(2.8),
	"Aktionsessen 6":  mensa.PriceOf(3.0),
	"Aktionsessen 7":  mensa.PriceOf(3.2),
	"Aktionsessen 8":  mensa.PriceOf(3.5),
	"Aktionsessen 9":  mensa.PriceOf(4),
	"Aktionsessen 10": mensa.PriceOf(4.5),
	"Biogericht 1":    mensa.PriceOf(1.55),
	"Biogericht 2":    mensa.PriceOf(1.9),
	"Biogericht 3":    mensa.PriceOf(2.4),
	"Biogericht 4":    mensa.PriceOf(2.6),
	"Biogericht 5":    mensa.PriceOf(2.8),
	"Biogericht 6":    mensa.PriceOf(3.0),
	"Biogericht 7":    mensa.PriceOf(3.2),
	"Biogericht 8":    mensa.PriceOf(3.5),
	"Biogericht 9":    mensa.PriceOf(4),
	"Biogericht 10":   mensa.PriceOf(4.5),

	"Self-Service":             mensa.PriceLabel("0.68€ / 100g"),
	"Self-Service Arcisstraße": mensa.PriceLabel("0.68€ / 100g"),
	"Self-Service Grüne Mensa": mensa.PriceLabel("0.33€ / 100g"),
	"Baustellenteller":         mensa.PriceLabel("Baustellenteller (> 2.40€)"),
	"Fast Lane":                mensa.PriceLabel("Fast Lane (> 3.50€)"),
	"Länder-Mensa":             mensa.PriceLabel("0.75€ / 100g"),
	"Mensa Spezial Pasta":      mensa.PriceLabel("0.60€ / 100g"),
	"Mensa Spezial":            mensa.PriceLabel("individual"),
}

// StudentenwerkParser extracts daily menus from a Studentenwerk schedule
// page. The page lists one container per day; each dish row carries its
// category label and three tiers of dietary marker spans.
type StudentenwerkParser struct {
	// Location selects the ingredient-code vocabulary; Studentenwerk
	// location aliases all share one.
	Location string

	Logger *slog.Logger
}

// NewStudentenwerkParser creates a parser for the given location alias.
func NewStudentenwerkParser(location string) *StudentenwerkParser {
	return &StudentenwerkParser{Location: location}
}

func (p *StudentenwerkParser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// ParseMenus extracts every daily menu found on the page. Days whose date
// anchor cannot be parsed are skipped with a warning; the remaining days
// are still returned.
func (p *StudentenwerkParser) ParseMenus(page string) (mensa.MenuMap, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, mensa.Errorf(mensa.EINVALID, "studentenwerk: failed to parse HTML: %v", err)
	}

	menus := make(mensa.MenuMap)
	doc.Find("div.c-schedule__item").Each(func(_ int, day *goquery.Selection) {
		dateStr := strings.TrimSpace(day.Find("strong").First().Text())
		date, err := mensa.ParseWrittenDate(dateStr)
		if err != nil {
			p.logger().Warn("studentenwerk: skipping day with unparseable date",
				"location", p.Location, "date", dateStr)
			return
		}
		menus[date] = mensa.NewMenu(date, p.parseDishes(day))
		menus[date].RemoveDuplicates()
	})
	return menus, nil
}

// parseDishes assembles one day's dishes. Names, category labels and the
// three marker tiers are parallel row-ordered lists; rows beyond the
// shortest list are dropped.
func (p *StudentenwerkParser) parseDishes(day *goquery.Selection) []mensa.Dish {
	var names []string
	day.Find("p.js-schedule-dish-description").Each(func(_ int, sel *goquery.Selection) {
		names = append(names, strings.TrimRight(ownText(sel), " \t\n"))
	})
	names = makeDuplicatesUnique(names)

	var types []string
	day.Find("span.stwm-artname").Each(func(_ int, sel *goquery.Selection) {
		types = append(types, strings.TrimSpace(sel.Text()))
	})

	additional := markerValues(day, "c-schedule__marker--additional")
	allergen := markerValues(day, "c-schedule__marker--allergen")
	typeMarkers := markerValues(day, "c-schedule__marker--type")

	n := len(names)
	for _, l := range []int{len(types), len(additional), len(allergen), len(typeMarkers)} {
		if l < n {
			n = l
		}
	}

	var dishes []mensa.Dish
	for i := 0; i < n; i++ {
		// Multi-row dishes repeat the name row with an empty category
		// label; such rows continue the previous dish and inherit its
		// price, ingredients and type.
		if types[i] == "" && len(dishes) > 0 {
			prev := dishes[len(dishes)-1]
			dishes = append(dishes, mensa.NewDish(names[i], prev.Price, prev.Ingredients, prev.Type))
			continue
		}

		ingredients := mensa.NewIngredients(p.Location)
		ingredients.ParseIngredients(additional[i])
		ingredients.ParseIngredients(allergen[i])
		ingredients.ParseIngredients(typeMarkers[i])

		price, ok := studentenwerkPrices[types[i]]
		if !ok {
			price = mensa.PriceUnknown
		}
		dishes = append(dishes, mensa.NewDish(names[i], price, ingredients.Set, types[i]))
	}
	return dishes
}

// markerValues collects the data-essen attributes of one marker tier in
// document order.
func markerValues(day *goquery.Selection, class string) []string {
	var values []string
	day.Find("span[class*='" + class + "']").Each(func(_ int, sel *goquery.Selection) {
		values = append(values, sel.AttrOr("data-essen", ""))
	})
	return values
}

// ownText returns the concatenated direct text children of the selection,
// excluding text nested in child elements such as marker spans.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}

// makeDuplicatesUnique suffixes repeated names with " (2)", " (3)" and so
// on in order of appearance. The source lists genuinely distinct dishes
// under one name, so the suffix stays part of the stored name.
func makeDuplicatesUnique(names []string) []string {
	counts := make(map[string]int, len(names))
	unique := make([]string, len(names))
	for i, name := range names {
		counts[name]++
		if c := counts[name]; c > 1 {
			name += " (" + strconv.Itoa(c) + ")"
		}
		unique[i] = name
	}
	return unique
}
