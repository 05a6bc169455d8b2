package mensa

import "context"

// WeekParser extracts one week's menus from layout-preserving plain text of
// a weekly menu flyer. Implementations are pure: the same (text, year,
// week) input always yields the same menus.
type WeekParser interface {
	// ParseWeek recovers per-weekday menus from text. Days that cannot be
	// parsed are skipped with a logged warning; if the week's overall
	// structure cannot be understood (header or column detection fails)
	// ParseWeek returns an EUNAVAILABLE error and no menus.
	ParseWeek(text string, year, week int) (MenuMap, error)
}

// MenuPageParser extracts dated daily menus from one HTML schedule page.
// The date of each day is read from the page itself; days whose date
// cannot be parsed are skipped with a logged warning.
type MenuPageParser interface {
	ParseMenus(page string) (MenuMap, error)
}

// MenuSource produces the current menus of one location, hiding link
// discovery, fetching and format conversion behind the shared record shape.
type MenuSource interface {
	// Menus fetches and extracts all currently published menus.
	// Weeks that fail extraction are logged and omitted; the error is
	// reserved for failures that prevent any extraction at all.
	Menus(ctx context.Context) (MenuMap, error)

	// Name returns the source's identifier (e.g. "studentenwerk",
	// "ipp-bistro").
	Name() string
}
