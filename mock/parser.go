package mock

import "github.com/mensa-dev/mensa"

var _ mensa.WeekParser = (*WeekParser)(nil)

// WeekParser is a mock implementation of mensa.WeekParser.
type WeekParser struct {
	ParseWeekFn func(text string, year, week int) (mensa.MenuMap, error)
}

func (p *WeekParser) ParseWeek(text string, year, week int) (mensa.MenuMap, error) {
	return p.ParseWeekFn(text, year, week)
}

var _ mensa.MenuPageParser = (*MenuPageParser)(nil)

// MenuPageParser is a mock implementation of mensa.MenuPageParser.
type MenuPageParser struct {
	ParseMenusFn func(page string) (mensa.MenuMap, error)
}

func (p *MenuPageParser) ParseMenus(page string) (mensa.MenuMap, error) {
	return p.ParseMenusFn(page)
}
