package mensa

import (
	"sort"
	"time"
)

// Menu represents the dishes served at one location on one day.
// An empty Dishes list is meaningful: it marks a day the location was
// closed, as opposed to a day that is absent from the result because its
// data could not be parsed.
type Menu struct {
	Date   time.Time `json:"date"`
	Dishes []Dish    `json:"dishes"`
}

// NewMenu creates a menu for the given date.
func NewMenu(date time.Time, dishes []Dish) *Menu {
	return &Menu{Date: date, Dishes: dishes}
}

// RemoveDuplicates drops dishes equal across all fields, keeping the first
// occurrence and preserving order. Calling it on an already deduplicated
// menu is a no-op.
func (m *Menu) RemoveDuplicates() {
	unique := m.Dishes[:0]
	for _, d := range m.Dishes {
		dup := false
		for _, u := range unique {
			if u.Equal(d) {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, d)
		}
	}
	m.Dishes = unique
}

// MenuMap maps calendar dates to menus. Keys are produced by Date and are
// unique within one extraction run.
type MenuMap map[time.Time]*Menu

// Merge copies all entries of other into m. Colliding dates resolve
// last-write-wins.
func (m MenuMap) Merge(other MenuMap) {
	for date, menu := range other {
		m[date] = menu
	}
}

// Dates returns the map's keys in chronological order.
func (m MenuMap) Dates() []time.Time {
	dates := make([]time.Time, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// WeekKey identifies an ISO-8601 calendar week.
type WeekKey struct {
	Year   int `json:"year"`
	Number int `json:"number"`
}

// Week groups the menus of one ISO calendar week, ordered by date.
type Week struct {
	Year   int     `json:"year"`
	Number int     `json:"number"`
	Days   []*Menu `json:"days"`
}

// ToWeeks groups menus by ISO calendar week. Each date maps to exactly one
// (year, week) pair, so the grouping is a derived index over the menu map.
func ToWeeks(menus MenuMap) map[WeekKey]*Week {
	weeks := make(map[WeekKey]*Week)
	for _, date := range menus.Dates() {
		year, number := date.ISOWeek()
		key := WeekKey{Year: year, Number: number}
		week, ok := weeks[key]
		if !ok {
			week = &Week{Year: year, Number: number}
			weeks[key] = week
		}
		week.Days = append(week.Days, menus[date])
	}
	return weeks
}
