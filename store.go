package mensa

import (
	"context"
	"time"
)

// MenuRecord is a stored menu with its bookkeeping fields.
type MenuRecord struct {
	ID        string    `json:"id"`
	Location  string    `json:"location"`
	Menu      *Menu     `json:"menu"`
	Hash      string    `json:"hash"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *MenuRecord) Validate() error {
	if r.Location == "" {
		return Errorf(EINVALID, "menu location required")
	}
	if r.Menu == nil || r.Menu.Date.IsZero() {
		return Errorf(EINVALID, "menu date required")
	}
	return nil
}

// MenuFilter represents a filter for FindMenus.
type MenuFilter struct {
	Location *string    `json:"location"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MenuService represents a service for persisting extracted menus.
type MenuService interface {
	// SaveMenus upserts all menus of one extraction run for a location,
	// keyed by (location, date).
	SaveMenus(ctx context.Context, location string, menus MenuMap) error

	// FindMenuByDate retrieves the menu of a location on a date.
	// Returns ENOTFOUND if no menu is stored.
	FindMenuByDate(ctx context.Context, location string, date time.Time) (*MenuRecord, error)

	// FindMenus retrieves menus matching the filter, ordered by date.
	FindMenus(ctx context.Context, filter MenuFilter) ([]*MenuRecord, error)

	// DeleteMenusByLocation removes all menus stored for a location.
	DeleteMenusByLocation(ctx context.Context, location string) error
}

// WeekWriter exports week groupings for downstream consumers.
type WeekWriter interface {
	// WriteWeeks serializes each week to its own document.
	WriteWeeks(ctx context.Context, weeks map[WeekKey]*Week) error
}
