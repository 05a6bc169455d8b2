package mock

import (
	"context"
	"time"

	"github.com/mensa-dev/mensa"
)

var _ mensa.MenuService = (*MenuService)(nil)

// MenuService is a mock implementation of mensa.MenuService.
type MenuService struct {
	SaveMenusFn             func(ctx context.Context, location string, menus mensa.MenuMap) error
	FindMenuByDateFn        func(ctx context.Context, location string, date time.Time) (*mensa.MenuRecord, error)
	FindMenusFn             func(ctx context.Context, filter mensa.MenuFilter) ([]*mensa.MenuRecord, error)
	DeleteMenusByLocationFn func(ctx context.Context, location string) error
}

func (s *MenuService) SaveMenus(ctx context.Context, location string, menus mensa.MenuMap) error {
	return s.SaveMenusFn(ctx, location, menus)
}

func (s *MenuService) FindMenuByDate(ctx context.Context, location string, date time.Time) (*mensa.MenuRecord, error) {
	return s.FindMenuByDateFn(ctx, location, date)
}

func (s *MenuService) FindMenus(ctx context.Context, filter mensa.MenuFilter) ([]*mensa.MenuRecord, error) {
	return s.FindMenusFn(ctx, filter)
}

func (s *MenuService) DeleteMenusByLocation(ctx context.Context, location string) error {
	return s.DeleteMenusByLocationFn(ctx, location)
}
