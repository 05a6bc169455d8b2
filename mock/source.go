package mock

import (
	"context"

	"github.com/mensa-dev/mensa"
)

var _ mensa.MenuSource = (*MenuSource)(nil)

// MenuSource is a mock implementation of mensa.MenuSource.
type MenuSource struct {
	MenusFn func(ctx context.Context) (mensa.MenuMap, error)
	NameFn  func() string
}

func (s *MenuSource) Menus(ctx context.Context) (mensa.MenuMap, error) {
	return s.MenusFn(ctx)
}

func (s *MenuSource) Name() string {
	if s.NameFn != nil {
		return s.NameFn()
	}
	return "mock"
}
