package main

import (
	"fmt"
	"path/filepath"

	"github.com/mensa-dev/mensa"
)

// Run executes the fetch command. The source matching the requested
// location has already been wired into deps by Main.Run.
func (c *FetchCmd) Run(deps *Dependencies) error {
	menus, err := deps.Source.Menus(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
		return err
	}

	if err := deps.Menus.SaveMenus(deps.Ctx, c.Location, menus); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Stored %d menus for %s\n", len(menus), c.Location)

	if c.Out != "" {
		writer := deps.NewWriter(filepath.Join(c.Out, c.Location))
		weeks := mensa.ToWeeks(menus)
		if err := writer.WriteWeeks(deps.Ctx, weeks); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported %d weeks to %s\n", len(weeks), c.Out)
	}

	return nil
}
