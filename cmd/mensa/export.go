package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mensa-dev/mensa"
)

// Run executes the export command. Each location is written to its own
// subdirectory so same-date menus of different canteens never collide.
func (c *ExportCmd) Run(deps *Dependencies) error {
	filter := mensa.MenuFilter{}
	if c.Location != "" {
		filter.Location = &c.Location
	}

	records, err := deps.Menus.FindMenus(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No menus stored. Use 'mensa fetch' to collect some.")
		return nil
	}

	byLocation := make(map[string]mensa.MenuMap)
	for _, r := range records {
		menus, ok := byLocation[r.Location]
		if !ok {
			menus = make(mensa.MenuMap)
			byLocation[r.Location] = menus
		}
		menus[r.Menu.Date] = r.Menu
	}

	locations := make([]string, 0, len(byLocation))
	for location := range byLocation {
		locations = append(locations, location)
	}
	sort.Strings(locations)

	for _, location := range locations {
		writer := deps.NewWriter(filepath.Join(c.Out, location))
		weeks := mensa.ToWeeks(byLocation[location])
		if err := writer.WriteWeeks(deps.Ctx, weeks); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mensa.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Exported %d weeks for %s\n", len(weeks), location)
	}

	return nil
}
