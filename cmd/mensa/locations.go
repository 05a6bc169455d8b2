package main

import (
	"fmt"

	"github.com/mensa-dev/mensa"
)

// providerSources are the canteens that publish weekly PDF flyers instead
// of using the Studentenwerk schedule pages.
var providerSources = []string{"fmi-bistro", "ipp-bistro", "mediziner-mensa"}

// Run executes the locations command.
func (c *LocationsCmd) Run(deps *Dependencies) error {
	for _, alias := range mensa.LocationAliases() {
		id, err := mensa.ResolveLocationID(alias)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %d\n", alias, id)
	}
	for _, name := range providerSources {
		fmt.Fprintln(deps.Stdout, name)
	}
	return nil
}
