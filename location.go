package mensa

import (
	"sort"
	"strconv"
	"strings"
)

// locationIDs maps Studentenwerk location aliases to their numeric location
// ids. Some locations do not use the general Studentenwerk system and have
// no id; they need their own provider and are not listed here.
var locationIDs = map[string]int{
	"mensa-arcisstr":                421,
	"mensa-arcisstrasse":            421, // backwards compatibility
	"mensa-garching":                422,
	"mensa-leopoldstr":              411,
	"mensa-lothstr":                 431,
	"mensa-martinsried":             412,
	"mensa-pasing":                  432,
	"mensa-weihenstephan":           423,
	"stubistro-arcisstr":            450,
	"stubistro-goethestr":           418,
	"stubistro-großhadern":          414,
	"stubistro-grosshadern":         414,
	"stubistro-rosenheim":           441,
	"stubistro-schellingstr":        416,
	"stucafe-adalbertstr":           512,
	"stucafe-akademie-weihenstephan": 526,
	"stucafe-boltzmannstr":          527,
	"stucafe-garching":              524,
	"stucafe-karlstr":               532,
	"stucafe-pasing":                534,
}

// ResolveLocationID resolves a location given either as the numeric id
// itself or as a string alias. An alias with no matching entry is a
// structural configuration error (EINVALID) and yields no partial result.
func ResolveLocationID(location string) (int, error) {
	if id, err := strconv.Atoi(location); err == nil {
		return id, nil
	}
	if id, ok := locationIDs[location]; ok {
		return id, nil
	}
	return 0, Errorf(EINVALID, "location %q not found, choose one of %s",
		location, strings.Join(LocationAliases(), ", "))
}

// LocationAliases returns all known location aliases in sorted order.
func LocationAliases() []string {
	aliases := make([]string, 0, len(locationIDs))
	for alias := range locationIDs {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}
