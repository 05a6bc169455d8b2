// Package mensa extracts structured cafeteria menu data (dishes, prices,
// dietary markers, per-weekday dates) from loosely structured sources:
// HTML menu pages and plain text recovered from PDF menu flyers via
// pdftotext. Each provider formats its menu differently, so each gets its
// own extraction strategy, but all strategies converge on the same
// date-keyed menu records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or function (e.g., goquery/, texttable/,
// sqlite/, pdftotext/).
package mensa
