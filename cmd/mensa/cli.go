package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	DB     *sqlite.DB
	Menus  mensa.MenuService
	Source mensa.MenuSource

	// NewWriter creates the week exporter for one output directory.
	NewWriter func(dir string) mensa.WeekWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch     FetchCmd     `cmd:"" help:"Fetch and store the current menus of a canteen"`
	Locations LocationsCmd `cmd:"" help:"List all known canteen identifiers"`
	Export    ExportCmd    `cmd:"" help:"Export stored menus as per-week JSON files"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Location string `arg:"" help:"Canteen alias, numeric Studentenwerk id, or provider name"`
	Out      string `short:"o" help:"Also export the fetched menus to this directory"`
}

// LocationsCmd is the "locations" subcommand.
type LocationsCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Out      string `short:"o" default:"dist" help:"Output directory for week files"`
	Location string `short:"l" help:"Restrict the export to one canteen"`
}
