package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/fetch"
	"github.com/mensa-dev/mensa/fs"
	mensahttp "github.com/mensa-dev/mensa/http"
	"github.com/mensa-dev/mensa/pdftotext"
	mensaslog "github.com/mensa-dev/mensa/slog"
	"github.com/mensa-dev/mensa/sqlite"
)

// requestsPerSecond throttles outbound requests per provider domain.
const requestsPerSecond = 1.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	MenuService mensa.MenuService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mensa"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mensa --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MENSA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.MenuService = sqlite.NewMenuService(m.DB)
	deps.DB = m.DB
	deps.Menus = m.MenuService
	deps.NewWriter = func(dir string) mensa.WeekWriter { return fs.NewWriter(dir) }

	if cmd == "fetch" {
		source, err := newSource(cli.Fetch.Location, logger)
		if err != nil {
			return err
		}
		deps.Source = mensaslog.NewLoggingSource(source, logger)
	}

	return kongCtx.Run(deps)
}

// newSource selects the provider for the requested location. The PDF-based
// providers are addressed by name; everything else resolves through the
// Studentenwerk location table.
func newSource(location string, logger *slog.Logger) (mensa.MenuSource, error) {
	fetcher := mensaslog.NewLoggingFetcher(mensahttp.NewFetcher(), logger)
	limiter := fetch.NewDomainLimiter(requestsPerSecond)
	converter := pdftotext.NewConverter()

	switch location {
	case "fmi-bistro":
		s := fetch.NewFMIBistroSource(fetcher, converter)
		s.Limiter = limiter
		s.Logger = logger
		return s, nil
	case "ipp-bistro":
		s := fetch.NewIPPBistroSource(fetcher, converter)
		s.Limiter = limiter
		s.Logger = logger
		return s, nil
	case "mediziner-mensa":
		s := fetch.NewMedizinerSource(fetcher, converter)
		s.Limiter = limiter
		s.Logger = logger
		return s, nil
	}

	if _, err := mensa.ResolveLocationID(location); err != nil {
		return nil, err
	}
	s := fetch.NewStudentenwerkSource(location, fetcher)
	s.Limiter = limiter
	s.Logger = logger
	return s, nil
}

func defaultDBPath() string {
	if path := os.Getenv("MENSA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "mensa.db"
	}
	dir := filepath.Join(home, ".mensa")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "mensa.db")
}
