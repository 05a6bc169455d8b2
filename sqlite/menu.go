package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/mensa-dev/mensa"
)

// dateLayout is how menu dates are stored; it sorts chronologically as
// text.
const dateLayout = "2006-01-02"

// Compile-time interface verification.
var _ mensa.MenuService = (*MenuService)(nil)

// MenuService implements mensa.MenuService using SQLite.
type MenuService struct {
	db *DB
}

// NewMenuService creates a new MenuService.
func NewMenuService(db *DB) *MenuService {
	return &MenuService{db: db}
}

// hashContent computes the xxHash of content and returns it hex encoded.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// SaveMenus upserts all menus of one extraction run for a location. An
// existing (location, date) row keeps its id; dishes, hash and fetch time
// are replaced.
func (s *MenuService) SaveMenus(ctx context.Context, location string, menus mensa.MenuMap) error {
	if location == "" {
		return mensa.Errorf(mensa.EINVALID, "menu location required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fetchedAt := time.Now().UTC().Format(time.RFC3339)
	for _, date := range menus.Dates() {
		dishes, err := json.Marshal(menus[date].Dishes)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO menus (id, location, date, dishes, content_hash, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (location, date) DO UPDATE SET
				dishes = excluded.dishes,
				content_hash = excluded.content_hash,
				fetched_at = excluded.fetched_at
		`, uuid.New().String(), location, date.Format(dateLayout),
			string(dishes), hashContent(string(dishes)), fetchedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindMenuByDate retrieves the menu of a location on a date.
func (s *MenuService) FindMenuByDate(ctx context.Context, location string, date time.Time) (*mensa.MenuRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, location, date, dishes, content_hash, fetched_at
		FROM menus
		WHERE location = ? AND date = ?
	`, location, date.Format(dateLayout))

	record, err := scanMenuRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, mensa.Errorf(mensa.ENOTFOUND, "no menu for %s on %s", location, date.Format(dateLayout))
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FindMenus retrieves menus matching the filter, ordered by date.
func (s *MenuService) FindMenus(ctx context.Context, filter mensa.MenuFilter) ([]*mensa.MenuRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, location, date, dishes, content_hash, fetched_at FROM menus WHERE 1=1")

	if filter.Location != nil {
		query.WriteString(" AND location = ?")
		args = append(args, *filter.Location)
	}
	if filter.From != nil {
		query.WriteString(" AND date >= ?")
		args = append(args, filter.From.Format(dateLayout))
	}
	if filter.To != nil {
		query.WriteString(" AND date <= ?")
		args = append(args, filter.To.Format(dateLayout))
	}

	query.WriteString(" ORDER BY date ASC, location ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*mensa.MenuRecord
	for rows.Next() {
		record, err := scanMenuRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// DeleteMenusByLocation removes all menus stored for a location.
func (s *MenuService) DeleteMenusByLocation(ctx context.Context, location string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM menus WHERE location = ?", location)
	return err
}

// scanMenuRecord reads one row into a MenuRecord, decoding the stored
// dishes and timestamps.
func scanMenuRecord(scan func(dest ...any) error) (*mensa.MenuRecord, error) {
	var record mensa.MenuRecord
	var dateStr, dishesJSON, fetchedAt string

	if err := scan(&record.ID, &record.Location, &dateStr, &dishesJSON, &record.Hash, &fetchedAt); err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu date: %w", err)
	}
	var dishes []mensa.Dish
	if err := json.Unmarshal([]byte(dishesJSON), &dishes); err != nil {
		return nil, fmt.Errorf("failed to decode dishes: %w", err)
	}
	record.Menu = mensa.NewMenu(date, dishes)

	record.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}
	return &record, nil
}
