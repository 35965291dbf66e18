package datasource

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/chronochart/pkg/model"
)

// SQLiteReader provides read access to a chronochart events database.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading.
func NewSQLiteReader(source Source) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadEvents reads all events from the database, chronologically ordered.
func (r *SQLiteReader) LoadEvents() ([]model.Event, error) {
	query := `
		SELECT id, title, description, date, end_date, created_at, updated_at, owner
		FROM events
		ORDER BY date, id
	`
	rows, err := r.db.Query(query)
	if err != nil {
		// Older databases only carry the core columns.
		return r.loadEventsSimple()
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		var description, owner, date, endDate, createdAt, updatedAt sql.NullString
		if err := rows.Scan(&ev.ID, &ev.Title, &description, &date,
			&endDate, &createdAt, &updatedAt, &owner); err != nil {
			continue
		}
		if description.Valid {
			ev.Description = description.String
		}
		if owner.Valid {
			ev.Owner = owner.String
		}
		if date.Valid {
			if t, err := parseDate(date.String); err == nil {
				ev.Date = t
			}
		}
		if endDate.Valid && endDate.String != "" {
			if t, err := parseDate(endDate.String); err == nil {
				ev.EndDate = &t
			}
		}
		if createdAt.Valid && createdAt.String != "" {
			if t, err := parseDate(createdAt.String); err == nil {
				ev.CreatedAt = t
			}
		}
		if updatedAt.Valid && updatedAt.String != "" {
			if t, err := parseDate(updatedAt.String); err == nil {
				ev.UpdatedAt = t
			}
		}
		if err := ev.Validate(); err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// loadEventsSimple is a fallback for databases with fewer columns.
func (r *SQLiteReader) loadEventsSimple() ([]model.Event, error) {
	rows, err := r.db.Query(`SELECT id, title, date FROM events ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		var date sql.NullString
		if err := rows.Scan(&ev.ID, &ev.Title, &date); err != nil {
			continue
		}
		if date.Valid {
			if t, err := parseDate(date.String); err == nil {
				ev.Date = t
			}
		}
		if err := ev.Validate(); err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// CountEvents returns the number of events in the database.
func (r *SQLiteReader) CountEvents() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// LastModified returns the most recent update time recorded in the database.
func (r *SQLiteReader) LastModified() (time.Time, error) {
	var updatedAt sql.NullString
	if err := r.db.QueryRow("SELECT MAX(updated_at) FROM events").Scan(&updatedAt); err != nil {
		return time.Time{}, err
	}
	if !updatedAt.Valid || updatedAt.String == "" {
		return time.Time{}, nil
	}
	return parseDate(updatedAt.String)
}
