package sqlite

import (
	"database/sql"
	"fmt"

	"localgame-server/models/venue"
)

// SQLiteVenueDAO stores the venue catalog in a SQLite table ordered by position.
type SQLiteVenueDAO struct {
	db *sql.DB
}

func NewSQLiteVenueDAO(db *sql.DB) *SQLiteVenueDAO {
	return &SQLiteVenueDAO{db: db}
}

const upsertVenueSQL = `INSERT INTO venues
	(id, position, name, area, sport, status, players, vibe, distance_km, x, y, address, courts_or_tables)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		position = excluded.position,
		name = excluded.name,
		area = excluded.area,
		sport = excluded.sport,
		status = excluded.status,
		players = excluded.players,
		vibe = excluded.vibe,
		distance_km = excluded.distance_km,
		x = excluded.x,
		y = excluded.y,
		address = excluded.address,
		courts_or_tables = excluded.courts_or_tables`

// upsert writes one row inside tx. A repeated id in the same catalog keeps its last value.
func upsert(tx *sql.Tx, v venue.Venue, position int) error {
	_, err := tx.Exec(upsertVenueSQL,
		v.ID, position, v.Name, v.Area, string(v.Sport), string(v.Status),
		v.Players, v.Vibe, v.DistanceKm, v.X, v.Y, v.Address, v.CourtsOrTables)
	if err != nil {
		return fmt.Errorf("upserting venue %s: %w", v.ID, err)
	}
	return nil
}

// ReplaceCatalog swaps the stored catalog for venues in a single transaction.
func (dao *SQLiteVenueDAO) ReplaceCatalog(venues []venue.Venue) error {
	tx, err := dao.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM venues`); err != nil {
		return fmt.Errorf("clearing venues: %w", err)
	}
	for i, v := range venues {
		if err := upsert(tx, v, i); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}

// ListVenues returns every venue in catalog order.
func (dao *SQLiteVenueDAO) ListVenues() ([]venue.Venue, error) {
	rows, err := dao.db.Query(`SELECT id, name, area, sport, status, players, vibe, distance_km, x, y, address, courts_or_tables
		FROM venues ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying venues: %w", err)
	}
	defer rows.Close()

	var venues []venue.Venue
	for rows.Next() {
		var v venue.Venue
		var sport, status string
		if err := rows.Scan(&v.ID, &v.Name, &v.Area, &sport, &status, &v.Players, &v.Vibe,
			&v.DistanceKm, &v.X, &v.Y, &v.Address, &v.CourtsOrTables); err != nil {
			return nil, fmt.Errorf("scanning venue: %w", err)
		}
		v.Sport = venue.Sport(sport)
		v.Status = venue.Status(status)
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venues: %w", err)
	}
	return venues, nil
}
