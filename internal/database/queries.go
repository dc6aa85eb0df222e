package database

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the flag store statements.
type Queries struct {
	db DBTX
}

// NewQueries binds the statements to db.
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy of q running inside tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type WatchlistEntry struct {
	TmdbID  int64
	AddedAt time.Time
}

const getSetting = `SELECT key, value, updated_at FROM settings WHERE key = ?`

func (q *Queries) GetSetting(ctx context.Context, key string) (Setting, error) {
	row := q.db.QueryRowContext(ctx, getSetting, key)
	var s Setting
	err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt)
	return s, err
}

const setSetting = `INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (q *Queries) SetSetting(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, setSetting, key, value, time.Now().UTC())
	return err
}

const getWatchlistEntry = `SELECT tmdb_id, added_at FROM watchlist WHERE tmdb_id = ?`

func (q *Queries) GetWatchlistEntry(ctx context.Context, tmdbID int64) (WatchlistEntry, error) {
	row := q.db.QueryRowContext(ctx, getWatchlistEntry, tmdbID)
	var e WatchlistEntry
	err := row.Scan(&e.TmdbID, &e.AddedAt)
	return e, err
}

const addWatchlistEntry = `INSERT INTO watchlist (tmdb_id, added_at) VALUES (?, ?)
ON CONFLICT(tmdb_id) DO NOTHING`

func (q *Queries) AddWatchlistEntry(ctx context.Context, tmdbID int64, addedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, addWatchlistEntry, tmdbID, addedAt)
	return err
}

const deleteWatchlistEntry = `DELETE FROM watchlist WHERE tmdb_id = ?`

func (q *Queries) DeleteWatchlistEntry(ctx context.Context, tmdbID int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteWatchlistEntry, tmdbID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listWatchlist = `SELECT tmdb_id, added_at FROM watchlist ORDER BY added_at DESC, tmdb_id DESC`

func (q *Queries) ListWatchlist(ctx context.Context) ([]WatchlistEntry, error) {
	rows, err := q.db.QueryContext(ctx, listWatchlist)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []WatchlistEntry{}
	for rows.Next() {
		var e WatchlistEntry
		if err := rows.Scan(&e.TmdbID, &e.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
