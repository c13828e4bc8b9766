package metadata

import "github.com/dmitrijs2005/tasktracker/internal/dbx"

// SQLiteRepository implements Repository over the SQLite metadata table.
type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqlQueries{
		get: `SELECT value FROM metadata WHERE key = ?`,
		set: `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`,
		delete: `DELETE FROM metadata WHERE key = ?`,
	}}}
}
