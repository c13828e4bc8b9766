package metadata

import "github.com/dmitrijs2005/tasktracker/internal/dbx"

// PostgresRepository implements Repository over the PostgreSQL metadata table.
type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: sqlQueries{
		get: `SELECT value FROM metadata WHERE key = $1`,
		set: `
		INSERT INTO metadata (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`,
		delete: `DELETE FROM metadata WHERE key = $1`,
	}}}
}
