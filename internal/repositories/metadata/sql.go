package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
)

// sqlQueries differ between dialects only in placeholders and upsert syntax.
type sqlQueries struct {
	get    string
	set    string
	delete string
}

type sqlRepository struct {
	db dbx.DBTX
	q  sqlQueries
}

func (r *sqlRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *sqlRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, r.q.set, key, value); err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *sqlRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.q.delete, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

// SetMany writes all values in a single transaction when the repository is
// bound to a *sql.DB or *sql.Conn. Bound to a transaction already, it
// simply joins it.
// Keys are written in sorted order so concurrent batches lock rows alike.
func (r *sqlRepository) SetMany(ctx context.Context, values map[string][]byte) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	write := func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := &sqlRepository{db: tx, q: r.q}
		for _, k := range keys {
			if err := txRepo.Set(ctx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	}

	db, ok := r.db.(dbx.TxBeginner)
	if !ok {
		return write(ctx, r.db)
	}
	return dbx.WithTx(ctx, db, nil, write)
}
