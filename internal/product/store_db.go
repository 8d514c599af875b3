package product

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Save(ctx context.Context, p Product) (Product, error) {
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if p.ID == 0 {
			return s.db.QueryRowContext(ctx, `
				INSERT INTO products (name)
				VALUES ($1)
				RETURNING id, name
			`, p.Name).Scan(&p.ID, &p.Name)
		}
		return s.upsert(ctx, &p)
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// upsert writes p under its own id. A fresh row moves the identity sequence
// past p.ID; the sequence never goes backwards.
func (s *PostgresStore) upsert(ctx context.Context, p *Product) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var inserted bool
	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, (xmax = 0) AS inserted
	`, p.ID, p.Name).Scan(&p.ID, &p.Name, &inserted)
	if err != nil {
		return err
	}

	if inserted {
		_, err = tx.ExecContext(ctx, `
			SELECT setval(pg_get_serial_sequence('products', 'id'),
				GREATEST($1, nextval(pg_get_serial_sequence('products', 'id'))))
		`, p.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name
			FROM products
			WHERE id = $1
		`, id).Scan(&p.ID, &p.Name)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name
			FROM products
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := rows.Scan(&p.ID, &p.Name); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id int64) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
		return err
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
