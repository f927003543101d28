package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// Product ids repeat, so rows are keyed by a UUIDv7 whose ordering follows
// insertion time.
const productsSchema = `
	CREATE TABLE IF NOT EXISTS products (
		row_id UUID PRIMARY KEY,
		id     SMALLINT NOT NULL,
		name   TEXT NOT NULL,
		price  DOUBLE PRECISION NOT NULL,
		stock  SMALLINT NOT NULL DEFAULT 0
	)
`

type PostgresStore struct {
	db    *sql.DB
	newID IDFunc
}

// OpenPostgres opens a pgx-backed pool for dsn and makes sure the schema
// exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	s := NewPostgresStore(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, newID: RandomID}
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func (s *PostgresStore) Migrate(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if _, err := s.db.ExecContext(ctx, productsSchema); err != nil {
			return fmt.Errorf("migrate products: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) List(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, price, stock
			FROM products
			ORDER BY row_id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var (
				p         Product
				id, stock int16
			)
			if err := rows.Scan(&id, &p.Name, &p.Price, &stock); err != nil {
				return err
			}
			p.ID, p.Stock = uint8(id), uint8(stock)
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Add(ctx context.Context, name string, price float64) (Product, error) {
	rowID, err := uuid.NewV7()
	if err != nil {
		return Product{}, err
	}
	p := newProduct(s.newID, name, price)

	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO products (row_id, id, name, price, stock)
			VALUES ($1, $2, $3, $4, $5)
		`, rowID.String(), int16(p.ID), p.Name, p.Price, int16(p.Stock))
		return err
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *PostgresStore) Len(ctx context.Context) (int, error) {
	var n int
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `SELECT count(*) FROM products`).Scan(&n)
	})
	return n, err
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
