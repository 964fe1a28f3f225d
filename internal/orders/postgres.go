package orders

import (
	"context"
	"embed"
	"errors"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/polyglot/pkg/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the goose migrations of the orders table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Querier is the subset of *pgxpool.Pool the Postgres repository needs.
type Querier interface {
	db.TxBeginner
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores orders in the orders table.
type PostgresRepository struct {
	db Querier
}

// NewPostgresRepository returns a repository backed by q.
func NewPostgresRepository(q Querier) *PostgresRepository {
	return &PostgresRepository{db: q}
}

const orderColumns = `id, customer, quantity, unit_price, notes, status, created_at, updated_at`

func (p *PostgresRepository) Create(ctx context.Context, o Order) (Order, error) {
	row := p.db.QueryRow(ctx,
		`INSERT INTO orders (customer, quantity, unit_price, notes, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+orderColumns,
		o.Customer, o.Quantity, o.UnitPrice, o.Notes, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	return scanOrder(row)
}

func (p *PostgresRepository) Get(ctx context.Context, id int64) (Order, error) {
	return scanOrder(p.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

func (p *PostgresRepository) List(ctx context.Context) ([]Order, error) {
	rows, err := p.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Order, error) {
		return scanOrder(row)
	})
}

func (p *PostgresRepository) Update(ctx context.Context, id int64, fn func(*Order) error) (Order, error) {
	var out Order
	err := db.WithTx(ctx, p.db, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if err := fn(&o); err != nil {
			return err
		}
		out, err = scanOrder(tx.QueryRow(ctx,
			`UPDATE orders
			 SET customer = $2, quantity = $3, unit_price = $4, notes = $5, status = $6, updated_at = $7
			 WHERE id = $1
			 RETURNING `+orderColumns,
			id, o.Customer, o.Quantity, o.UnitPrice, o.Notes, o.Status, o.UpdatedAt,
		))
		return err
	})
	if err != nil {
		return Order{}, err
	}
	return out, nil
}

func (p *PostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.Customer, &o.Quantity, &o.UnitPrice, &o.Notes, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return o, err
}
