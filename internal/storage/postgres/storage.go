package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	"github.com/cardafy/cardafy/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the storage relies on, kept as an
// interface so tests can substitute a pgxmock pool.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            tx_id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            address TEXT NOT NULL,
            item_name TEXT NOT NULL,
            qty INTEGER NOT NULL CHECK (qty > 0),
            price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
            date_ordered TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            status TEXT NOT NULL,
            confirmed_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS cart_items (
            id SERIAL PRIMARY KEY,
            address TEXT NOT NULL,
            title TEXT NOT NULL,
            image TEXT NOT NULL DEFAULT '',
            qty INTEGER NOT NULL CHECK (qty > 0),
            price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
            membership TEXT NOT NULL,
            slug TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, date_ordered DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_unconfirmed ON orders(date_ordered) WHERE confirmed_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_cart_items_address ON cart_items(address, id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (tx_id, name, address, item_name, qty, price, date_ordered, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING date_ordered`
	created := order
	err := r.storage.pool.QueryRow(ctx, query,
		order.TxID, order.Name, order.Address, order.ItemName,
		order.Qty, order.Price, order.DateOrdered, order.Status,
	).Scan(&created.DateOrdered)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByTxID(ctx context.Context, txID string) (*model.Order, error) {
	const query = `SELECT tx_id, name, address, item_name, qty, price, date_ordered, status, confirmed_at
                   FROM orders WHERE tx_id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, txID).Scan(
		&o.TxID, &o.Name, &o.Address, &o.ItemName, &o.Qty, &o.Price, &o.DateOrdered, &o.Status, &o.ConfirmedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT tx_id, name, address, item_name, qty, price, date_ordered, status, confirmed_at
                   FROM orders ORDER BY date_ordered DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.TxID, &o.Name, &o.Address, &o.ItemName, &o.Qty, &o.Price, &o.DateOrdered, &o.Status, &o.ConfirmedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Advance moves the order to the unique next status. The current status is
// read under a row lock so concurrent advances cannot skip a step.
func (r *orderRepository) Advance(ctx context.Context, txID string) (*model.Order, error) {
	var updated model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT status FROM orders WHERE tx_id=$1 FOR UPDATE`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, selectQuery, txID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		next, ok := model.NextStatus(current)
		if !ok {
			return fmt.Errorf("%w: current status %s", domainErrors.ErrInvalidTransition, current)
		}

		const updateQuery = `UPDATE orders SET status=$1 WHERE tx_id=$2
                             RETURNING tx_id, name, address, item_name, qty, price, date_ordered, status, confirmed_at`
		return tx.QueryRow(ctx, updateQuery, next, txID).Scan(
			&updated.TxID, &updated.Name, &updated.Address, &updated.ItemName,
			&updated.Qty, &updated.Price, &updated.DateOrdered, &updated.Status, &updated.ConfirmedAt,
		)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *orderRepository) Delete(ctx context.Context, txID string) error {
	const query = `DELETE FROM orders WHERE tx_id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, txID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SelectUnconfirmed(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT tx_id, name, address, item_name, qty, price, date_ordered, status, confirmed_at
                   FROM orders WHERE confirmed_at IS NULL ORDER BY date_ordered LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.TxID, &o.Name, &o.Address, &o.ItemName, &o.Qty, &o.Price, &o.DateOrdered, &o.Status, &o.ConfirmedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) MarkConfirmed(ctx context.Context, txID string) error {
	const query = `UPDATE orders SET confirmed_at=NOW() WHERE tx_id=$1 AND confirmed_at IS NULL`
	tag, err := r.storage.pool.Exec(ctx, query, txID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- CartRepository implementation ---

func (r *cartRepository) Add(ctx context.Context, item model.CartItem) (*model.CartItem, error) {
	const query = `INSERT INTO cart_items (address, title, image, qty, price, membership, slug)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id`
	added := item
	err := r.storage.pool.QueryRow(ctx, query,
		item.Address, item.Title, item.Image, item.Qty, item.Price, item.Membership, item.Slug,
	).Scan(&added.ID)
	if err != nil {
		return nil, err
	}
	return &added, nil
}

func (r *cartRepository) ListByAddress(ctx context.Context, address string) ([]model.CartItem, error) {
	const query = `SELECT id, address, title, image, qty, price, membership, slug
                   FROM cart_items WHERE address=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, address)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.Address, &item.Title, &item.Image, &item.Qty, &item.Price, &item.Membership, &item.Slug); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *cartRepository) DeleteByID(ctx context.Context, id int64) error {
	const query = `DELETE FROM cart_items WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes the underlying connection pool for advanced use.
func (s *Storage) Pool() dbPool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
