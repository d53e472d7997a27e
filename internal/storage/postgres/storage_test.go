package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"go.uber.org/fx/fxtest"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
)

const orderColumnsSQL = "tx_id, name, address, item_name, qty, price, date_ordered, status, confirmed_at"

func orderColumns() []string {
	return []string{"tx_id", "name", "address", "item_name", "qty", "price", "date_ordered", "status", "confirmed_at"}
}

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func expectSchema(mock pgxmockv3.PgxPoolIface) {
	tableStatements := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS cart_items",
	}
	for _, stmt := range tableStatements {
		mock.ExpectExec(stmt).WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	}
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_status ON orders").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_orders_unconfirmed ON orders").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_cart_items_address ON cart_items").WillReturnResult(pgxmockv3.NewResult("CREATE", 0))
}

func TestInitSchema(t *testing.T) {
	storage, mock := newMockStorage(t)
	expectSchema(mock)

	if err := storage.initSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	txID := strings.Repeat("a", 64)
	ordered := time.Now()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(txID, "Alice", "1 Main Street", "Leather Bag", 2, 50.0, pgxmockv3.AnyArg(), model.OrderStatusPending).
		WillReturnRows(pgxmockv3.NewRows([]string{"date_ordered"}).AddRow(ordered))

	order, err := repo.Create(context.Background(), model.Order{
		TxID:        txID,
		Name:        "Alice",
		Address:     "1 Main Street",
		ItemName:    "Leather Bag",
		Qty:         2,
		Price:       50,
		DateOrdered: ordered,
		Status:      model.OrderStatusPending,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TxID != txID || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", order)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderCreateDuplicate(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(),
			pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg(), pgxmockv3.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), model.Order{TxID: strings.Repeat("a", 64)})
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestOrderGetByTxIDNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	mock.ExpectQuery("SELECT " + orderColumnsSQL).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByTxID(context.Background(), "missing")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderAdvanceLocksRow(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	txID := strings.Repeat("a", 64)
	ordered := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM orders WHERE tx_id=\\$1 FOR UPDATE").
		WithArgs(txID).
		WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.OrderStatusPending))
	mock.ExpectQuery("UPDATE orders SET status=\\$1").
		WithArgs(model.OrderStatusDelivered, txID).
		WillReturnRows(pgxmockv3.NewRows(orderColumns()).
			AddRow(txID, "Alice", "1 Main Street", "Leather Bag", 2, 50.0, ordered, model.OrderStatusDelivered, nil))
	mock.ExpectCommit()

	order, err := repo.Advance(context.Background(), txID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusDelivered {
		t.Fatalf("expected Delivered, got %s", order.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderAdvanceTerminalRollsBack(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	txID := strings.Repeat("a", 64)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM orders WHERE tx_id=\\$1 FOR UPDATE").
		WithArgs(txID).
		WillReturnRows(pgxmockv3.NewRows([]string{"status"}).AddRow(model.OrderStatusCompleted))
	mock.ExpectRollback()

	_, err := repo.Advance(context.Background(), txID)
	if !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderAdvanceUnknownRollsBack(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM orders WHERE tx_id=\\$1 FOR UPDATE").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Advance(context.Background(), "missing")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderList(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	ordered := time.Now()
	mock.ExpectQuery("SELECT " + orderColumnsSQL).
		WillReturnRows(pgxmockv3.NewRows(orderColumns()).
			AddRow(strings.Repeat("a", 64), "Alice", "1 Main Street", "Bag", 2, 50.0, ordered, model.OrderStatusPending, nil).
			AddRow(strings.Repeat("b", 64), "Bob", "2 Side Street", "Belt", 1, 25.0, ordered, model.OrderStatusCompleted, &ordered))

	orders, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected two orders, got %d", len(orders))
	}
	if orders[0].ConfirmedAt != nil {
		t.Fatal("expected first order unconfirmed")
	}
	if orders[1].ConfirmedAt == nil {
		t.Fatal("expected second order confirmed")
	}
}

func TestOrderDelete(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	mock.ExpectExec("DELETE FROM orders").
		WithArgs("tx").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.Delete(context.Background(), "tx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM orders").
		WithArgs("missing").
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderSelectUnconfirmed(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	ordered := time.Now()
	mock.ExpectQuery("SELECT " + orderColumnsSQL).
		WithArgs(10).
		WillReturnRows(pgxmockv3.NewRows(orderColumns()).
			AddRow(strings.Repeat("a", 64), "Alice", "1 Main Street", "Bag", 2, 50.0, ordered, model.OrderStatusPending, nil))

	orders, err := repo.SelectUnconfirmed(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].ConfirmedAt != nil {
		t.Fatalf("unexpected unconfirmed set: %+v", orders)
	}
}

func TestOrderMarkConfirmed(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Orders()

	mock.ExpectExec("UPDATE orders SET confirmed_at=NOW()").
		WithArgs("tx").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.MarkConfirmed(context.Background(), "tx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Already-confirmed rows match zero rows and report not found.
	mock.ExpectExec("UPDATE orders SET confirmed_at=NOW()").
		WithArgs("tx").
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.MarkConfirmed(context.Background(), "tx"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCartAddAndList(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Carts()

	mock.ExpectQuery("INSERT INTO cart_items").
		WithArgs("addr", "Bag", "bag.png", 1, 50.0, model.TierGold, "bag").
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(7)))

	item, err := repo.Add(context.Background(), model.CartItem{
		Address: "addr", Title: "Bag", Image: "bag.png", Qty: 1, Price: 50, Membership: model.TierGold, Slug: "bag",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 7 {
		t.Fatalf("expected assigned id 7, got %d", item.ID)
	}

	mock.ExpectQuery("SELECT id, address, title, image, qty, price, membership, slug").
		WithArgs("addr").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "address", "title", "image", "qty", "price", "membership", "slug"}).
			AddRow(int64(7), "addr", "Bag", "bag.png", 1, 50.0, model.TierGold, "bag"))

	items, err := repo.ListByAddress(context.Background(), "addr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != 7 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestCartDelete(t *testing.T) {
	storage, mock := newMockStorage(t)
	repo := storage.Carts()

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(int64(7)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.DeleteByID(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(int64(9)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.DeleteByID(context.Background(), 9); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("boom")
	err := storage.WithinTransaction(context.Background(), func(pgx.Tx) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	storage, mock := newMockStorage(t)
	mock.ExpectPing()
	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegisterLifecycle(t *testing.T) {
	storage, mock := newMockStorage(t)

	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, storage)

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	mock.ExpectClose()
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
