package inventory

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewPostgresStore(db), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS products")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func TestPostgresStore_MigrateError(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS products")).
		WillReturnError(errors.New("permission denied"))

	if err := s.Migrate(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPostgresStore_Add(t *testing.T) {
	s, mock := newTestPostgresStore(t)
	s.newID = func() uint8 { return 200 }

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products (row_id, id, name, price, stock)")).
		WithArgs(sqlmock.AnyArg(), int64(200), "Burger", 1.0, int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p, err := s.Add(context.Background(), "Burger", 1.0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p != (Product{ID: 200, Name: "Burger", Price: 1.0}) {
		t.Fatalf("unexpected product %+v", p)
	}
}

func TestPostgresStore_ListOrdersByRowKey(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock"}).
		AddRow(int64(255), "Pizza", 2.5, int64(0)).
		AddRow(int64(255), "Burger", 1.0, int64(12))
	mock.ExpectQuery(`ORDER BY row_id ASC`).WillReturnRows(rows)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []Product{
		{ID: 255, Name: "Pizza", Price: 2.5},
		{ID: 255, Name: "Burger", Price: 1.0, Stock: 12},
	}
	if len(got) != len(want) {
		t.Fatalf("len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("products[%d]=%+v want=%+v", i, got[i], want[i])
		}
	}
}

func TestPostgresStore_ListError(t *testing.T) {
	s, mock := newTestPostgresStore(t)

	mock.ExpectQuery(`FROM products`).WillReturnError(errors.New("connection reset"))

	if _, err := s.List(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPostgresStore_LenAndPing(t *testing.T) {
	ctx := context.Background()
	s, mock := newTestPostgresStore(t)

	mock.ExpectPing()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM products")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if n, err := s.Len(ctx); err != nil || n != 4 {
		t.Fatalf("len=%d err=%v", n, err)
	}
}
