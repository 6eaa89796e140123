package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

func TestPGRepository_Create_DuplicateEntry(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO sales").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &model.Sale{BaseModel: model.BaseModel{ID: "sale-1"}})
	assert.ErrorIs(t, err, model.ErrDuplicateEntry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("FROM sales s WHERE s.id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s, err := repo.FindByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_Update(t *testing.T) {
	t.Run("bumps version", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("UPDATE sales SET").WillReturnResult(sqlmock.NewResult(0, 1))

		s := &model.Sale{BaseModel: model.BaseModel{ID: "sale-1"}, Version: 3}
		require.NoError(t, repo.Update(context.Background(), s))
		assert.Equal(t, 4, s.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("UPDATE sales SET").WillReturnResult(sqlmock.NewResult(0, 0))

		s := &model.Sale{BaseModel: model.BaseModel{ID: "sale-1"}, Version: 3}
		assert.ErrorIs(t, repo.Update(context.Background(), s), model.ErrVersionConflict)
		assert.Equal(t, 3, s.Version)
	})
}

func TestPGRepository_FindByStockNumber(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "stock_number", "salesperson_id", "customer_name", "status", "commission_total", "created_at", "salesperson_name"}).
		AddRow("sale-2", "A100", "sp-2", "Lee", "pending", "600", created, "Dana")

	mock.ExpectQuery("FROM sales s").
		WithArgs("A100", "sale-1").
		WillReturnRows(rows)

	items, err := repo.FindByStockNumber(context.Background(), "A100", "sale-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sale-2", items[0].ID)
	assert.Equal(t, "Dana", items[0].SalespersonName)
	assert.Equal(t, model.SaleStatusPending, items[0].Status)
	assert.Equal(t, "600", items[0].Total.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_ApplyChangeSet(t *testing.T) {
	plan := func() *model.ChangeSet {
		return &model.ChangeSet{
			StockNumber: "A100",
			Updates:     []*model.Sale{{BaseModel: model.BaseModel{ID: "sale-1"}, Version: 1}},
			Deletes:     []*model.Sale{{BaseModel: model.BaseModel{ID: "sale-2"}, Version: 2}},
			Activity:    &model.ActivityLog{ID: "act-1", ActorID: "mgr-1", Action: "Double Claim Resolved", Details: `{}`},
		}
	}

	t.Run("commits every write", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sales SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM sales").WithArgs("sale-2", 2).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO activity_logs").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		p := plan()
		require.NoError(t, repo.ApplyChangeSet(context.Background(), p))
		assert.Equal(t, 2, p.Updates[0].Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on stale delete", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE sales SET").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM sales").WithArgs("sale-2", 2).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		p := plan()
		err := repo.ApplyChangeSet(context.Background(), p)
		assert.ErrorIs(t, err, model.ErrVersionConflict)
		assert.Equal(t, 1, p.Updates[0].Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
