// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProductID = "0190a1b2-3c4d-7e5f-8a9b-0c1d2e3f4a5b"

func newTestProductRepo(t *testing.T) (*productRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	l := logger.Nop()
	return &productRepository{DB: newDB(conn, l), logger: l}, mock
}

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows(productColumns)
}

func TestProductRepository_CreateProduct(t *testing.T) {
	product := models.Product{
		ID:         testProductID,
		Email:      "seller@x.io",
		Name:       "Lamp",
		Price:      models.NewAmount(10.5),
		CreatedAt:  time.Now().UTC(),
		Attributes: models.Attributes{"category": "home"},
	}

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "inserted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO products").
					WithArgs(product.ID, product.Email, product.Name, 10.5, sqlmock.AnyArg(), product.CreatedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no rows affected",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO products").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrDocumentNotSaved,
		},
		{
			name: "driver error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO products").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestProductRepo(t)
			tt.setup(mock)

			err := repo.CreateProduct(context.Background(), product)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_ListProducts_FilterByEmail(t *testing.T) {
	repo, mock := newTestProductRepo(t)
	newer := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, email, name, price, attributes, created_at FROM products WHERE email = $1 ORDER BY created_at DESC, id DESC",
	)).
		WithArgs("seller@x.io").
		WillReturnRows(productRows().
			AddRow("p-2", "seller@x.io", "Chair", 20.0, []byte(`{"color":"red"}`), newer).
			AddRow("p-1", "seller@x.io", "Lamp", 10.0, []byte(`{}`), older))

	products, err := repo.ListProducts(context.Background(), models.ProductFilter{Email: "seller@x.io"})

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p-2", products[0].ID)
	assert.Equal(t, models.NewAmount(20), products[0].Price)
	assert.Equal(t, "red", products[0].Attributes["color"])
	assert.Equal(t, "p-1", products[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListProducts_NullPrice(t *testing.T) {
	repo, mock := newTestProductRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products").
		WillReturnRows(productRows().
			AddRow(testProductID, "", "", nil, []byte(`{"title":"Chair","price_min":10}`), time.Now().UTC()))

	products, err := repo.ListProducts(context.Background(), models.ProductFilter{})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].Price)
	assert.Equal(t, "Chair", products[0].Attributes["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListProducts_Latest(t *testing.T) {
	repo, mock := newTestProductRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, email, name, price, attributes, created_at FROM products ORDER BY created_at DESC, id DESC LIMIT 6",
	)).
		WillReturnRows(productRows())

	products, err := repo.ListProducts(context.Background(), models.ProductFilter{Limit: models.LatestProductsLimit})

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListProducts_RetriesTransientError(t *testing.T) {
	repo, mock := newTestProductRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectQuery("SELECT (.+) FROM products").
		WillReturnRows(productRows().
			AddRow("p-1", "seller@x.io", "Lamp", 10.0, []byte(`{}`), time.Now()))

	products, err := repo.ListProducts(context.Background(), models.ProductFilter{})

	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListProducts_DoesNotRetryPermanentError(t *testing.T) {
	repo, mock := newTestProductRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM products").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.ListProducts(context.Background(), models.ProductFilter{})

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetProduct(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestProductRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT id, email, name, price, attributes, created_at FROM products WHERE id = $1",
		)).
			WithArgs(testProductID).
			WillReturnRows(productRows().
				AddRow(testProductID, "seller@x.io", "Lamp", 10.0, []byte(`{"image":"lamp.png"}`), time.Now()))

		product, err := repo.GetProduct(context.Background(), testProductID)

		require.NoError(t, err)
		assert.Equal(t, testProductID, product.ID)
		assert.Equal(t, "lamp.png", product.Attributes["image"])
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestProductRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM products").
			WithArgs(testProductID).
			WillReturnRows(productRows())

		_, err := repo.GetProduct(context.Background(), testProductID)

		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newTestProductRepo(t)
		mock.ExpectQuery("SELECT (.+) FROM products").
			WillReturnError(errors.New("boom"))

		_, err := repo.GetProduct(context.Background(), testProductID)

		assert.ErrorIs(t, err, ErrScanningRow)
	})
}

func TestProductRepository_UpdateProduct(t *testing.T) {
	name := "Desk lamp"
	price := models.Amount(12)
	lockQuery := regexp.QuoteMeta("SELECT name, price FROM products WHERE id = $1 FOR UPDATE")

	tests := []struct {
		name   string
		update models.ProductUpdate
		setup  func(mock sqlmock.Sqlmock)
		want   models.UpdateResult
	}{
		{
			name:   "name and price changed",
			update: models.ProductUpdate{Name: &name, Price: &price},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(testProductID).
					WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Lamp", 10.0))
				mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET name = $1, price = $2 WHERE id = $3")).
					WithArgs(name, 12.0, testProductID).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			want: models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1},
		},
		{
			name:   "only price sent",
			update: models.ProductUpdate{Price: &price},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(testProductID).
					WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Lamp", 10.0))
				mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET price = $1 WHERE id = $2")).
					WithArgs(12.0, testProductID).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			want: models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1},
		},
		{
			name:   "price set on a listing without one",
			update: models.ProductUpdate{Price: &price},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(testProductID).
					WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("", nil))
				mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET price = $1 WHERE id = $2")).
					WithArgs(12.0, testProductID).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			want: models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1},
		},
		{
			name:   "values unchanged",
			update: models.ProductUpdate{Name: &name},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(testProductID).
					WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow(name, 10.0))
				mock.ExpectRollback()
			},
			want: models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 0},
		},
		{
			name:   "product missing",
			update: models.ProductUpdate{Name: &name},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs(testProductID).
					WillReturnRows(sqlmock.NewRows([]string{"name", "price"}))
				mock.ExpectRollback()
			},
			want: models.UpdateResult{Acknowledged: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestProductRepo(t)
			tt.setup(mock)

			got, err := repo.UpdateProduct(context.Background(), testProductID, tt.update)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_UpdateProduct_Errors(t *testing.T) {
	name := "Desk lamp"

	t.Run("nothing to update", func(t *testing.T) {
		repo, mock := newTestProductRepo(t)

		_, err := repo.UpdateProduct(context.Background(), testProductID, models.ProductUpdate{})

		assert.ErrorIs(t, err, ErrNothingToUpdate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin fails", func(t *testing.T) {
		repo, mock := newTestProductRepo(t)
		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		_, err := repo.UpdateProduct(context.Background(), testProductID, models.ProductUpdate{Name: &name})

		assert.ErrorIs(t, err, ErrBeginningTransaction)
	})

	t.Run("commit fails", func(t *testing.T) {
		repo, mock := newTestProductRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name, price").
			WillReturnRows(sqlmock.NewRows([]string{"name", "price"}).AddRow("Lamp", 10.0))
		mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit().WillReturnError(errors.New("serialization"))

		_, err := repo.UpdateProduct(context.Background(), testProductID, models.ProductUpdate{Name: &name})

		assert.ErrorIs(t, err, ErrCommitingTransaction)
	})
}

func TestProductRepository_DeleteProduct(t *testing.T) {
	repo, mock := newTestProductRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(testProductID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(testProductID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	first, err := repo.DeleteProduct(context.Background(), testProductID)
	require.NoError(t, err)
	assert.Equal(t, models.DeleteResult{Acknowledged: true, DeletedCount: 1}, first)

	second, err := repo.DeleteProduct(context.Background(), testProductID)
	require.NoError(t, err)
	assert.Equal(t, models.DeleteResult{Acknowledged: true, DeletedCount: 0}, second)

	assert.NoError(t, mock.ExpectationsWereMet())
}
