// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/models"
)

// productRepository is the PostgreSQL-backed implementation of
// [ProductRepository]. Listing fields without a dedicated column live in the
// JSONB "attributes" column.
type productRepository struct {
	*DB
	logger *logger.Logger
}

func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		DB:     db,
		logger: logger,
	}
}

func (p *productRepository) CreateProduct(ctx context.Context, product models.Product) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertProductQuery(product)
	if err != nil {
		log.Err(err).Str("func", "productRepository.CreateProduct").Msg("failed to create query")
		return err
	}

	result, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.CreateProduct").
			Str("product_id", product.ID).
			Msg("failed to insert product")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, err := result.RowsAffected(); err != nil || affected == 0 {
		log.Error().
			Err(err).
			Str("func", "productRepository.CreateProduct").
			Str("product_id", product.ID).
			Msg("product insert affected no rows")
		return ErrDocumentNotSaved
	}

	return nil
}

// ListProducts returns products matching filter, newest first.
func (p *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProductsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "productRepository.ListProducts").Msg("failed to create query")
		return nil, err
	}

	var products []models.Product
	err = p.withRetry(ctx, func() error {
		var queryErr error
		products, queryErr = p.queryProducts(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.ListProducts").
			Str("email", filter.Email).
			Uint64("limit", filter.Limit).
			Msg("failed to list products")
		return nil, err
	}

	return products, nil
}

func (p *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, scanErr := scanProduct(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return products, nil
}

func (p *productRepository) GetProduct(ctx context.Context, id string) (models.Product, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectProductByIDQuery(id)
	if err != nil {
		log.Err(err).Str("func", "productRepository.GetProduct").Msg("failed to create query")
		return models.Product{}, err
	}

	var product models.Product
	err = p.withRetry(ctx, func() error {
		var scanErr error
		product, scanErr = scanProduct(p.DB.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.GetProduct").
			Str("product_id", id).
			Msg("failed to get product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return product, nil
}

// UpdateProduct changes name and/or price inside a transaction so that the
// matched and modified counts are reported exactly: a row whose values
// already equal the requested ones is matched but not modified.
func (p *productRepository) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProductQuery(id, update)
	if err != nil {
		log.Err(err).Str("func", "productRepository.UpdateProduct").Msg("failed to create query")
		return models.UpdateResult{}, err
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "productRepository.UpdateProduct").Msg("failed to begin transaction")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var currentName string
	var currentPrice sql.NullFloat64
	err = tx.QueryRowContext(ctx, selectProductNameAndPriceForUpdate, id).Scan(&currentName, &currentPrice)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().Str("func", "productRepository.UpdateProduct").Str("product_id", id).Msg("product not found")
		return models.UpdateResult{Acknowledged: true}, nil
	}
	if err != nil {
		log.Err(err).Str("func", "productRepository.UpdateProduct").Str("product_id", id).Msg("failed to lock product")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	result := models.UpdateResult{Acknowledged: true, MatchedCount: 1}

	nameChanged := update.Name != nil && *update.Name != currentName
	priceChanged := update.Price != nil && (!currentPrice.Valid || float64(*update.Price) != currentPrice.Float64)
	if !nameChanged && !priceChanged {
		return result, nil
	}

	execResult, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "productRepository.UpdateProduct").Str("product_id", id).Msg("failed to update product")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	result.ModifiedCount, err = execResult.RowsAffected()
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "productRepository.UpdateProduct").Msg("failed to commit transaction")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "productRepository.UpdateProduct").
		Str("product_id", id).
		Int64("modified", result.ModifiedCount).
		Msg("product updated")

	return result, nil
}

func (p *productRepository) DeleteProduct(ctx context.Context, id string) (models.DeleteResult, error) {
	deleted, err := deleteByID(ctx, p.DB, models.Product{}.TableName(), id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.DeleteProduct").
			Str("product_id", id).
			Msg("failed to delete product")
		return models.DeleteResult{}, err
	}

	return models.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var product models.Product
	var price sql.NullFloat64
	err := row.Scan(
		&product.ID,
		&product.Email,
		&product.Name,
		&price,
		&product.Attributes,
		&product.CreatedAt,
	)
	product.Price = amountFromNull(price)
	return product, err
}

func deleteByID(ctx context.Context, db *DB, table, id string) (int64, error) {
	query, args, err := buildDeleteByIDQuery(table, id)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}
