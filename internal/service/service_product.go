// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/store"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/internal/validators"
	"github.com/MKhiriev/go-smart-deals/models"
)

type productService struct {
	productRepository store.ProductRepository
	validator         validators.Validator
	ids               *utils.UUIDGenerator
	now               func() time.Time

	logger *logger.Logger
}

func NewProductService(productRepository store.ProductRepository, validator validators.Validator, logger *logger.Logger) ProductService {
	return &productService{
		productRepository: productRepository,
		validator:         validator,
		ids:               utils.NewUUIDGenerator(),
		now:               func() time.Time { return time.Now().UTC() },
		logger:            logger,
	}
}

// CreateProduct stores a new listing as sent. Only the format of values that
// are present is checked and the owner is not compared with the caller. A
// listing without a usable created_at is stamped with the current time.
func (p *productService) CreateProduct(ctx context.Context, product models.Product) (models.InsertResult, error) {
	log := logger.FromContext(ctx)

	if err := p.validator.Validate(ctx, product); err != nil {
		log.Err(err).Str("func", "*productService.CreateProduct").Msg("invalid product provided")
		return models.InsertResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	product.ID = p.ids.Generate()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = p.now()
	}

	if err := p.productRepository.CreateProduct(ctx, product); err != nil {
		return models.InsertResult{}, fmt.Errorf("product creation ended with error: %w", err)
	}

	return models.InsertResult{Acknowledged: true, InsertedID: product.ID}, nil
}

func (p *productService) ListProducts(ctx context.Context, email string) ([]models.Product, error) {
	products, err := p.productRepository.ListProducts(ctx, models.ProductFilter{Email: email})
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return products, nil
}

func (p *productService) ListLatestProducts(ctx context.Context) ([]models.Product, error) {
	products, err := p.productRepository.ListProducts(ctx, models.ProductFilter{Limit: models.LatestProductsLimit})
	if err != nil {
		return nil, fmt.Errorf("error listing latest products: %w", err)
	}

	return products, nil
}

func (p *productService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if !utils.IsValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	product, err := p.productRepository.GetProduct(ctx, id)
	if errors.Is(err, store.ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting product: %w", err)
	}

	return &product, nil
}

// UpdateProduct changes name and price only. An update with neither is
// rejected with ErrInvalidDataProvided.
func (p *productService) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error) {
	log := logger.FromContext(ctx)

	if !utils.IsValidID(id) {
		return models.UpdateResult{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	if update.IsEmpty() {
		log.Debug().Str("func", "*productService.UpdateProduct").Str("product_id", id).Msg("empty update")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, store.ErrNothingToUpdate)
	}
	if err := p.validator.Validate(ctx, update); err != nil {
		log.Err(err).Str("func", "*productService.UpdateProduct").Msg("invalid update provided")
		return models.UpdateResult{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	result, err := p.productRepository.UpdateProduct(ctx, id, update)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("error updating product: %w", err)
	}

	return result, nil
}

func (p *productService) DeleteProduct(ctx context.Context, id string) (models.DeleteResult, error) {
	if !utils.IsValidID(id) {
		return models.DeleteResult{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	result, err := p.productRepository.DeleteProduct(ctx, id)
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("error deleting product: %w", err)
	}

	return result, nil
}
