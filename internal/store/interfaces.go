package store

import (
	"context"

	"github.com/MKhiriev/go-smart-deals/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user profiles. Users are never updated or deleted.
type UserRepository interface {
	// CreateUser inserts user and returns the stored row. A second user with
	// the same email yields [ErrUserAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}

// ProductRepository persists product listings.
type ProductRepository interface {
	CreateProduct(ctx context.Context, product models.Product) error
	// ListProducts returns products ordered by created_at, newest first.
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	// GetProduct returns [ErrProductNotFound] when id matches no row.
	GetProduct(ctx context.Context, id string) (models.Product, error)
	// UpdateProduct changes only name and price.
	UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error)
	DeleteProduct(ctx context.Context, id string) (models.DeleteResult, error)
}

// BidRepository persists bids. Bids are never updated.
type BidRepository interface {
	CreateBid(ctx context.Context, bid models.Bid) error
	// ListBids returns bids ordered by bid_price descending when filtering by
	// product, and by created_at ascending otherwise.
	ListBids(ctx context.Context, filter models.BidFilter) ([]models.Bid, error)
	DeleteBid(ctx context.Context, id string) (models.DeleteResult, error)
}
