package service

import (
	"context"

	"github.com/MKhiriev/go-smart-deals/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	// IssueToken signs a session token for a verified identity. payload is
	// embedded as the informational "profile" claim.
	IssueToken(ctx context.Context, identity models.Identity, payload map[string]any) (models.Token, error)
	// VerifyToken accepts session tokens and identity provider ID tokens.
	// Every failure wraps ErrUnauthorized.
	VerifyToken(ctx context.Context, tokenString string) (models.Identity, error)
}

type UserService interface {
	// CreateUser stores user once per email. created is false when a user
	// with the same email already exists.
	CreateUser(ctx context.Context, user models.User) (result models.InsertResult, created bool, err error)
}

type ProductService interface {
	CreateProduct(ctx context.Context, product models.Product) (models.InsertResult, error)
	// ListProducts returns all products, or those owned by email when it is
	// not empty, newest first.
	ListProducts(ctx context.Context, email string) ([]models.Product, error)
	ListLatestProducts(ctx context.Context) ([]models.Product, error)
	// GetProduct returns nil when no product has the id.
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error)
	DeleteProduct(ctx context.Context, id string) (models.DeleteResult, error)
}

type BidService interface {
	CreateBid(ctx context.Context, bid models.Bid) (models.InsertResult, error)
	// ListBids returns the bids placed by email, or every bid when email is
	// empty. A non-empty email other than callerEmail yields ErrForbidden.
	ListBids(ctx context.Context, callerEmail, email string) ([]models.Bid, error)
	// ListBidsForProduct returns the bids on a product, highest first.
	ListBidsForProduct(ctx context.Context, productID string) ([]models.Bid, error)
	DeleteBid(ctx context.Context, id string) (models.DeleteResult, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
