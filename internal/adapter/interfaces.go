// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound integrations of the marketplace.
//
// [IdentityProvider] verifies ID tokens issued by the external identity
// provider (Firebase-compatible, RS256 signed with rotating x509
// certificates). [APIClient] is a typed REST client for the marketplace API
// used by cmd/client.
//
// Error values defined in errors.go are returned wrapped so that callers can
// use [errors.Is] regardless of the underlying transport failure.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-smart-deals/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityProvider verifies ID tokens issued by the external identity provider.
type IdentityProvider interface {
	// VerifyIDToken checks the signature and claims of an ID token and
	// returns the verified identity. Failures wrap [ErrIdentityTokenInvalid]
	// or [ErrIdentityProviderUnavailable].
	VerifyIDToken(ctx context.Context, idToken string) (models.Identity, error)

	// RefreshKeys re-downloads the provider signing certificates.
	RefreshKeys(ctx context.Context) error
}

// APIClient talks to the marketplace REST API.
type APIClient interface {
	// SetToken stores the bearer token attached to every subsequent request.
	SetToken(token string)
	// Token returns the stored bearer token or an empty string.
	Token() string

	Ping(ctx context.Context) (string, error)
	Version(ctx context.Context) (string, error)

	// GetToken exchanges the stored identity token for a session token. The
	// profile is embedded in the session token as informational data.
	GetToken(ctx context.Context, profile map[string]any) (string, error)

	CreateUser(ctx context.Context, user models.User) (models.CreateUserResponse, error)

	CreateProduct(ctx context.Context, product models.Product) (models.InsertResult, error)
	// ListProducts returns every product, or the products owned by email when
	// it is not empty.
	ListProducts(ctx context.Context, email string) ([]models.Product, error)
	LatestProducts(ctx context.Context) ([]models.Product, error)
	// GetProduct returns nil when the product does not exist.
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error)
	DeleteProduct(ctx context.Context, id string) (models.DeleteResult, error)

	CreateBid(ctx context.Context, bid models.Bid) (models.InsertResult, error)
	ListBids(ctx context.Context, email string) ([]models.Bid, error)
	ListProductBids(ctx context.Context, productID string) ([]models.Bid, error)
	DeleteBid(ctx context.Context, id string) (models.DeleteResult, error)
}
