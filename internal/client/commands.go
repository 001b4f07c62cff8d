package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-smart-deals/internal/adapter"
	"github.com/MKhiriev/go-smart-deals/models"
)

func commands() map[string]command {
	return map[string]command{
		"ping": {
			usage: "check that the server is running",
			run: func(ctx context.Context, api adapter.APIClient, _ []string) (any, error) {
				return api.Ping(ctx)
			},
		},
		"version": {
			usage: "print the server version",
			run: func(ctx context.Context, api adapter.APIClient, _ []string) (any, error) {
				return api.Version(ctx)
			},
		},
		"token": {
			usage: "[profile-json]  exchange the -token ID token for a session token",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				profile := map[string]any{}
				if len(args) > 0 {
					if err := decodeArg(args[0], &profile); err != nil {
						return nil, err
					}
				}
				return api.GetToken(ctx, profile)
			},
		},
		"user create": {
			usage: "<user-json>",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				var user models.User
				if err := documentArg(args, 0, &user); err != nil {
					return nil, err
				}
				return api.CreateUser(ctx, user)
			},
		},
		"product create": {
			usage: "<product-json>",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				var product models.Product
				if err := documentArg(args, 0, &product); err != nil {
					return nil, err
				}
				return api.CreateProduct(ctx, product)
			},
		},
		"product get": {
			usage: "<id>",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				id, err := stringArg(args, 0, "id")
				if err != nil {
					return nil, err
				}
				return api.GetProduct(ctx, id)
			},
		},
		"product update": {
			usage: "<id> <update-json>  only name and price are applied",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				id, err := stringArg(args, 0, "id")
				if err != nil {
					return nil, err
				}
				var update models.ProductUpdate
				if err = documentArg(args, 1, &update); err != nil {
					return nil, err
				}
				return api.UpdateProduct(ctx, id, update)
			},
		},
		"product delete": {
			usage: "<id>",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				id, err := stringArg(args, 0, "id")
				if err != nil {
					return nil, err
				}
				return api.DeleteProduct(ctx, id)
			},
		},
		"products list": {
			usage: "[email]",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				return api.ListProducts(ctx, optionalArg(args, 0))
			},
		},
		"products latest": {
			usage: "the six newest products",
			run: func(ctx context.Context, api adapter.APIClient, _ []string) (any, error) {
				return api.LatestProducts(ctx)
			},
		},
		"bid create": {
			usage: "<bid-json>",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				var bid models.Bid
				if err := documentArg(args, 0, &bid); err != nil {
					return nil, err
				}
				return api.CreateBid(ctx, bid)
			},
		},
		"bid delete": {
			usage: "<id>",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				id, err := stringArg(args, 0, "id")
				if err != nil {
					return nil, err
				}
				return api.DeleteBid(ctx, id)
			},
		},
		"bids list": {
			usage: "[email]  requires -token",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				return api.ListBids(ctx, optionalArg(args, 0))
			},
		},
		"bids product": {
			usage: "<product-id>  requires -token",
			run: func(ctx context.Context, api adapter.APIClient, args []string) (any, error) {
				productID, err := stringArg(args, 0, "product-id")
				if err != nil {
					return nil, err
				}
				return api.ListProductBids(ctx, productID)
			},
		},
	}
}

func stringArg(args []string, i int, name string) (string, error) {
	if len(args) <= i || args[i] == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return args[i], nil
}

func optionalArg(args []string, i int) string {
	if len(args) <= i {
		return ""
	}
	return args[i]
}

func documentArg(args []string, i int, v any) error {
	raw, err := stringArg(args, i, "document")
	if err != nil {
		return err
	}
	return decodeArg(raw, v)
}

func decodeArg(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}
