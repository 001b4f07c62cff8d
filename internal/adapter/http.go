package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-smart-deals/internal/config"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/go-resty/resty/v2"
)

type httpAPIClient struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs the REST implementation of [APIClient].
// It normalises the base URL from adapterCfg.HTTPAddress, applies the request
// timeout and stores adapterCfg.Token as the initial bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAPIClient(adapterCfg config.ClientAdapter, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	a := &httpAPIClient{client: client, logger: logger}
	a.SetToken(adapterCfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIClient) Token() string {
	return h.token
}

// Ping calls GET / and returns the liveness text.
func (h *httpAPIClient) Ping(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/")
	if err != nil {
		return "", fmt.Errorf("ping request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAPIClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// GetToken posts profile to POST /getToken using the stored identity token
// and returns the issued session token. The stored token is not replaced.
func (h *httpAPIClient) GetToken(ctx context.Context, profile map[string]any) (string, error) {
	if profile == nil {
		profile = map[string]any{}
	}

	var tokenResponse models.TokenResponse
	if err := h.send(h.authedRequest(ctx).SetBody(profile), http.MethodPost, "/getToken", &tokenResponse); err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}

	return tokenResponse.Token, nil
}

func (h *httpAPIClient) CreateUser(ctx context.Context, user models.User) (models.CreateUserResponse, error) {
	var result models.CreateUserResponse
	if err := h.send(h.authedRequest(ctx).SetBody(user), http.MethodPost, "/users", &result); err != nil {
		return models.CreateUserResponse{}, fmt.Errorf("create user: %w", err)
	}

	return result, nil
}

func (h *httpAPIClient) CreateProduct(ctx context.Context, product models.Product) (models.InsertResult, error) {
	var result models.InsertResult
	if err := h.send(h.authedRequest(ctx).SetBody(product), http.MethodPost, "/products", &result); err != nil {
		return models.InsertResult{}, fmt.Errorf("create product: %w", err)
	}

	return result, nil
}

func (h *httpAPIClient) ListProducts(ctx context.Context, email string) ([]models.Product, error) {
	req := h.authedRequest(ctx)
	if email != "" {
		req.SetQueryParam("email", email)
	}

	var products []models.Product
	if err := h.send(req, http.MethodGet, "/products", &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (h *httpAPIClient) LatestProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := h.send(h.authedRequest(ctx), http.MethodGet, "/latest-products", &products); err != nil {
		return nil, fmt.Errorf("latest products: %w", err)
	}

	return products, nil
}

func (h *httpAPIClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product *models.Product
	req := h.authedRequest(ctx).SetPathParam("id", id)
	if err := h.send(req, http.MethodGet, "/products/{id}", &product); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (h *httpAPIClient) UpdateProduct(ctx context.Context, id string, update models.ProductUpdate) (models.UpdateResult, error) {
	var result models.UpdateResult
	req := h.authedRequest(ctx).SetPathParam("id", id).SetBody(update)
	if err := h.send(req, http.MethodPatch, "/products/{id}", &result); err != nil {
		return models.UpdateResult{}, fmt.Errorf("update product: %w", err)
	}

	return result, nil
}

func (h *httpAPIClient) DeleteProduct(ctx context.Context, id string) (models.DeleteResult, error) {
	var result models.DeleteResult
	req := h.authedRequest(ctx).SetPathParam("id", id)
	if err := h.send(req, http.MethodDelete, "/products/{id}", &result); err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete product: %w", err)
	}

	return result, nil
}

func (h *httpAPIClient) CreateBid(ctx context.Context, bid models.Bid) (models.InsertResult, error) {
	var result models.InsertResult
	if err := h.send(h.authedRequest(ctx).SetBody(bid), http.MethodPost, "/bids", &result); err != nil {
		return models.InsertResult{}, fmt.Errorf("create bid: %w", err)
	}

	return result, nil
}

func (h *httpAPIClient) ListBids(ctx context.Context, email string) ([]models.Bid, error) {
	req := h.authedRequest(ctx)
	if email != "" {
		req.SetQueryParam("email", email)
	}

	var bids []models.Bid
	if err := h.send(req, http.MethodGet, "/bids", &bids); err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	return bids, nil
}

func (h *httpAPIClient) ListProductBids(ctx context.Context, productID string) ([]models.Bid, error) {
	var bids []models.Bid
	req := h.authedRequest(ctx).SetPathParam("productId", productID)
	if err := h.send(req, http.MethodGet, "/products/bids/{productId}", &bids); err != nil {
		return nil, fmt.Errorf("list product bids: %w", err)
	}

	return bids, nil
}

func (h *httpAPIClient) DeleteBid(ctx context.Context, id string) (models.DeleteResult, error) {
	var result models.DeleteResult
	req := h.authedRequest(ctx).SetPathParam("id", id)
	if err := h.send(req, http.MethodDelete, "/bids/{id}", &result); err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete bid: %w", err)
	}

	return result, nil
}

func (h *httpAPIClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// send executes req and decodes a successful JSON response into result.
func (h *httpAPIClient) send(req *resty.Request, method, path string, result any) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s request: %w", method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("func", "*httpAPIClient.send").
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode()).
			Msg("request rejected")
		return err
	}

	if err = json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}
