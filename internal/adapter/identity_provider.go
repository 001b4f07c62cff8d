package adapter

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/config"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	issuerPrefix = "https://securetoken.google.com/"

	// defaultKeysTTL is used when the certificate response has no max-age.
	defaultKeysTTL = time.Hour
	clockSkew      = 30 * time.Second

	// minRefreshInterval limits downloads triggered by tokens with an
	// unknown kid.
	minRefreshInterval = time.Minute
)

type serviceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

type idTokenClaims struct {
	jwt.RegisteredClaims

	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

type firebaseIdentityProvider struct {
	projectID string
	issuer    string
	certsURL  string
	client    *utils.HTTPClient

	mu          sync.RWMutex
	keys        map[string]*rsa.PublicKey
	expiresAt   time.Time
	refreshedAt time.Time

	logger *logger.Logger
}

// NewFirebaseIdentityProvider constructs an [IdentityProvider] for the project
// named in the base64-encoded service account key. Certificates are fetched
// lazily on first verification or by [IdentityProvider.RefreshKeys].
func NewFirebaseIdentityProvider(cfg config.Identity, logger *logger.Logger) (IdentityProvider, error) {
	account, err := decodeServiceAccount(cfg.ServiceKey)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("func", "NewFirebaseIdentityProvider").
		Str("project_id", account.ProjectID).
		Msg("identity provider configured")

	return &firebaseIdentityProvider{
		projectID: account.ProjectID,
		issuer:    issuerPrefix + account.ProjectID,
		certsURL:  cfg.CertsURL,
		client:    utils.NewHTTPClient(cfg.RequestTimeout),
		keys:      make(map[string]*rsa.PublicKey),
		logger:    logger,
	}, nil
}

func decodeServiceAccount(serviceKey string) (serviceAccount, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(serviceKey))
	if err != nil {
		return serviceAccount{}, fmt.Errorf("%w: %w", ErrInvalidServiceKey, err)
	}

	var account serviceAccount
	if err = json.Unmarshal(raw, &account); err != nil {
		return serviceAccount{}, fmt.Errorf("%w: %w", ErrInvalidServiceKey, err)
	}
	if account.ProjectID == "" {
		return serviceAccount{}, fmt.Errorf("%w: project_id is empty", ErrInvalidServiceKey)
	}

	return account, nil
}

// VerifyIDToken implements [IdentityProvider]. The token must be RS256 signed
// by a current provider certificate, issued for this project and carry
// non-empty sub and email claims.
func (p *firebaseIdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (models.Identity, error) {
	claims := &idTokenClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: missing kid header", ErrIdentityTokenInvalid)
		}
		return p.publicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(p.projectID),
		jwt.WithIssuer(p.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockSkew),
	)
	if err != nil {
		if errors.Is(err, ErrIdentityProviderUnavailable) {
			return models.Identity{}, err
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrIdentityTokenInvalid, err)
	}

	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: empty subject", ErrIdentityTokenInvalid)
	}
	if claims.Email == "" {
		return models.Identity{}, fmt.Errorf("%w: empty email", ErrIdentityTokenInvalid)
	}

	return models.Identity{
		Email:   claims.Email,
		Subject: claims.Subject,
		Source:  models.IdentitySourceProvider,
	}, nil
}

// publicKey returns the cached key for kid, downloading the certificates when
// the cache has expired or does not know kid. An unknown kid triggers at most
// one download per minRefreshInterval. A known key outlives its cache entry
// while the provider cannot be reached.
func (p *firebaseIdentityProvider) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	now := time.Now()

	p.mu.RLock()
	key, ok := p.keys[kid]
	fresh := now.Before(p.expiresAt)
	recent := now.Sub(p.refreshedAt) < minRefreshInterval
	p.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}
	if !ok && fresh && recent {
		return nil, fmt.Errorf("%w: unknown kid %q", ErrIdentityTokenInvalid, kid)
	}

	if err := p.RefreshKeys(ctx); err != nil {
		if ok {
			logger.FromContext(ctx).Warn().
				Err(err).
				Str("func", "*firebaseIdentityProvider.publicKey").
				Str("kid", kid).
				Msg("using expired identity provider key")
			return key, nil
		}
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if key, ok = p.keys[kid]; !ok {
		return nil, fmt.Errorf("%w: unknown kid %q", ErrIdentityTokenInvalid, kid)
	}

	return key, nil
}

// RefreshKeys implements [IdentityProvider]. It replaces the cached keys with
// the certificates currently published by the provider.
func (p *firebaseIdentityProvider) RefreshKeys(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get(p.certsURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIdentityProviderUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: certificates endpoint returned %d", ErrIdentityProviderUnavailable, resp.StatusCode())
	}

	var certs map[string]string
	if err = json.Unmarshal(resp.Body(), &certs); err != nil {
		return fmt.Errorf("%w: decode certificates: %w", ErrIdentityProviderUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pem := range certs {
		key, parseErr := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if parseErr != nil {
			return fmt.Errorf("%w: certificate %q: %w", ErrIdentityProviderUnavailable, kid, parseErr)
		}
		keys[kid] = key
	}

	ttl := maxAge(resp.Header().Get("Cache-Control"))

	now := time.Now()
	p.mu.Lock()
	p.keys = keys
	p.expiresAt = now.Add(ttl)
	p.refreshedAt = now
	p.mu.Unlock()

	p.logger.Debug().
		Str("func", "*firebaseIdentityProvider.RefreshKeys").
		Int("keys", len(keys)).
		Dur("ttl", ttl).
		Msg("identity provider keys refreshed")

	return nil
}

// maxAge extracts max-age from a Cache-Control header.
func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(directive), "=")
		if !found || !strings.EqualFold(name, "max-age") {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}

	return defaultKeysTTL
}
