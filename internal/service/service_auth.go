package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/adapter"
	"github.com/MKhiriev/go-smart-deals/internal/config"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/models"
)

// reservedClaims are never copied from a client payload into the profile
// claim of a session token.
var reservedClaims = []string{"iss", "sub", "aud", "exp", "nbf", "iat", "jti", "email"}

// authService is the concrete implementation of AuthService.
// It issues HS256 session tokens and verifies bearer tokens, either locally
// (session tokens) or through the identity provider (ID tokens).
type authService struct {
	// identityProvider verifies ID tokens. Nil disables provider tokens.
	identityProvider adapter.IdentityProvider

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every session token. Bearer
	// tokens carrying this issuer are verified locally.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with token
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(identityProvider adapter.IdentityProvider, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		identityProvider: identityProvider,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		logger:           logger,
	}
}

// IssueToken signs a session token whose subject and email are the verified
// identity's email. Reserved claim names are dropped from payload before it
// is embedded as the profile claim.
//
// Returns ErrInvalidDataProvided when the identity has no email and
// ErrTokenCreationFailed (wrapped) when signing fails.
func (a *authService) IssueToken(ctx context.Context, identity models.Identity, payload map[string]any) (models.Token, error) {
	log := logger.FromContext(ctx)

	if identity.Email == "" {
		log.Error().Str("func", "*authService.IssueToken").Msg("identity without email")
		return models.Token{}, ErrInvalidDataProvided
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, identity.Email, profileFromPayload(payload), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*authService.IssueToken").Msg("error signing session token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Debug().
		Str("func", "*authService.IssueToken").
		Str("email", identity.Email).
		Str("source", identity.Source).
		Msg("session token issued")

	return token, nil
}

// VerifyToken picks the verifier by the unverified "iss" claim: tokens issued
// by this service are checked with the session key, everything else goes to
// the identity provider. The unverified issuer only routes the token; both
// verifiers check the signature.
func (a *authService) VerifyToken(ctx context.Context, tokenString string) (models.Identity, error) {
	issuer, err := utils.UnverifiedIssuer(tokenString)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if issuer == a.tokenIssuer {
		token, parseErr := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
		if parseErr != nil {
			return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, parseErr)
		}

		return models.Identity{
			Email:   token.Claims.Email,
			Subject: token.Claims.Subject,
			Source:  models.IdentitySourceSession,
		}, nil
	}

	if a.identityProvider == nil {
		return models.Identity{}, fmt.Errorf("%w: identity provider is not configured", ErrUnauthorized)
	}

	identity, err := a.identityProvider.VerifyIDToken(ctx, tokenString)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	return identity, nil
}

func profileFromPayload(payload map[string]any) map[string]any {
	if len(payload) == 0 {
		return nil
	}

	profile := make(map[string]any, len(payload))
	for key, value := range payload {
		profile[key] = value
	}
	for _, claim := range reservedClaims {
		delete(profile, claim)
	}

	if len(profile) == 0 {
		return nil
	}
	return profile
}
