package utils

import (
	"context"

	"github.com/MKhiriev/go-smart-deals/models"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the verified caller.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}

// GetEmailFromContext returns the verified email of the caller, if any.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	identity, ok := GetIdentityFromContext(ctx)
	if !ok || identity.Email == "" {
		return "", false
	}
	return identity.Email, true
}
