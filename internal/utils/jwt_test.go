package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateSessionToken_Success(t *testing.T) {
	issuer := "test-issuer"
	email := "seller@x.io"
	profile := map[string]any{"name": "Seller"}

	token, err := GenerateSessionToken(issuer, email, profile, time.Hour, "secret-key")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}

	claims, ok := token.Token.Claims.(models.SessionClaims)
	if !ok {
		t.Fatalf("could not cast claims to SessionClaims, got %T", token.Token.Claims)
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != email || claims.Email != email {
		t.Errorf("expected subject and email %s, got %s / %s", email, claims.Subject, claims.Email)
	}
	if claims.Profile["name"] != "Seller" {
		t.Errorf("expected profile to be kept, got %v", claims.Profile)
	}
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		email    string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "a@x.io", time.Hour, "key"},
		{"empty email", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "a@x.io", 0, "key"},
		{"negative duration", "iss", "a@x.io", -time.Minute, "key"},
		{"empty key", "iss", "a@x.io", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSessionToken(tt.issuer, tt.email, nil, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseSessionToken_Success(t *testing.T) {
	token, err := GenerateSessionToken("iss", "buyer@x.io", map[string]any{"photo": "p.png"}, time.Hour, "key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := ValidateAndParseSessionToken(token.SignedString, "key", "iss")

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if parsed.Claims.Email != "buyer@x.io" {
		t.Errorf("expected email buyer@x.io, got %s", parsed.Claims.Email)
	}
	if parsed.Claims.Profile["photo"] != "p.png" {
		t.Errorf("expected profile photo, got %v", parsed.Claims.Profile)
	}
	if parsed.String() != token.SignedString {
		t.Error("expected signed string to be kept")
	}
}

func TestValidateAndParseSessionToken_InvalidKey(t *testing.T) {
	token, _ := GenerateSessionToken("iss", "a@x.io", nil, time.Hour, "key")

	_, err := ValidateAndParseSessionToken(token.SignedString, "other-key", "iss")

	if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		t.Errorf("expected signature error, got: %v", err)
	}
}

func TestValidateAndParseSessionToken_Expired(t *testing.T) {
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "a@x.io",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		Email: "a@x.io",
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))

	_, err := ValidateAndParseSessionToken(signed, "key", "iss")

	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected expired error, got: %v", err)
	}
}

func TestValidateAndParseSessionToken_MissingExpiry(t *testing.T) {
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "iss", Subject: "a@x.io"},
		Email:            "a@x.io",
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))

	_, err := ValidateAndParseSessionToken(signed, "key", "iss")

	if err == nil {
		t.Error("expected error for token without exp")
	}
}

func TestValidateAndParseSessionToken_MissingEmail(t *testing.T) {
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "a@x.io",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))

	_, err := ValidateAndParseSessionToken(signed, "key", "iss")

	if err == nil {
		t.Error("expected error for token without email")
	}
}

func TestValidateAndParseSessionToken_WrongIssuer(t *testing.T) {
	token, _ := GenerateSessionToken("iss", "a@x.io", nil, time.Hour, "key")

	_, err := ValidateAndParseSessionToken(token.SignedString, "key", "someone-else")

	if !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Errorf("expected issuer error, got: %v", err)
	}
}

func TestValidateAndParseSessionToken_WrongAlgorithm(t *testing.T) {
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Subject:   "a@x.io",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "a@x.io",
	}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("key"))

	_, err := ValidateAndParseSessionToken(signed, "key", "iss")

	if err == nil {
		t.Error("expected error for HS512 token")
	}
}

func TestValidateAndParseSessionToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseSessionToken("not.a.jwt", "key", "iss")
	if err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "extra spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "scheme only", header: "Bearer", wantErr: true},
		{name: "basic scheme", header: "Basic abc", wantErr: true},
		{name: "too many parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got token %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestUnverifiedIssuer(t *testing.T) {
	token, _ := GenerateSessionToken("go-smart-deals", "a@x.io", nil, time.Hour, "key")

	iss, err := UnverifiedIssuer(token.SignedString)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iss != "go-smart-deals" {
		t.Errorf("expected go-smart-deals, got %s", iss)
	}

	if _, err := UnverifiedIssuer("garbage"); err == nil {
		t.Error("expected error for garbage token")
	}
}
