package adapter

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/config"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProjectID = "smart-deals-test"
	testKid       = "kid-1"
)

type certsServer struct {
	*httptest.Server
	hits   atomic.Int32
	status atomic.Int32
}

// newCertsServer publishes a self-signed certificate for key under testKid.
func newCertsServer(t *testing.T, key *rsa.PrivateKey, status int) *certsServer {
	t.Helper()

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken.system.gserviceaccount.com"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	cs := &certsServer{}
	cs.status.Store(int32(status))
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.hits.Add(1)
		if code := int(cs.status.Load()); code != http.StatusOK {
			w.WriteHeader(code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=19302, must-revalidate, no-transform")
		_ = json.NewEncoder(w).Encode(map[string]string{testKid: string(certPEM)})
	}))
	t.Cleanup(cs.Close)

	return cs
}

func serviceKey(t *testing.T, projectID string) string {
	t.Helper()
	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   projectID,
		"client_email": "firebase-adminsdk@" + projectID + ".iam.gserviceaccount.com",
	})
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func newTestIdentityProvider(t *testing.T, certsURL string) *firebaseIdentityProvider {
	t.Helper()
	p, err := NewFirebaseIdentityProvider(config.Identity{
		ServiceKey:     serviceKey(t, testProjectID),
		CertsURL:       certsURL,
		RequestTimeout: 2 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return p.(*firebaseIdentityProvider)
}

func validIDClaims() idTokenClaims {
	now := time.Now()
	return idTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuerPrefix + testProjectID,
			Audience:  jwt.ClaimStrings{testProjectID},
			Subject:   "firebase-uid-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email:         "john@x.io",
		EmailVerified: true,
	}
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, kid string, claims idTokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestNewFirebaseIdentityProvider_InvalidServiceKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"not base64", "%%%"},
		{"not json", base64.StdEncoding.EncodeToString([]byte("plain text"))},
		{"no project id", serviceKey(t, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFirebaseIdentityProvider(config.Identity{ServiceKey: tt.key}, logger.Nop())
			assert.ErrorIs(t, err, ErrInvalidServiceKey)
		})
	}
}

func TestVerifyIDToken_Valid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newCertsServer(t, key, http.StatusOK)
	p := newTestIdentityProvider(t, srv.URL)

	identity, err := p.VerifyIDToken(context.Background(), signIDToken(t, key, testKid, validIDClaims()))

	require.NoError(t, err)
	assert.Equal(t, models.Identity{
		Email:   "john@x.io",
		Subject: "firebase-uid-1",
		Source:  models.IdentitySourceProvider,
	}, identity)
}

func TestVerifyIDToken_CachesCertificates(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newCertsServer(t, key, http.StatusOK)
	p := newTestIdentityProvider(t, srv.URL)
	token := signIDToken(t, key, testKid, validIDClaims())

	for i := 0; i < 3; i++ {
		_, err = p.VerifyIDToken(context.Background(), token)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), srv.hits.Load())

	require.NoError(t, p.RefreshKeys(context.Background()))
	assert.Equal(t, int32(2), srv.hits.Load())
}

func TestVerifyIDToken_Rejected(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newCertsServer(t, key, http.StatusOK)

	tests := []struct {
		name  string
		token func() string
	}{
		{
			name: "wrong audience",
			token: func() string {
				c := validIDClaims()
				c.Audience = jwt.ClaimStrings{"another-project"}
				return signIDToken(t, key, testKid, c)
			},
		},
		{
			name: "wrong issuer",
			token: func() string {
				c := validIDClaims()
				c.Issuer = "https://securetoken.google.com/another-project"
				return signIDToken(t, key, testKid, c)
			},
		},
		{
			name: "expired",
			token: func() string {
				c := validIDClaims()
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
				return signIDToken(t, key, testKid, c)
			},
		},
		{
			name: "issued in the future",
			token: func() string {
				c := validIDClaims()
				c.IssuedAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
				return signIDToken(t, key, testKid, c)
			},
		},
		{
			name: "empty subject",
			token: func() string {
				c := validIDClaims()
				c.Subject = ""
				return signIDToken(t, key, testKid, c)
			},
		},
		{
			name: "no email",
			token: func() string {
				c := validIDClaims()
				c.Email = ""
				return signIDToken(t, key, testKid, c)
			},
		},
		{
			name: "missing kid",
			token: func() string {
				return signIDToken(t, key, "", validIDClaims())
			},
		},
		{
			name: "unknown kid",
			token: func() string {
				return signIDToken(t, key, "rotated-away", validIDClaims())
			},
		},
		{
			name: "signed by another key",
			token: func() string {
				return signIDToken(t, otherKey, testKid, validIDClaims())
			},
		},
		{
			name: "hmac token",
			token: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, validIDClaims())
				token.Header["kid"] = testKid
				signed, signErr := token.SignedString([]byte("secret"))
				require.NoError(t, signErr)
				return signed
			},
		},
		{
			name:  "garbage",
			token: func() string { return "not.a.jwt" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestIdentityProvider(t, srv.URL)

			_, err := p.VerifyIDToken(context.Background(), tt.token())

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIdentityTokenInvalid)
		})
	}
}

func TestVerifyIDToken_ProviderUnavailable(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newCertsServer(t, key, http.StatusServiceUnavailable)
	p := newTestIdentityProvider(t, srv.URL)

	_, err = p.VerifyIDToken(context.Background(), signIDToken(t, key, testKid, validIDClaims()))

	assert.ErrorIs(t, err, ErrIdentityProviderUnavailable)
	assert.ErrorIs(t, p.RefreshKeys(context.Background()), ErrIdentityProviderUnavailable)
}

func TestVerifyIDToken_UnknownKidDoesNotRefetch(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newCertsServer(t, key, http.StatusOK)
	p := newTestIdentityProvider(t, srv.URL)

	_, err = p.VerifyIDToken(context.Background(), signIDToken(t, key, testKid, validIDClaims()))
	require.NoError(t, err)
	require.Equal(t, int32(1), srv.hits.Load())

	for _, kid := range []string{"random-1", "random-2", "random-3"} {
		_, err = p.VerifyIDToken(context.Background(), signIDToken(t, key, kid, validIDClaims()))
		assert.ErrorIs(t, err, ErrIdentityTokenInvalid)
	}
	assert.Equal(t, int32(1), srv.hits.Load())

	p.mu.Lock()
	p.refreshedAt = time.Now().Add(-2 * minRefreshInterval)
	p.mu.Unlock()

	_, err = p.VerifyIDToken(context.Background(), signIDToken(t, key, "rotated-in", validIDClaims()))
	assert.ErrorIs(t, err, ErrIdentityTokenInvalid)
	assert.Equal(t, int32(2), srv.hits.Load())
}

func TestVerifyIDToken_ExpiredCacheFallsBackWhenProviderDown(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := newCertsServer(t, key, http.StatusOK)
	p := newTestIdentityProvider(t, srv.URL)
	token := signIDToken(t, key, testKid, validIDClaims())

	_, err = p.VerifyIDToken(context.Background(), token)
	require.NoError(t, err)

	p.mu.Lock()
	p.expiresAt = time.Now().Add(-time.Second)
	p.mu.Unlock()
	srv.status.Store(http.StatusServiceUnavailable)

	identity, err := p.VerifyIDToken(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "john@x.io", identity.Email)
	assert.Equal(t, int32(2), srv.hits.Load())

	_, err = p.VerifyIDToken(context.Background(), signIDToken(t, key, "never-seen", validIDClaims()))
	assert.ErrorIs(t, err, ErrIdentityProviderUnavailable)
}

func TestMaxAge(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"public, max-age=19302, must-revalidate", 19302 * time.Second},
		{"MAX-AGE=60", time.Minute},
		{"no-cache", defaultKeysTTL},
		{"max-age=abc", defaultKeysTTL},
		{"", defaultKeysTTL},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, maxAge(tt.header))
		})
	}
}
