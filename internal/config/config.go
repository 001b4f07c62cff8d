// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// marketplace server. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, the authorization mode and the version.
	App App `envPrefix:"APP_"`

	// Storage holds the database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Identity holds the external identity provider credentials.
	Identity Identity `envPrefix:"IDENTITY_"`

	// Adapter holds settings of the API client used by cmd/client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// Port is the listening port used when Server.HTTPAddress is not set.
	// Env: PORT
	Port int `env:"PORT"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret used to sign and verify session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued session token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the session token lifetime (default 1h).
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// StrictAuth requires a bearer token on every mutating route, not only
	// on product creation and bid listings.
	// Env: APP_STRICT_AUTH
	StrictAuth bool `env:"STRICT_AUTH"`

	// Version is exposed via GET /version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress enables the gRPC health endpoint when non-empty.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for PostgreSQL. Either DSN or the discrete
// credentials must be set; DSN wins when both are present.
type DB struct {
	// DSN is the full connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Env: STORAGE_DB_USER
	User string `env:"USER"`
	// Env: STORAGE_DB_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_DB_HOST
	Host string `env:"HOST"`
	// Env: STORAGE_DB_NAME
	Name string `env:"NAME"`
	// SSLMode is appended as the sslmode parameter of an assembled DSN.
	// Env: STORAGE_DB_SSL_MODE
	SSLMode string `env:"SSL_MODE"`
}

// ConnString returns DSN or assembles a postgres URL from the credentials.
// It returns an empty string when neither is configured.
func (db DB) ConnString() string {
	if db.DSN != "" {
		return db.DSN
	}
	if db.Host == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   db.Host,
		Path:   "/" + db.Name,
	}
	if db.User != "" {
		u.User = url.UserPassword(db.User, db.Password)
	}
	if db.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{db.SSLMode}}.Encode()
	}

	return u.String()
}

// Identity holds the identity provider settings used to verify ID tokens.
type Identity struct {
	// ServiceKey is the base64-encoded service account JSON.
	// Env: IDENTITY_SERVICE_KEY
	ServiceKey string `env:"SERVICE_KEY"`

	// CertsURL serves the provider's x509 signing certificates keyed by kid.
	// Env: IDENTITY_CERTS_URL
	CertsURL string `env:"CERTS_URL"`

	// RequestTimeout bounds certificate downloads.
	// Env: IDENTITY_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds configuration of the outbound API client.
type Adapter struct {
	// HTTPAddress is the base URL of the marketplace API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token attached to outbound requests.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// KeysRefreshInterval is how often the identity provider certificates
	// are re-downloaded.
	// Env: WORKERS_KEYS_REFRESH_INTERVAL
	KeysRefreshInterval time.Duration `env:"KEYS_REFRESH_INTERVAL"`

	// HealthCheckInterval is how often the database is pinged to update the
	// gRPC health status (default 15s).
	// Env: WORKERS_HEALTH_CHECK_INTERVAL
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied to fields left empty by every source.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(commandLineArgs()).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
