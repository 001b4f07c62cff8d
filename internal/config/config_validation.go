// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strconv"
	"time"
)

const (
	defaultPort                = 3000
	defaultTokenIssuer         = "go-smart-deals"
	defaultTokenDuration       = time.Hour
	defaultRequestTimeout      = 30 * time.Second
	defaultIdentityTimeout     = 10 * time.Second
	defaultKeysRefreshInterval = time.Hour
	defaultHealthCheckInterval = 15 * time.Second
	defaultAdapterAddress      = "http://localhost:3000"
	defaultVersion             = "N/A"

	// DefaultCertsURL publishes the x509 certificates that sign
	// Firebase-compatible ID tokens.
	DefaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
)

// applyDefaults fills fields that no source has set.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		port := cfg.Port
		if port == 0 {
			port = defaultPort
		}
		cfg.Server.HTTPAddress = ":" + strconv.Itoa(port)
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}

	if cfg.Identity.CertsURL == "" {
		cfg.Identity.CertsURL = DefaultCertsURL
	}
	if cfg.Identity.RequestTimeout == 0 {
		cfg.Identity.RequestTimeout = defaultIdentityTimeout
	}

	if cfg.Workers.KeysRefreshInterval == 0 {
		cfg.Workers.KeysRefreshInterval = defaultKeysRefreshInterval
	}
	if cfg.Workers.HealthCheckInterval == 0 {
		cfg.Workers.HealthCheckInterval = defaultHealthCheckInterval
	}

	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = defaultAdapterAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
}

// validate checks that the merged [StructuredConfig] has everything the
// server needs before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.ConnString() == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Identity.ServiceKey == "" || cfg.Identity.CertsURL == "" {
		return ErrInvalidIdentityConfigs
	}

	if cfg.Workers.KeysRefreshInterval <= 0 || cfg.Workers.HealthCheckInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
