package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the marketplace API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Token is attached as a bearer token to every request when non-empty.
	Token string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	// Args holds the positional arguments left after flag parsing.
	Args []string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged configuration sources.
//
// Unlike [GetStructuredConfig] it skips the server validation: the client
// needs neither a database nor signing keys.
func GetClientConfig(args []string) (*ClientConfig, error) {
	builder := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON()
	cfg, err := builder.build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return clientConfigFrom(cfg, builder.args)
}

func clientConfigFrom(cfg *StructuredConfig, args []string) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Args: args,
	}

	return clientCfg, clientCfg.validate()
}
