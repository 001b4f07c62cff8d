package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/adapter"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
)

// KeysRefresher re-downloads the identity provider certificates so that
// token verification rarely waits on the network.
type KeysRefresher struct {
	identityProvider adapter.IdentityProvider
	interval         time.Duration

	logger *logger.Logger
}

func NewKeysRefresher(identityProvider adapter.IdentityProvider, interval time.Duration, logger *logger.Logger) *KeysRefresher {
	return &KeysRefresher{
		identityProvider: identityProvider,
		interval:         interval,
		logger:           logger,
	}
}

// Run refreshes the keys right away and then every interval. Failures are
// logged. Until a refresh succeeds the provider keeps verifying with the keys
// it already holds, even past their max-age.
func (k *KeysRefresher) Run(ctx context.Context) {
	k.refresh(ctx)

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			k.refresh(ctx)
		}
	}
}

func (k *KeysRefresher) refresh(ctx context.Context) {
	if err := k.identityProvider.RefreshKeys(ctx); err != nil {
		k.logger.Err(err).Str("func", "*KeysRefresher.refresh").Msg("error refreshing identity provider keys")
		return
	}
	k.logger.Debug().Str("func", "*KeysRefresher.refresh").Msg("identity provider keys refreshed")
}
