// Package workers runs the background jobs of the server: periodic refresh
// of the identity provider signing keys and storage health probing.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Pinger checks that a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReporter publishes the serving status, e.g. the gRPC health service.
type HealthReporter interface {
	SetServing(serving bool)
}
