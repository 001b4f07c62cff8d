package client

import "context"

// Client runs one command line against the API.
type Client interface {
	Run(ctx context.Context, args []string) error
}
