package server

// Server is the lifecycle of the transport servers.
type Server interface {
	// RunServer serves requests and blocks until a stop signal arrives.
	RunServer()

	// Shutdown gracefully stops every server.
	Shutdown()
}
