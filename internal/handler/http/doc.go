// Package http implements the REST transport of the marketplace.
//
// It wires the chi router, the middleware chain (recovery, tracing, access
// logging, CORS, compression, request timeouts and bearer authentication) and
// the handlers for users, products and bids. Handlers decode documents, call
// the service layer and translate service and store errors into HTTP status
// codes with a {"message"} body.
package http
