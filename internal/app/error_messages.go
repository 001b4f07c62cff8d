// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the fixed response messages of the marketplace API so
// that handlers and the client share the same wording.
package app

const (
	// MsgServerIsRunning is the plaintext liveness answer of GET /.
	MsgServerIsRunning = "Smart server is running"

	// MsgUserAlreadyExists acknowledges a repeated POST /users.
	MsgUserAlreadyExists = "User already exist. do not need to insert again."

	// MsgUnauthorized is the body of every 401.
	MsgUnauthorized = "unauthorized access"

	// MsgForbidden is the body of every 403.
	MsgForbidden = "forbidden access"

	// MsgInternalServerError hides server side failure details.
	MsgInternalServerError = "Internal Server Error"
)
