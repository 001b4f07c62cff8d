// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the marketplace API.
//
// Each invocation runs one command, for example
//
//	smart-deals-client -server-url http://localhost:3000 products list a@x.com
//	smart-deals-client -token $ID_TOKEN product create '{"email":"a@x.com","name":"Lamp","price":10}'
//
// and prints the JSON answer of the server.
package client
