// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from Config: listen port, request
// body limit, read timeout, and the API key checked by the auth middleware.
package server
