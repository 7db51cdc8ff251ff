// Package middleware groups the HTTP middleware of table-compare.
//
//   - auth: API key check on the X-API-Key header.
//   - rayid: per-request ray id stored in locals and echoed in X-Ray-ID.
//
// Register rayid first so every later log line carries the id.
package middleware
