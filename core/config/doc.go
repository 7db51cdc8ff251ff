// Package config loads the table-compare configuration.
//
// Values come from environment variables, optionally seeded from a .env file,
// with defaults taken from the `default` struct tags of each section:
//   - Server: HTTP port, API key and request limits
//   - Database: connection used by db: dataset locators
//   - Storage: S3/MinIO credentials and the dataset bucket
//   - Log: level and format
//   - Compare: ignored fields, session TTL, object cache TTL, export prefix
//
// Nested keys map to upper-case variables joined by underscores, so
// compare.ignored_fields is read from COMPARE_IGNORED_FIELDS.
package config
