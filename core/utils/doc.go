// Package utils provides common utility functions for the table-compare application.
// It includes helper functions for type conversion, list parsing, and other
// shared logic that doesn't fit into domain-specific packages.
package utils
