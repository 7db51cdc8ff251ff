// Package compare exposes comparison sessions over HTTP and renders reports
// for the CLI.
//
// A session is created by POST /compare with two dataset locators. Its report
// can then be filtered, re-run with other significant fields, reviewed with
// accept/reject decisions and exported as CSV, either downloaded or uploaded
// to the storage bucket under the configured export prefix.
//
// Sessions live in memory and expire after compare.session_ttl_seconds of
// inactivity.
package compare
