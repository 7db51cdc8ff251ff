// Package loader registers the HTTP features of table-compare.
//
// Each feature implements Feature. The Manager keeps them in registration
// order and LoadAll mounts the routes of every enabled feature on the app.
package loader
