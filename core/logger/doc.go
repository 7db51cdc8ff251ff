// Package logger builds the zap logger used across table-compare.
//
// Level is one of debug, info, warn or error. Format json suits services,
// console suits the CLI. WithRayID attaches the request ray id set by the
// rayid middleware so every log line of one HTTP request can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Compare failed", zap.Error(err))
package logger
