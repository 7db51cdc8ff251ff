package tablediff

import (
	"time"

	"table-compare/core/utils"
)

// Config holds configuration for comparisons.
type Config struct {
	// IgnoredFields is a comma separated list of fields that are not significant by default.
	IgnoredFields string `mapstructure:"ignored_fields" default:"fid,id,objectid,gid,created_date,modified_date,timestamp"`
	// SessionTTLSeconds is how long an idle comparison session is kept by the API.
	SessionTTLSeconds int `mapstructure:"session_ttl_seconds" default:"1800"`
	// CacheTTLSeconds is how long parsed storage objects are cached. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
	// ExportPrefix is the storage prefix under which exports are uploaded.
	ExportPrefix string `mapstructure:"export_prefix" default:"exports"`
	// DataDir is the only directory the HTTP API reads file datasets from.
	// Empty disables file datasets over HTTP.
	DataDir string `mapstructure:"data_dir" default:""`
}

// Ignored returns the parsed ignored field list.
func (c Config) Ignored() []string {
	fields := utils.SplitList(c.IgnoredFields)
	if len(fields) == 0 {
		return DefaultIgnoredFields
	}
	return fields
}

// SessionTTL returns the idle session lifetime.
func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLSeconds <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// CacheTTL returns the storage object cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
