// Package config loads runtime settings for the fieldshift client.
//
// Layering follows defaults -> JSON file -> environment, where later
// sources take precedence over earlier ones. The JSON file path comes from
// FIELDSHIFT_CONFIG; when unset no file is loaded.
package config

import "time"

// Config holds runtime settings for the fieldshift client.
type Config struct {
	// RemoteBaseURL is the base URL of the record store API.
	RemoteBaseURL string
	// APIToken is the bearer token attached to every remote request.
	APIToken string
	// WorkerID identifies this worker in session and note records.
	WorkerID string
	// DatabasePath is the on-device SQLite file.
	DatabasePath string
	// GeofenceRadiusMeters gates check-in on proximity to the subject.
	GeofenceRadiusMeters float64
	// OnlineCheckInterval is how often the watcher probes reachability.
	OnlineCheckInterval time.Duration
	// NoteWindow is how long after check-out a note may still be written.
	NoteWindow time.Duration
	// LocationFile is the JSON fix file written by the GPS agent.
	LocationFile string

	// Object storage for visit assets. Empty bucket disables uploads.
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RemoteBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "fieldshift.db"
	c.GeofenceRadiusMeters = 500
	c.OnlineCheckInterval = 30 * time.Second
	c.NoteWindow = 24 * time.Hour
	c.LocationFile = "location.json"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	return cfg
}
