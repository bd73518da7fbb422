package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays cfg with FIELDSHIFT_* environment variables. Unset and
// malformed values leave the earlier layer untouched.
func parseEnv(cfg *Config) {
	if v := os.Getenv("FIELDSHIFT_REMOTE_URL"); v != "" {
		cfg.RemoteBaseURL = v
	}
	if v := os.Getenv("FIELDSHIFT_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("FIELDSHIFT_WORKER_ID"); v != "" {
		cfg.WorkerID = v
	}
	if v := os.Getenv("FIELDSHIFT_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("FIELDSHIFT_GEOFENCE_RADIUS_M"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.GeofenceRadiusMeters = f
		}
	}
	if v := os.Getenv("FIELDSHIFT_ONLINE_CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.OnlineCheckInterval = d
		}
	}
	if v := os.Getenv("FIELDSHIFT_NOTE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.NoteWindow = d
		}
	}
	if v := os.Getenv("FIELDSHIFT_LOCATION_FILE"); v != "" {
		cfg.LocationFile = v
	}
	if v := os.Getenv("FIELDSHIFT_S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("FIELDSHIFT_S3_REGION"); v != "" {
		cfg.S3Region = v
	}
	if v := os.Getenv("FIELDSHIFT_S3_ACCESS_KEY"); v != "" {
		cfg.S3AccessKey = v
	}
	if v := os.Getenv("FIELDSHIFT_S3_SECRET_KEY"); v != "" {
		cfg.S3SecretKey = v
	}
}
