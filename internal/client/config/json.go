package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be written either as strings like "30s"
// or as integer nanoseconds. Parsed values are copied into the runtime
// Config; zero values leave the earlier layer untouched.
type JsonConfig struct {
	RemoteBaseURL        string         `json:"remote_base_url"`
	APIToken             string         `json:"api_token"`
	WorkerID             string         `json:"worker_id"`
	DatabasePath         string         `json:"database_path"`
	GeofenceRadiusMeters float64        `json:"geofence_radius_meters"`
	OnlineCheckInterval  timex.Duration `json:"online_check_interval"`
	NoteWindow           timex.Duration `json:"note_window"`
	LocationFile         string         `json:"location_file"`
	S3Bucket             string         `json:"s3_bucket"`
	S3Region             string         `json:"s3_region"`
	S3AccessKey          string         `json:"s3_access_key"`
	S3SecretKey          string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with values from the file named by
// FIELDSHIFT_CONFIG. Panics on read or unmarshal errors, matching the
// fail-early behavior of the rest of the bootstrap.
func parseJson(cfg *Config) {
	path := os.Getenv("FIELDSHIFT_CONFIG")
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RemoteBaseURL != "" {
		cfg.RemoteBaseURL = jc.RemoteBaseURL
	}
	if jc.APIToken != "" {
		cfg.APIToken = jc.APIToken
	}
	if jc.WorkerID != "" {
		cfg.WorkerID = jc.WorkerID
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.GeofenceRadiusMeters > 0 {
		cfg.GeofenceRadiusMeters = jc.GeofenceRadiusMeters
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.NoteWindow.Duration > 0 {
		cfg.NoteWindow = time.Duration(jc.NoteWindow.Duration)
	}
	if jc.LocationFile != "" {
		cfg.LocationFile = jc.LocationFile
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
}
