package config

import (
	"encoding/json"
	"os"

	"github.com/mkorobovs/sitekeeper/internal/flagx"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// After unmarshalling, non-empty fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr   string `json:"endpoint_addr"`
	DatabaseDSN    string `json:"database_dsn"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3Bucket       string `json:"s3_bucket"`
	DownloadsDir   string `json:"downloads_dir"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no file is named, nothing is
// loaded. An unreadable or invalid file panics: a half-applied config is
// worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.S3AccessKey != "" {
		config.S3AccessKey = c.S3AccessKey
	}
	if c.S3SecretKey != "" {
		config.S3SecretKey = c.S3SecretKey
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.DownloadsDir != "" {
		config.DownloadsDir = c.DownloadsDir
	}
}
