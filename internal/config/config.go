package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Insights InsightsConfig `mapstructure:"insights"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// S3Config points at the bucket holding the bundled catalog and exercise media.
// An empty BucketName disables object storage.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// CatalogConfig selects where the exercise library is read from.
// Source is "file" (Path/MetadataPath/FacetsDir on disk) or "s3" (object keys in the S3 bucket).
type CatalogConfig struct {
	Source            string `mapstructure:"source"`
	Path              string `mapstructure:"path"`
	MetadataPath      string `mapstructure:"metadata_path"`
	FacetsDir         string `mapstructure:"facets_dir"`
	ObjectKey         string `mapstructure:"object_key"`
	MetadataObjectKey string `mapstructure:"metadata_object_key"`
	FacetsPrefix      string `mapstructure:"facets_prefix"`
}

type InsightsConfig struct {
	// Timezone is an IANA name used for calendar-day and ISO-week bucketing.
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the configured insights timezone, falling back to time.Local.
func (c InsightsConfig) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, catalog.source -> CATALOG_SOURCE
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "workout_tracker")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("log.mode", "development")
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "assets/exercises.json")
	v.SetDefault("catalog.metadata_path", "assets/metadata.json")
	v.SetDefault("catalog.facets_dir", "assets")
	v.SetDefault("catalog.object_key", "catalog/exercises.json")
	v.SetDefault("catalog.metadata_object_key", "catalog/metadata.json")
	v.SetDefault("catalog.facets_prefix", "catalog")
	v.SetDefault("insights.timezone", "Local")

	// AutomaticEnv only resolves keys viper already knows about, so bind the ones without defaults.
	for _, key := range []string{"s3.endpoint", "s3.region", "s3.access_key_id", "s3.secret_access_key", "s3.bucket_name", "jwt.secret"} {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
