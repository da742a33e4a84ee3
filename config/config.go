package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/Aashish23092/curriculum-ats/logger"
)

// Profile store drivers.
const (
	StoreSQLite = "sqlite"
	StoreMySQL  = "mysql"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Storage      StorageConfig      `mapstructure:"storage"`
	MinIO        MinIOConfig        `mapstructure:"minio"`
	ProfileStore ProfileStoreConfig `mapstructure:"profile_store"`
	Redis        RedisConfig        `mapstructure:"redis"`
	OCR          OCRConfig          `mapstructure:"ocr"`
	Log          logger.Config      `mapstructure:"log"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
	Mode        string `mapstructure:"mode"` // gin mode: debug, release, test
}

type StorageConfig struct {
	UploadsDir      string `mapstructure:"uploads_dir"`
	UseCloudStorage bool   `mapstructure:"use_cloud"`
}

type MinIOConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	Bucket        string        `mapstructure:"bucket"`
	Location      string        `mapstructure:"location"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

type ProfileStoreConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
	MySQLDSN   string `mapstructure:"mysql_dsn"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type OCRConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	Languages      []string `mapstructure:"languages"`
	MinChars       int      `mapstructure:"min_chars"`
	TessdataPrefix string   `mapstructure:"tessdata_prefix"`
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"server.port":               "SERVER_PORT",
	"server.max_file_size":      "MAX_FILE_SIZE",
	"server.mode":               "GIN_MODE",
	"storage.uploads_dir":       "UPLOADS_DIR",
	"storage.use_cloud":         "USE_CLOUD_STORAGE",
	"minio.endpoint":            "MINIO_ENDPOINT",
	"minio.access_key":          "MINIO_ACCESS_KEY",
	"minio.secret_key":          "MINIO_SECRET_KEY",
	"minio.use_ssl":             "MINIO_USE_SSL",
	"minio.bucket":              "MINIO_BUCKET",
	"minio.location":            "MINIO_LOCATION",
	"minio.presign_expiry":      "MINIO_PRESIGN_EXPIRY",
	"profile_store.driver":      "PROFILE_STORE",
	"profile_store.sqlite_path": "SQLITE_PATH",
	"profile_store.mysql_dsn":   "MYSQL_DSN",
	"redis.enabled":             "REDIS_ENABLED",
	"redis.address":             "REDIS_ADDR",
	"redis.password":            "REDIS_PASSWORD",
	"redis.db":                  "REDIS_DB",
	"redis.ttl":                 "REDIS_TTL",
	"ocr.enabled":               "OCR_ENABLED",
	"ocr.languages":             "OCR_LANGUAGES",
	"ocr.min_chars":             "OCR_MIN_CHARS",
	"ocr.tessdata_prefix":       "TESSDATA_PREFIX",
	"log.level":                 "LOG_LEVEL",
	"log.format":                "LOG_FORMAT",
	"log.report_caller":         "LOG_REPORT_CALLER",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.max_file_size", 10*1024*1024) // 10 MB
	v.SetDefault("server.mode", "release")
	v.SetDefault("storage.uploads_dir", "uploads")
	v.SetDefault("storage.use_cloud", false)
	v.SetDefault("minio.bucket", "curricula")
	v.SetDefault("minio.presign_expiry", 7*24*time.Hour)
	v.SetDefault("profile_store.driver", StoreSQLite)
	v.SetDefault("profile_store.sqlite_path", "data/profiles.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.languages", []string{"por", "eng"})
	v.SetDefault("ocr.min_chars", 20)
	v.SetDefault("ocr.tessdata_prefix", "/usr/share/tesseract-ocr/5/tessdata/")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// LoadConfig reads defaults, the optional file named by CONFIG_FILE and the
// environment, in increasing priority.
func LoadConfig() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

// Load is LoadConfig with an explicit config file; an empty path skips the
// file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.MaxFileSize <= 0 {
		return errors.New("server.max_file_size must be positive")
	}
	switch c.ProfileStore.Driver {
	case StoreSQLite:
		if c.ProfileStore.SQLitePath == "" {
			return errors.New("profile_store.sqlite_path is required for the sqlite store")
		}
	case StoreMySQL:
		if c.ProfileStore.MySQLDSN == "" {
			return errors.New("profile_store.mysql_dsn is required for the mysql store")
		}
	default:
		return fmt.Errorf("unknown profile store %q", c.ProfileStore.Driver)
	}
	if c.Storage.UseCloudStorage && (c.MinIO.Endpoint == "" || c.MinIO.Bucket == "") {
		return errors.New("minio.endpoint and minio.bucket are required when cloud storage is enabled")
	}
	return nil
}
