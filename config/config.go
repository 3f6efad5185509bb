package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DBDriverPostgres = "postgres"
	DBDriverMemory   = "memory"

	StorageDriverMinio  = "minio"
	StorageDriverS3     = "s3"
	StorageDriverMemory = "memory"
)

type Config struct {
	Port               string `mapstructure:"PORT"`
	Environment        string `mapstructure:"ENVIRONMENT"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	APIV1Prefix        string `mapstructure:"API_V1_PREFIX"`
	BackendCORSOrigins string `mapstructure:"BACKEND_CORS_ORIGINS"`

	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSLMODE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	DBLogMode         bool          `mapstructure:"DB_LOG_MODE"`

	SecretKey                string        `mapstructure:"SECRET_KEY"`
	Algorithm                string        `mapstructure:"ALGORITHM"`
	AccessTokenExpireMinutes int           `mapstructure:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	RefreshTokenExpireDays   int           `mapstructure:"REFRESH_TOKEN_EXPIRE_DAYS"`
	RotateRefreshTokens      bool          `mapstructure:"ROTATE_REFRESH_TOKENS"`
	SessionSweepInterval     time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`
	BcryptCost               int           `mapstructure:"BCRYPT_COST"`

	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminName     string `mapstructure:"ADMIN_NAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	StorageDriver     string `mapstructure:"STORAGE_DRIVER"`
	MinioEndpoint     string `mapstructure:"MINIO_ENDPOINT"`
	MinioAccessKey    string `mapstructure:"MINIO_ACCESS_KEY"`
	MinioSecretKey    string `mapstructure:"MINIO_SECRET_KEY"`
	MinioBucketName   string `mapstructure:"MINIO_BUCKET_NAME"`
	MinioSecure       bool   `mapstructure:"MINIO_SECURE"`
	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3BucketName      string `mapstructure:"S3_BUCKET_NAME"`

	MediaMaxImageBytes int64 `mapstructure:"MEDIA_MAX_IMAGE_BYTES"`
	MediaMaxVideoBytes int64 `mapstructure:"MEDIA_MAX_VIDEO_BYTES"`
	MediaURLExpires    int   `mapstructure:"MEDIA_URL_EXPIRES"`

	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RateLimitPrefix string        `mapstructure:"RATE_LIMIT_PREFIX"`
	AuthRateLimit   int           `mapstructure:"AUTH_RATE_LIMIT"`
	AuthRateWindow  time.Duration `mapstructure:"AUTH_RATE_WINDOW"`
}

var defaults = map[string]interface{}{
	"PORT":                        "8080",
	"ENVIRONMENT":                 EnvDevelopment,
	"LOG_LEVEL":                   "info",
	"API_V1_PREFIX":               "/api/v1",
	"BACKEND_CORS_ORIGINS":        "*",
	"DB_DRIVER":                   DBDriverPostgres,
	"DATABASE_URL":                "",
	"DB_HOST":                     "localhost",
	"DB_PORT":                     "5432",
	"DB_USER":                     "postgres",
	"DB_PASSWORD":                 "",
	"DB_NAME":                     "waste_reporter",
	"DB_SSLMODE":                  "disable",
	"DB_MAX_IDLE_CONNS":           10,
	"DB_MAX_OPEN_CONNS":           50,
	"DB_CONN_MAX_LIFETIME":        "1h",
	"DB_LOG_MODE":                 false,
	"SECRET_KEY":                  "",
	"ALGORITHM":                   "HS256",
	"ACCESS_TOKEN_EXPIRE_MINUTES": 30,
	"REFRESH_TOKEN_EXPIRE_DAYS":   7,
	"ROTATE_REFRESH_TOKENS":       false,
	"SESSION_SWEEP_INTERVAL":      "1h",
	"BCRYPT_COST":                 10,
	"ADMIN_EMAIL":                 "",
	"ADMIN_NAME":                  "Administrator",
	"ADMIN_PASSWORD":              "",
	"STORAGE_DRIVER":              StorageDriverMinio,
	"MINIO_ENDPOINT":              "localhost:9000",
	"MINIO_ACCESS_KEY":            "",
	"MINIO_SECRET_KEY":            "",
	"MINIO_BUCKET_NAME":           "waste-reports",
	"MINIO_SECURE":                false,
	"S3_ENDPOINT":                 "",
	"S3_REGION":                   "auto",
	"S3_ACCESS_KEY_ID":            "",
	"S3_SECRET_ACCESS_KEY":        "",
	"S3_BUCKET_NAME":              "",
	"MEDIA_MAX_IMAGE_BYTES":       10 << 20,
	"MEDIA_MAX_VIDEO_BYTES":       100 << 20,
	"MEDIA_URL_EXPIRES":           3600,
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"RATE_LIMIT_PREFIX":           "wastereport:ratelimit",
	"AUTH_RATE_LIMIT":             10,
	"AUTH_RATE_WINDOW":            "1m",
}

// Load reads an optional .env file, then the environment, on top of the defaults.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Warn(".env file not found, relying on defaults and system ENV variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" && c.Environment != EnvDevelopment {
		errs = append(errs, errors.New("SECRET_KEY is required outside development"))
	}
	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("ALGORITHM %q is not supported", c.Algorithm))
	}
	switch c.DBDriver {
	case DBDriverPostgres, DBDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.DBDriver))
	}
	switch c.StorageDriver {
	case StorageDriverMinio, StorageDriverS3, StorageDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q is not supported", c.StorageDriver))
	}
	if c.AccessTokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.RefreshTokenExpireDays <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRE_DAYS must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// DSN prefers DATABASE_URL and otherwise assembles one from the DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c *Config) CORSOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.BackendCORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func (c *Config) MediaURLExpiry() time.Duration {
	return time.Duration(c.MediaURLExpires) * time.Second
}
