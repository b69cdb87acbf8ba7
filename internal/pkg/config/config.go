package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string        `env:"PORT,            default=3001"`
	Env            string        `env:"ENV,             default=development"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	APIPrefix      string        `env:"API_PREFIX,      default=/api"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES, default=10485760"`
	CORSOrigins    []string      `env:"CORS_ORIGINS,    default=*"`

	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	S3      S3Config
	Twitter TwitterConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h"`
	// PasswordMinLength of 1 accepts any non-empty password.
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH, default=1"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cat_listing"`
	// Timeout bounds the connect handshake and every repository call.
	Timeout time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type S3Config struct {
	Bucket    string        `env:"S3_BUCKET,     default=cat-images"`
	Region    string        `env:"S3_REGION,     default=us-east-1"`
	Endpoint  string        `env:"S3_ENDPOINT"`
	AccessKey string        `env:"S3_ACCESS_KEY"`
	SecretKey string        `env:"S3_SECRET_KEY"`
	URLTTL    time.Duration `env:"S3_URL_TTL,    default=168h"`
}

type TwitterConfig struct {
	APIURL         string `env:"TWITTER_API_URL, default=https://api.twitter.com"`
	ConsumerKey    string `env:"TWITTER_CONSUMER_KEY"`
	ConsumerSecret string `env:"TWITTER_CONSUMER_SECRET"`
	AccessToken    string `env:"TWITTER_ACCESS_TOKEN"`
	AccessSecret   string `env:"TWITTER_ACCESS_TOKEN_SECRET"`
}

// IsDevelopment reports whether the service runs with developer defaults
// such as pretty console logs.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	cfg.APIPrefix = normalizePrefix(cfg.APIPrefix)
	return &cfg, nil
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
