package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string          `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath string          `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	AutoMigrate bool            `yaml:"auto_migrate" env:"AUTO_MIGRATE" env-default:"false"`
	BaseURL     string          `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
	FrontendDir string          `yaml:"frontend_dir" env:"FRONTEND_DIR" env-default:"web"`
	HTTP        HTTPConfig      `yaml:"http"`
	Auth        AuthConfig      `yaml:"auth"`
	Admin       AdminConfig     `yaml:"admin"`
	CSRF        CSRFConfig      `yaml:"csrf"`
	SMTP        SMTPConfig      `yaml:"smtp"`
	Scheduler   SchedulerConfig `yaml:"scheduler"`
	Uploads     UploadsConfig   `yaml:"uploads"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env-default:"30s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"15s"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" env-default:"1048576"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:8080"`
}

type AuthConfig struct {
	Secret    string        `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
	AccessTTL time.Duration `yaml:"access_ttl" env-default:"12h"`
}

// AdminConfig seeds the first administrator when no account with that email exists.
type AdminConfig struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

type CSRFConfig struct {
	Store     string        `yaml:"store" env:"CSRF_STORE" env-default:"memory"`
	TTL       time.Duration `yaml:"ttl" env-default:"2h"`
	RedisAddr string        `yaml:"redis_addr" env:"CSRF_REDIS_ADDR" env-default:"localhost:6379"`
	RedisPass string        `yaml:"redis_password" env:"CSRF_REDIS_PASSWORD"`
	RedisDB   int           `yaml:"redis_db" env-default:"0"`
}

type SMTPConfig struct {
	Host          string  `yaml:"host" env:"SMTP_HOST" env-default:"localhost"`
	Port          int     `yaml:"port" env:"SMTP_PORT" env-default:"1025"`
	Username      string  `yaml:"username" env:"SMTP_USERNAME"`
	Password      string  `yaml:"password" env:"SMTP_PASSWORD"`
	From          string  `yaml:"from" env:"SMTP_FROM" env-default:"csi-portal@localhost"`
	BatchSize     int     `yaml:"batch_size" env-default:"50"`
	RatePerSecond float64 `yaml:"rate_per_second" env-default:"5"`
}

type SchedulerConfig struct {
	Enabled    bool          `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"true"`
	Interval   time.Duration `yaml:"interval" env-default:"1m"`
	MaxRetries int           `yaml:"max_retries" env-default:"3"`
	BatchLimit int           `yaml:"batch_limit" env-default:"20"`
	StaleAfter time.Duration `yaml:"stale_after" env-default:"30m"`
}

type UploadsConfig struct {
	Dir          string   `yaml:"dir" env:"UPLOADS_DIR" env-default:"uploads"`
	MaxSize      int64    `yaml:"max_size" env-default:"5242880"`
	AllowedTypes []string `yaml:"allowed_types" env-default:"image/png,image/jpeg,image/gif,application/pdf"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"rps" env-default:"10"`
	Burst             int     `yaml:"burst" env-default:"20"`
}

func Load(path string) *Config {
	var config Config
	err := cleanenv.ReadConfig(path, &config)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &config
}

// MustLoad resolves the config path from the -config flag or CONFIG_PATH.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		path = "config/local.yaml"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", path)
	}
	return Load(path)
}

func fetchConfigPath() string {
	var res string

	if f := flag.Lookup("config"); f != nil {
		res = f.Value.String()
	}
	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
