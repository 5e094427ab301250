// Package config builds the process configuration once at startup.
// Nothing else in the module reads the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when CONFIG_PATH is unset. A missing file is not an error.
const DefaultPath = "config.yaml"

type Server struct {
	Port        string   `yaml:"port"`
	GinMode     string   `yaml:"ginMode"`
	CORSOrigins []string `yaml:"corsOrigins"`
	// StaticDir, when set, is served under /views.
	StaticDir string `yaml:"staticDir"`
}

type Database struct {
	Driver         string        `yaml:"driver"`
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	Name           string        `yaml:"name"`
	SSLMode        string        `yaml:"sslMode"`
	SQLitePath     string        `yaml:"sqlitePath"`
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	RunMigrations  bool          `yaml:"runMigrations"`
}

// Redis is optional: an empty Host runs without cache and rate limiting.
type Redis struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Auth struct {
	JWTSecret    string        `yaml:"jwtSecret"`
	BcryptCost   int           `yaml:"bcryptCost"`
	JobSeekerTTL time.Duration `yaml:"jobSeekerTTL"`
	EmployerTTL  time.Duration `yaml:"employerTTL"`
	AdminTTL     time.Duration `yaml:"adminTTL"`
	// LoginRateLimitPerMinute caps login attempts per client IP. 0 disables it.
	LoginRateLimitPerMinute int `yaml:"loginRateLimitPerMinute"`
}

// Storage is optional: an empty Endpoint disables resume uploads.
type Storage struct {
	Endpoint       string `yaml:"endpoint"`
	AccessKey      string `yaml:"accessKey"`
	SecretKey      string `yaml:"secretKey"`
	Bucket         string `yaml:"bucket"`
	UseSSL         bool   `yaml:"useSSL"`
	PublicBaseURL  string `yaml:"publicBaseURL"`
	MaxResumeBytes int64  `yaml:"maxResumeBytes"`
}

type Cache struct {
	JobListTTL time.Duration `yaml:"jobListTTL"`
}

// Config is the whole process configuration.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Redis    Redis    `yaml:"redis"`
	Auth     Auth     `yaml:"auth"`
	Storage  Storage  `yaml:"storage"`
	Cache    Cache    `yaml:"cache"`
	LogLevel string   `yaml:"logLevel"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Server: Server{Port: "8080", GinMode: "release"},
		Database: Database{
			Driver:         "postgres",
			Host:           "localhost",
			Port:           "5432",
			User:           "jobboard",
			Name:           "jobboard",
			SSLMode:        "disable",
			SQLitePath:     "jobboard.db",
			ConnectTimeout: 30 * time.Second,
			RunMigrations:  true,
		},
		Redis: Redis{Port: 6379},
		Auth: Auth{
			BcryptCost:              12,
			JobSeekerTTL:            time.Hour,
			EmployerTTL:             2 * time.Hour,
			AdminTTL:                time.Hour,
			LoginRateLimitPerMinute: 10,
		},
		Storage:  Storage{Bucket: "resumes", MaxResumeBytes: 5 << 20},
		Cache:    Cache{JobListTTL: time.Minute},
		LogLevel: "info",
	}
}

// Load reads .env, then the YAML file at CONFIG_PATH (or DefaultPath), then
// applies environment overrides and validates the result.
func Load() (Config, error) {
	// .env is a convenience for local runs; real environments set variables directly.
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path, os.LookupEnv)
}

// LoadFile is Load without .env handling and with an explicit lookup.
func LoadFile(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if c.Auth.LoginRateLimitPerMinute < 0 {
		return errors.New("config: login rate limit must be >= 0")
	}
	if c.Storage.MaxResumeBytes < 0 {
		return errors.New("config: max resume bytes must be >= 0")
	}
	return nil
}

type envBinder struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (b *envBinder) str(name string, dst *string) {
	if v, ok := b.lookup(name); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func (b *envBinder) list(name string, dst *[]string) {
	var raw string
	b.str(name, &raw)
	if raw == "" {
		return
	}
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*dst = out
}

func (b *envBinder) integer(name string, dst *int) {
	var raw string
	b.str(name, &raw)
	if raw == "" {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = n
}

func (b *envBinder) integer64(name string, dst *int64) {
	var raw string
	b.str(name, &raw)
	if raw == "" {
		return
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = n
}

func (b *envBinder) boolean(name string, dst *bool) {
	var raw string
	b.str(name, &raw)
	if raw == "" {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = v
}

func (b *envBinder) duration(name string, dst *time.Duration) {
	var raw string
	b.str(name, &raw)
	if raw == "" {
		return
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = d
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	b := &envBinder{lookup: lookup}

	b.str("PORT", &cfg.Server.Port)
	b.str("GIN_MODE", &cfg.Server.GinMode)
	b.list("CORS_ORIGINS", &cfg.Server.CORSOrigins)
	b.str("STATIC_DIR", &cfg.Server.StaticDir)

	b.str("DB_DRIVER", &cfg.Database.Driver)
	b.str("DB_HOST", &cfg.Database.Host)
	b.str("DB_PORT", &cfg.Database.Port)
	b.str("DB_USER", &cfg.Database.User)
	b.str("DB_PASSWORD", &cfg.Database.Password)
	b.str("DB_NAME", &cfg.Database.Name)
	b.str("DB_SSLMODE", &cfg.Database.SSLMode)
	b.str("SQLITE_PATH", &cfg.Database.SQLitePath)
	b.duration("DB_CONNECT_TIMEOUT", &cfg.Database.ConnectTimeout)
	b.boolean("DB_RUN_MIGRATIONS", &cfg.Database.RunMigrations)

	b.str("REDIS_HOST", &cfg.Redis.Host)
	b.integer("REDIS_PORT", &cfg.Redis.Port)
	b.str("REDIS_PASSWORD", &cfg.Redis.Password)
	b.integer("REDIS_DB", &cfg.Redis.DB)

	b.str("JWT_SECRET", &cfg.Auth.JWTSecret)
	b.integer("BCRYPT_COST", &cfg.Auth.BcryptCost)
	b.duration("JWT_TTL_JOB_SEEKER", &cfg.Auth.JobSeekerTTL)
	b.duration("JWT_TTL_EMPLOYER", &cfg.Auth.EmployerTTL)
	b.duration("JWT_TTL_ADMIN", &cfg.Auth.AdminTTL)
	b.integer("LOGIN_RATE_LIMIT_PER_MINUTE", &cfg.Auth.LoginRateLimitPerMinute)

	b.str("MINIO_ENDPOINT", &cfg.Storage.Endpoint)
	b.str("MINIO_ACCESS_KEY", &cfg.Storage.AccessKey)
	b.str("MINIO_SECRET_KEY", &cfg.Storage.SecretKey)
	b.str("MINIO_BUCKET", &cfg.Storage.Bucket)
	b.boolean("MINIO_USE_SSL", &cfg.Storage.UseSSL)
	b.str("MINIO_PUBLIC_BASE_URL", &cfg.Storage.PublicBaseURL)
	b.integer64("MAX_RESUME_BYTES", &cfg.Storage.MaxResumeBytes)

	b.duration("JOB_LIST_CACHE_TTL", &cfg.Cache.JobListTTL)
	b.str("LOG_LEVEL", &cfg.LogLevel)

	if len(b.errs) > 0 {
		return fmt.Errorf("config: invalid environment: %w", errors.Join(b.errs...))
	}
	return nil
}
