package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the API.
type Config struct {
	Port    string        `mapstructure:"port"`
	Gin     GinConfig     `mapstructure:"gin"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Seed    SeedConfig    `mapstructure:"seed"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DBConfig describes the storage collaborator. Statement timeouts are
// enforced by the database, not by this process.
type DBConfig struct {
	Driver           string        `mapstructure:"driver"` // postgres | sqlite
	Host             string        `mapstructure:"host"`
	Port             string        `mapstructure:"port"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	Name             string        `mapstructure:"name"`
	SSLMode          string        `mapstructure:"sslmode"`
	Path             string        `mapstructure:"path"` // sqlite file, empty for in-memory
	StatementTimeout time.Duration `mapstructure:"statement_timeout"`
	MaxOpenConns     int           `mapstructure:"max_open_conns"`
	MaxIdleConns     int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime  time.Duration `mapstructure:"conn_max_lifetime"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type CORSConfig struct {
	Origins string `mapstructure:"origins"` // comma separated
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SeedConfig controls idempotent creation of default roles, grants and an
// initial superadmin account.
type SeedConfig struct {
	Defaults      bool   `mapstructure:"defaults"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

const devJWTSecret = "default_super_secret_key"

// Load reads configs/.env (if present) and the process environment. Keys
// map to env vars by upper-casing and replacing dots, e.g. db.host -> DB_HOST.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{"configs/.env"}
	}
	// Missing .env files are fine; the environment may already be populated.
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("log.level", "info")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "postgres")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "")
	v.SetDefault("db.statement_timeout", 10*time.Second)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "granja-api")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	v.SetDefault("cors.origins", "*")
	v.SetDefault("metrics.enabled", true)

	v.SetDefault("seed.defaults", true)
	v.SetDefault("seed.admin_email", "")
	v.SetDefault("seed.admin_password", "")
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}

	if c.JWT.Secret == "" {
		if c.Gin.Mode == "release" {
			return errors.New("config: JWT_SECRET is required in release mode")
		}
		c.JWT.Secret = devJWTSecret // development fallback only
	}
	if c.JWT.TTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	if (c.Seed.AdminEmail == "") != (c.Seed.AdminPassword == "") {
		return errors.New("config: SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// AllowedOrigins splits the CORS origins list.
func (c CORSConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.Origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// PostgresDSN builds the connection URL, passing the statement timeout as a
// runtime parameter so the server enforces it.
func (c DBConfig) PostgresDSN() string {
	dsn := "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=" + c.SSLMode
	if c.StatementTimeout > 0 {
		dsn += fmt.Sprintf("&statement_timeout=%d", c.StatementTimeout.Milliseconds())
	}
	return dsn
}
