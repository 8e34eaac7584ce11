package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Remote   RemoteConfig
	Auth     AuthConfig
	Order    OrderConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver       string
	SeedDefaults bool
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RemoteConfig points at the onboarding backend. An empty URL disables it.
type RemoteConfig struct {
	DatabaseURL string
	Timeout     time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type OrderConfig struct {
	TaxRate     float64
	DeliveryFee float64
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	StoreDriverMemory = "memory"
	StoreDriverMySQL  = "mysql"
	StoreDriverRedis  = "redis"
)

// Load reads .env (if present), then the optional YAML file at path, then the
// environment. Environment variables win.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking config file: %w", err)
		}
	}

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}
	tokenTTL, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("parsing JWT_TTL: %w", err)
	}
	remoteTimeout, err := time.ParseDuration(v.GetString("REMOTE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing REMOTE_TIMEOUT: %w", err)
	}
	readTimeout, err := time.ParseDuration(v.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SERVER_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(v.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SERVER_WRITE_TIMEOUT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(v.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SERVER_SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Store: StoreConfig{
			Driver:       strings.ToLower(v.GetString("STORE_DRIVER")),
			SeedDefaults: v.GetBool("SEED_DEFAULTS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: csv(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Remote: RemoteConfig{
			DatabaseURL: v.GetString("REMOTE_DATABASE_URL"),
			Timeout:     remoteTimeout,
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		Order: OrderConfig{
			TaxRate:     v.GetFloat64("ORDER_TAX_RATE"),
			DeliveryFee: v.GetFloat64("ORDER_DELIVERY_FEE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "10s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("SEED_DEFAULTS", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "aquaflow")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "aquaflow")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "aquaflow.orders")
	v.SetDefault("REMOTE_DATABASE_URL", "")
	v.SetDefault("REMOTE_TIMEOUT", "5s")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("ORDER_TAX_RATE", 0.10)
	v.SetDefault("ORDER_DELIVERY_FEE", 5.00)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverMySQL, StoreDriverRedis:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Order.TaxRate < 0 {
		return fmt.Errorf("ORDER_TAX_RATE must be non-negative")
	}
	if c.Order.DeliveryFee < 0 {
		return fmt.Errorf("ORDER_DELIVERY_FEE must be non-negative")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
