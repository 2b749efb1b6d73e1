package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported key-value backends
const (
	DriverRedis   = "redis"
	DriverMongoDB = "mongodb"
	DriverBBolt   = "bbolt"
)

// ProfileLocal starts an embedded redis server on the configured port
const ProfileLocal = "local"

// Config holds all configuration for the application
type Config struct {
	App     AppConfig
	Server  ServerConfig
	Store   StoreConfig
	Redis   RedisConfig
	MongoDB MongoDBConfig
	BBolt   BBoltConfig
	IDs     IDsConfig
}

// AppConfig holds process-wide settings
type AppConfig struct {
	Profile  string
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	AllowedHosts    []string
	ShutdownTimeout time.Duration
}

// StoreConfig selects the key-value backend for point records
type StoreConfig struct {
	Driver    string
	KeyPrefix string
}

// RedisConfig holds redis connection and pool configuration
type RedisConfig struct {
	Host            string
	Port            int
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	PoolTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// Addr returns the host:port pair of the redis server
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	Collection     string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
}

// BBoltConfig holds the embedded bbolt store configuration
type BBoltConfig struct {
	Path    string
	Timeout time.Duration
}

// IDsConfig controls how record identifiers are generated
type IDsConfig struct {
	Strategy string
	Min      int64
	Max      int64
}

// Load loads configuration from a .env file, environment variables and config files
func Load(paths ...string) (*Config, error) {
	// A missing .env file is fine, the environment may already be populated
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings that have no sensible fallback
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverRedis, DriverMongoDB, DriverBBolt:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}

	switch c.IDs.Strategy {
	case "range":
		if c.IDs.Min >= c.IDs.Max {
			return fmt.Errorf("ids.min (%d) must be lower than ids.max (%d)", c.IDs.Min, c.IDs.Max)
		}
	case "uuid":
	default:
		return fmt.Errorf("unsupported id strategy %q", c.IDs.Strategy)
	}

	if c.Redis.PoolSize <= 0 {
		return errors.New("redis.poolSize must be positive")
	}

	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("App.Profile", "default")
	v.SetDefault("App.LogLevel", "info")

	v.SetDefault("Server.Port", "8080")
	v.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	v.SetDefault("Server.ShutdownTimeout", 5*time.Second)

	v.SetDefault("Store.Driver", DriverRedis)
	v.SetDefault("Store.KeyPrefix", "availablePoint")

	v.SetDefault("Redis.Host", "localhost")
	v.SetDefault("Redis.Port", 6379)
	v.SetDefault("Redis.Password", "")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("Redis.PoolSize", 128)
	v.SetDefault("Redis.MinIdleConns", 16)
	v.SetDefault("Redis.MaxIdleConns", 128)
	v.SetDefault("Redis.ConnMaxIdleTime", 60*time.Second)
	v.SetDefault("Redis.PoolTimeout", 4*time.Second)
	v.SetDefault("Redis.DialTimeout", 2*time.Second)
	v.SetDefault("Redis.ReadTimeout", 2*time.Second)
	v.SetDefault("Redis.WriteTimeout", 2*time.Second)

	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "point-balance")
	v.SetDefault("MongoDB.Collection", "available_points")
	v.SetDefault("MongoDB.MaxPoolSize", 128)
	v.SetDefault("MongoDB.MinPoolSize", 16)
	v.SetDefault("MongoDB.ConnectTimeout", 5*time.Second)

	v.SetDefault("BBolt.Path", "points.db")
	v.SetDefault("BBolt.Timeout", time.Second)

	v.SetDefault("IDs.Strategy", "range")
	v.SetDefault("IDs.Min", 1)
	v.SetDefault("IDs.Max", 1_000_000_000)
}
