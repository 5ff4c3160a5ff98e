package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Драйверы хранилища заявок
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	ServiceHost string
	ServicePort int
	// Размер страницы списка заявок, общий для всех страниц
	PageSize  int
	Store     StoreConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

type StoreConfig struct {
	Driver          string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	PostgresDSN     string
	Timeout         time.Duration
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

// Enabled сообщает, задан ли адрес Redis
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type RateLimitConfig struct {
	Enabled bool
	// Формат ulule/limiter: "<лимит>-<S|M|H|D>"
	Rate string
}

type CORSConfig struct {
	AllowOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	envConfigName  = "CONFIG_NAME"
	envMongoURI    = "MONGODB_URI"
	envDatabaseDSN = "DATABASE_DSN"
	envRedisHost   = "REDIS_HOST"
	envRedisPort   = "REDIS_PORT"
	envRedisUser   = "REDIS_USER"
	envRedisPass   = "REDIS_PASSWORD"
)

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv(envConfigName) != "" {
		configName = os.Getenv(envConfigName)
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("store.mongouri", envMongoURI)
	_ = v.BindEnv("store.postgresdsn", envDatabaseDSN)

	// файл конфигурации необязателен, значения по умолчанию покрывают все ключи
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Info("config file not found, using defaults and environment")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// инициализация Redis конфигурации из env
	if err := loadRedisFromEnv(&cfg.Redis); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info("config parsed")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("servicehost", "0.0.0.0")
	v.SetDefault("serviceport", 8080)
	v.SetDefault("pagesize", 6)

	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("store.mongouri", "mongodb://localhost:27017")
	v.SetDefault("store.mongodatabase", "crisis-corner")
	v.SetDefault("store.mongocollection", "requests")
	v.SetDefault("store.postgresdsn", "")
	v.SetDefault("store.timeout", 10*time.Second)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rate", "300-M")

	v.SetDefault("cors.alloworigins", []string{"http://localhost:3000"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func loadRedisFromEnv(rc *RedisConfig) error {
	if host := os.Getenv(envRedisHost); host != "" {
		rc.Host = host
	}
	if port := os.Getenv(envRedisPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("redis port must be int value: %w", err)
		}
		rc.Port = p
	}
	if rc.Port == 0 {
		rc.Port = 6379
	}
	if pass := os.Getenv(envRedisPass); pass != "" {
		rc.Password = pass
	}
	if user := os.Getenv(envRedisUser); user != "" {
		rc.User = user
	}
	if rc.DialTimeout == 0 {
		rc.DialTimeout = 10 * time.Second
	}
	if rc.ReadTimeout == 0 {
		rc.ReadTimeout = 10 * time.Second
	}
	return nil
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be >= 1, got %d", c.PageSize)
	}
	if c.ServicePort <= 0 || c.ServicePort > 65535 {
		return fmt.Errorf("invalid service port %d", c.ServicePort)
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("%s is required for the mongo driver", envMongoURI)
		}
	case DriverPostgres:
		if c.Store.PostgresDSN == "" {
			return fmt.Errorf("%s is required for the postgres driver", envDatabaseDSN)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}

	return nil
}

// Address возвращает адрес, на котором слушает HTTP сервер
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.ServiceHost, c.ServicePort)
}
