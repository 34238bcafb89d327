package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the explicit startup configuration. It is built once in main and
// handed to the components that need it; nothing reads viper afterwards.
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Media    MediaConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret     string
	SessionExpiry time.Duration
	ResetWindow   time.Duration
}

type MediaConfig struct {
	SearchMinDistance float64
	SearchMaxDistance float64
}

type ClientConfig struct {
	Origin string
}

func Load() (*Config, error) {
	viper.AddConfigPath("./")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	viper.AutomaticEnv()

	viper.SetDefault("auth.session_expiry", "72h")
	viper.SetDefault("auth.reset_window", "24h")
	viper.SetDefault("media.search_min_distance", 1000.0)
	viper.SetDefault("media.search_max_distance", 5000.0)
	viper.SetDefault("server.port", "8080")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("postgres.host"),
			Port:     viper.GetString("postgres.port"),
			User:     viper.GetString("postgres.user"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("postgres.dbname"),
			SSLMode:  viper.GetString("postgres.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("redis.db"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: viper.GetString("RABBITMQ_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:     viper.GetString("JWT_SECRET"),
			SessionExpiry: viper.GetDuration("auth.session_expiry"),
			ResetWindow:   viper.GetDuration("auth.reset_window"),
		},
		Media: MediaConfig{
			SearchMinDistance: viper.GetFloat64("media.search_min_distance"),
			SearchMaxDistance: viper.GetFloat64("media.search_max_distance"),
		},
		Client: ClientConfig{
			Origin: viper.GetString("client.origin"),
		},
	}

	return cfg, nil
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
