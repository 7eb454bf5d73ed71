package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Payline   PaylineConfig   `mapstructure:"payline"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// PaylineConfig holds the gateway account and endpoint settings.
type PaylineConfig struct {
	MerchantID     string `mapstructure:"merchant_id"`
	AccessKey      string `mapstructure:"access_key"`
	ContractID     string `mapstructure:"contract_id"`
	Environment    string `mapstructure:"environment"` // homologation, production
	Currency       string `mapstructure:"currency"`    // EUR, USD, GBP or the numeric code
	EndpointPrefix string `mapstructure:"endpoint_prefix"`
	// WSDL locations per environment; empty means "<endpoint>?wsdl".
	WSDLPrefixHomologation string        `mapstructure:"wsdl_prefix_homologation"`
	WSDLPrefixProduction   string        `mapstructure:"wsdl_prefix_production"`
	ReferencePrefix        string        `mapstructure:"reference_prefix"`
	Version                string        `mapstructure:"version"`
	Timeout                time.Duration `mapstructure:"timeout"`
	Timezone               string        `mapstructure:"timezone"`
}

// Location resolves the timezone used to render gateway dates.
func (p PaylineConfig) Location() (*time.Location, error) {
	if p.Timezone == "" || strings.EqualFold(p.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", p.Timezone, err)
	}
	return loc, nil
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig protects the function endpoints. An empty secret disables auth.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// TelemetryConfig configures the OTLP trace exporter. An empty endpoint disables it.
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

// Load reads configuration from .env, file and environment variables.
// Environment variables override file values. Prefix: PAYLINE_.
// Nested keys use underscore: PAYLINE_SERVER_PORT, PAYLINE_REDIS_ENABLED, etc.
// Gateway credentials also accept the bare MERCHANT_ID, ACCESS_KEY,
// CONTRACT_ID, ENVIRONMENT and CURRENCY variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("payline.merchant_id", "")
	v.SetDefault("payline.access_key", "")
	v.SetDefault("payline.contract_id", "")
	v.SetDefault("payline.environment", "homologation")
	v.SetDefault("payline.currency", "USD")
	v.SetDefault("payline.endpoint_prefix", "")
	v.SetDefault("payline.wsdl_prefix_homologation", "")
	v.SetDefault("payline.wsdl_prefix_production", "")
	v.SetDefault("payline.reference_prefix", "order_")
	v.SetDefault("payline.version", "18")
	v.SetDefault("payline.timeout", "30s")
	v.SetDefault("payline.timezone", "Local")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payline_connector")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.idempotency_ttl", "24h")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "payline-connector")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "payline-connector")
	v.SetDefault("telemetry.insecure", true)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// PAYLINE_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PAYLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	legacy := map[string][]string{
		"payline.merchant_id": {"PAYLINE_MERCHANT_ID", "MERCHANT_ID"},
		"payline.access_key":  {"PAYLINE_ACCESS_KEY", "ACCESS_KEY"},
		"payline.contract_id": {"PAYLINE_CONTRACT_ID", "CONTRACT_ID"},
		"payline.environment": {"PAYLINE_ENVIRONMENT", "ENVIRONMENT"},
		"payline.currency":    {"PAYLINE_CURRENCY", "CURRENCY"},
	}
	for key, envs := range legacy {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	// A config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
