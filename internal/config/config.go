package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AdminEmail         string   `mapstructure:"admin_email"`
	AdminPassword      string   `mapstructure:"admin_password"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
}

// Load reads the YAML config at path and applies environment overrides.
// Secrets (signing key, admin credentials, database password) normally come
// from the environment, not the checked-in file.
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	loadAPIConfig(conf.API)
	loadPostgresConfig(conf.Postgres)

	return conf, nil
}

func loadAPIConfig(conf *APIConfig) {
	if v, ok := os.LookupEnv("API_PORT"); ok {
		conf.Port = v
	}
	if v, ok := os.LookupEnv("API_BASE_URL"); ok {
		conf.BaseURL = v
	}
	if v, ok := os.LookupEnv("API_JWT_SIGNING_KEY"); ok {
		conf.JWTSigningKey = v
	}
	if v, ok := os.LookupEnv("API_ADMIN_EMAIL"); ok {
		conf.AdminEmail = v
	}
	if v, ok := os.LookupEnv("API_ADMIN_PASSWORD"); ok {
		conf.AdminPassword = v
	}
	if v, ok := os.LookupEnv("API_ALLOWED_CORS_DOMAINS"); ok {
		conf.AllowedCORSDomains = strings.Split(v, ",")
	}
}

func loadPostgresConfig(conf *PostgresConfig) {
	if v, ok := os.LookupEnv("POSTGRES_HOST"); ok {
		conf.Host = v
	}
	if v, ok := os.LookupEnv("POSTGRES_PORT"); ok {
		conf.Port = v
	}
	if v, ok := os.LookupEnv("POSTGRES_USER"); ok {
		conf.User = v
	}
	if v, ok := os.LookupEnv("POSTGRES_PASSWORD"); ok {
		conf.Password = v
	}
	if v, ok := os.LookupEnv("POSTGRES_DB_NAME"); ok {
		conf.DBName = v
	}
}
