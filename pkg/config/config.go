package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	Path            string // sqlite file or ":memory:"
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // minutes
	ConnectRetries  int
}

// CORSConfig lists the browser origins allowed to call the API. An empty
// list leaves CORS headers off.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

type Config struct {
	Port        string
	GinMode     string
	SeedOnStart bool
	BcryptCost  int
	CORS        CORSConfig
	DB          *DBConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}
	corsCfg, err := LoadCORSConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        getEnv("PORT", "8000"),
		GinMode:     getEnv("GIN_MODE", "release"),
		SeedOnStart: getEnvBool("SEED_ON_START", false),
		BcryptCost:  getEnvInt("BCRYPT_COST", 10),
		CORS:        *corsCfg,
		DB:          dbCfg,
	}, nil
}

func LoadDBConfig() (*DBConfig, error) {
	cfg := &DBConfig{
		Driver:          getEnv("DB_DRIVER", DriverPostgres),
		Host:            getEnv("DB_HOST", "postgres"),
		User:            getEnv("DB_USER", "program"),
		Password:        getEnv("DB_PASSWORD", "test"),
		Name:            getEnv("DB_NAME", "travel"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
		Path:            getEnv("DB_PATH", "travel.db"),
		Port:            getEnvInt("DB_PORT", 5432),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
		ConnectRetries:  getEnvInt("DB_CONNECT_RETRIES", 10),
	}

	switch cfg.Driver {
	case DriverPostgres:
		if cfg.Host == "" || cfg.User == "" || cfg.Name == "" {
			return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("invalid DB config: DB_PATH must not be empty for sqlite")
		}
	default:
		return nil, fmt.Errorf("invalid DB config: unsupported driver %q", cfg.Driver)
	}

	return cfg, nil
}

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS (comma separated, "*" for any)
// and CORS_ALLOW_CREDENTIALS.
func LoadCORSConfig() (*CORSConfig, error) {
	cfg := &CORSConfig{
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
	}
	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", ""), ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("invalid CORS config: origin %q must start with http:// or https://", origin)
		}
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimRight(origin, "/"))
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
