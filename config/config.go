package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pedaler/pedalerbackend/utils"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	defaultPort         = "5000"
	defaultDatabaseName = "pedaler"
	defaultMongoHost    = "cluster0.mepvj.mongodb.net"
	defaultTimeoutSecs  = 10
)

type Config struct {
	Port           string
	StoreDriver    string
	MongoURI       string
	DatabaseName   string
	StripeSecret   string
	AllowedOrigins []string
	JWTSecret      string
	RequestTimeout time.Duration

	ServiceName string
	Env         string
	LogLevel    string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:           get("PORT", defaultPort),
		StoreDriver:    strings.ToLower(get("STORE_DRIVER", DriverMongo)),
		DatabaseName:   get("DATABASE_NAME", defaultDatabaseName),
		StripeSecret:   get("STRIPE_SECRET", ""),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS")),
		JWTSecret:      get("JWT_SECRET", ""),
		RequestTimeout: time.Duration(utils.ParseIntDefault(get("REQUEST_TIMEOUT_SECONDS", ""), defaultTimeoutSecs)) * time.Second,
		ServiceName:    get("SERVICE_NAME", "pedaler"),
		Env:            get("ENV", "dev"),
		LogLevel:       get("LOG_LEVEL", "info"),
	}

	if n, err := strconv.Atoi(cfg.Port); err != nil || n <= 0 || n > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	switch cfg.StoreDriver {
	case DriverMemory:
	case DriverMongo:
		cfg.MongoURI = get("MONGODB_URI", "")
		if cfg.MongoURI == "" {
			user, pass := getenv("DB_USER"), getenv("DB_PASS")
			if user == "" || pass == "" {
				return nil, errors.New("set MONGODB_URI or DB_USER and DB_PASS")
			}
			cfg.MongoURI = atlasURI(user, pass, get("MONGODB_HOST", defaultMongoHost))
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func atlasURI(user, pass, host string) string {
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
