package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DatabaseDriver string // SALES_DB_DRIVER (default "postgres"; also "pgx", "sqlite")
	DatabaseURL    string // SALES_DATABASE_URL or DATABASE_URL (default built from DB_*)
	HTTPAddr       string // SALES_HTTP_ADDR (default ":5000")
	GRPCAddr       string // SALES_GRPC_ADDR (optional, empty = no gRPC health listener)
	CORSOrigins    []string
	Environment    string // SALES_ENV or NODE_ENV (default "production")
	NATSURL        string // SALES_NATS_URL (optional, empty = no events)
	LogLevel       string // SALES_LOG_LEVEL (default "info")
	LogFormat      string // SALES_LOG_FORMAT (default "text")

	// Import source settings
	S3Endpoint string // SALES_S3_ENDPOINT (custom endpoint for MinIO)
	S3Region   string // SALES_S3_REGION (default "us-east-1")
}

// IsDevelopment reports whether error details may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// fileConfig is the optional TOML file named by SALES_CONFIG.
type fileConfig struct {
	Environment string `toml:"environment"`
	Database    struct {
		Driver   string `toml:"driver"`
		URL      string `toml:"url"`
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		Name     string `toml:"name"`
		User     string `toml:"user"`
		Password string `toml:"password"`
	} `toml:"database"`
	HTTP struct {
		Addr        string   `toml:"addr"`
		CORSOrigins []string `toml:"cors_origins"`
	} `toml:"http"`
	GRPC struct {
		Addr string `toml:"addr"`
	} `toml:"grpc"`
	NATS struct {
		URL string `toml:"url"`
	} `toml:"nats"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
	S3 struct {
		Endpoint string `toml:"endpoint"`
		Region   string `toml:"region"`
	} `toml:"s3"`
}

// Load reads configuration from the environment, falling back to the TOML
// file named by SALES_CONFIG and then to built-in defaults.
func Load() (*Config, error) {
	var fc fileConfig
	if path := os.Getenv("SALES_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("SALES_CONFIG: %w", err)
		}
	}

	c := &Config{
		DatabaseDriver: envOrDefault("SALES_DB_DRIVER", orDefault(fc.Database.Driver, "postgres")),
		HTTPAddr:       envOrDefault("SALES_HTTP_ADDR", orDefault(fc.HTTP.Addr, ":5000")),
		GRPCAddr:       envOrDefault("SALES_GRPC_ADDR", fc.GRPC.Addr),
		Environment:    envOrDefault("SALES_ENV", envOrDefault("NODE_ENV", orDefault(fc.Environment, "production"))),
		NATSURL:        envOrDefault("SALES_NATS_URL", fc.NATS.URL),
		LogLevel:       strings.ToLower(envOrDefault("SALES_LOG_LEVEL", orDefault(fc.Log.Level, "info"))),
		LogFormat:      strings.ToLower(envOrDefault("SALES_LOG_FORMAT", orDefault(fc.Log.Format, "text"))),
		S3Endpoint:     envOrDefault("SALES_S3_ENDPOINT", fc.S3.Endpoint),
		S3Region:       envOrDefault("SALES_S3_REGION", orDefault(fc.S3.Region, "us-east-1")),
	}

	if v := os.Getenv("SALES_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	} else if len(fc.HTTP.CORSOrigins) > 0 {
		c.CORSOrigins = fc.HTTP.CORSOrigins
	} else {
		c.CORSOrigins = []string{"http://localhost:3000"}
	}

	switch c.DatabaseDriver {
	case "postgres", "pgx", "sqlite":
	default:
		return nil, fmt.Errorf("SALES_DB_DRIVER: unsupported driver %q", c.DatabaseDriver)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("SALES_LOG_FORMAT: must be text or json, got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("SALES_LOG_LEVEL: unknown level %q", c.LogLevel)
	}

	dsn, err := databaseURL(c.DatabaseDriver, &fc)
	if err != nil {
		return nil, err
	}
	c.DatabaseURL = dsn

	return c, nil
}

// databaseURL resolves the connection string. A platform-provided
// DATABASE_URL for PostgreSQL gets sslmode=require unless it names one.
func databaseURL(driver string, fc *fileConfig) (string, error) {
	if v := os.Getenv("SALES_DATABASE_URL"); v != "" {
		return v, nil
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		if driver == "sqlite" || strings.Contains(v, "sslmode=") {
			return v, nil
		}
		u, err := url.Parse(v)
		if err != nil {
			return "", fmt.Errorf("DATABASE_URL: %w", err)
		}
		q := u.Query()
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	if fc.Database.URL != "" {
		return fc.Database.URL, nil
	}

	name := envOrDefault("DB_NAME", orDefault(fc.Database.Name, "retail_sales"))
	if driver == "sqlite" {
		return name + ".db", nil
	}

	host := envOrDefault("DB_HOST", orDefault(fc.Database.Host, "localhost"))
	port := envOrDefault("DB_PORT", orDefault(fc.Database.Port, "5432"))
	user := envOrDefault("DB_USER", orDefault(fc.Database.User, "postgres"))
	password := envOrDefault("DB_PASSWORD", orDefault(fc.Database.Password, "postgres"))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	return u.String(), nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
