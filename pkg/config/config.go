package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	LogLevel    string

	ServerPort int

	DatabaseDriver string
	DatabaseURL    string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	CookieSecure     bool

	RedisAddr string
	RedisDB   int
	CartTTL   time.Duration
	CartDir   string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	ProtectedPrefixes []string
	AdminRoles        []string
}

// LoadEnvFile reads path into the process environment. A missing file is not an error.
func LoadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("notice: %s not loaded: %v. Using system environment variables", path, err)
	}
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "storefront"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseDriver: EnvDefault("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		JWTAccessSecret:  []byte(os.Getenv("JWT_SECRET")),
		JWTRefreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
		CookieSecure:     EnvBoolDefault("COOKIE_SECURE", true),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   EnvIntDefault("REDIS_DB", 0),
		CartTTL:   time.Duration(EnvIntDefault("CART_TTL_HOURS", 720)) * time.Hour,
		CartDir:   EnvDefault("CART_DIR", defaultCartDir()),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		ProtectedPrefixes: CSVDefault(os.Getenv("PROTECTED_PREFIXES"), []string{"/admin"}),
		AdminRoles:        CSVDefault(os.Getenv("ADMIN_ROLES"), []string{"admin"}),
	}
}

func defaultCartDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".realms"
	}
	return dir + string(os.PathSeparator) + "realms"
}

func CSV(v string) []string {
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

func CSVDefault(v string, def []string) []string {
	if out := CSV(v); len(out) > 0 {
		return out
	}
	return def
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
