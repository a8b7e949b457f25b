package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dcode-github/luxury_realty/backend/utils"
)

const AppName = "luxury-realty"

type Config struct {
	Port        string
	APIPrefix   string
	CORSOrigins []string
	StaticDir   string
	SeedOnStart bool

	StoreBackend    string
	SQLitePath      string
	DatabaseURL     string
	KVTable         string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	RedisAddr       string
	RedisPassword   string
	CacheTTL        time.Duration

	JWTKey   []byte
	TokenTTL time.Duration
}

// LoadEnv reads .env when present; a missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debugf("No .env file loaded: %v", err)
	}
}

// Init loads .env before configuring the logger, so LOG_LEVEL may live in either.
func Init() {
	LoadEnv()
	utils.InitLogger(AppName)
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		APIPrefix:       "/" + strings.Trim(getEnv("API_PREFIX", "/make-server"), "/"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		StaticDir:       os.Getenv("STATIC_DIR"),
		SeedOnStart:     getBool("SEED_ON_START", false),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", "memory")),
		SQLitePath:      getEnv("SQLITE_PATH", "kv_store.db"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		KVTable:         getEnv("KV_TABLE", "kv_store"),
		MongoURI:        os.Getenv("MONGOURI"),
		MongoDB:         getEnv("DB", "luxury_realty"),
		MongoCollection: getEnv("MONGO_COLLECTION", "kv_store"),
		RedisAddr:       os.Getenv("REDIS_ADD"),
		RedisPassword:   os.Getenv("REDIS_PASS"),
		CacheTTL:        getDuration("CACHE_TTL", 10*time.Minute),
		JWTKey:          []byte(os.Getenv("JWT_KEY")),
		TokenTTL:        getDuration("TOKEN_TTL", time.Hour),
	}

	if len(cfg.JWTKey) == 0 {
		return nil, errors.New("JWT_KEY not set in environment")
	}
	switch cfg.StoreBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL not set for postgres backend")
		}
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGOURI not set for mongo backend")
		}
	default:
		return nil, errors.New("unknown STORE_BACKEND " + cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendRedis && cfg.RedisAddr == "" {
		return nil, errors.New("REDIS_ADD not set for redis backend")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		utils.Logger.Warnf("Invalid %s '%s', using %t", key, v, def)
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		utils.Logger.Warnf("Invalid %s '%s', using %s", key, v, def)
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
