package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dcode-github/luxury_realty/backend/store"
	"github.com/dcode-github/luxury_realty/backend/utils"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"

	connectTimeout = 10 * time.Second
)

// OpenStore connects the key-value backend selected by STORE_BACKEND.
func OpenStore(ctx context.Context, cfg *Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case BackendSQLite:
		s, err := store.OpenSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		utils.Logger.Infof("Using SQLite store at %s", cfg.SQLitePath)
		return s, nil

	case BackendPostgres:
		pool, err := ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s, err := store.NewPostgresStore(ctx, pool, cfg.KVTable)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil

	case BackendMongo:
		client, err := ConnectDB(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return store.NewMongoStore(client, cfg.MongoDB, cfg.MongoCollection), nil

	case BackendRedis:
		client, err := InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client), nil

	default:
		utils.Logger.Warn("Using in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil
	}
}

func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	utils.Logger.Info("Connected to MongoDB")
	return client, nil
}

func ConnectPostgres(ctx context.Context, url string) (*pgxpool.Pool, error) {
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.Connect(connCtx, url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to postgres: %w", err)
	}
	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	utils.Logger.Info("Connected to Postgres")
	return pool, nil
}
