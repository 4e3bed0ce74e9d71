package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"lab_loan_tool/db"
	"lab_loan_tool/ledger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// Store is a ledger store that can be closed on shutdown.
type Store interface {
	ledger.Store
	Close() error
}

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	Ledger *ledger.Ledger
	Store  Store
	Log    *slog.Logger
	Config Config
}

// Config 从环境变量读取
type Config struct {
	Port        string
	StoreDriver string
	DataDir     string

	RedisAddr   string
	RedisPwd    string
	RedisDB     int
	RedisPrefix string

	DatabaseURL string

	WebOrigin           string
	BootstrapCustodians []string

	LogLevel  string
	LogFormat string
}

func MustNew() *App {
	a, err := New(context.Background(), loadConfig())
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	return a
}

// New wires store, ledger and router from cfg.
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("store opened", "driver", cfg.StoreDriver)

	led, err := ledger.Open(ctx, store, ledger.WithLogger(logger.With("component", "ledger")))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))
	useCORS(r, cfg.WebOrigin)

	a := &App{Router: r, Ledger: led, Store: store, Log: logger, Config: cfg}
	if err := BootstrapCustodians(ctx, a); err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) Close() { _ = a.Store.Close() }

func openStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.StoreDriver {
	case "", "file":
		return db.NewFileStore(cfg.DataDir)
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: cfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		return db.NewRedisStore(rdb, cfg.RedisPrefix), nil
	case "postgres":
		conn, err := db.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db.NewPostgresStore(conn), nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

// NewLogger builds the process logger from LOG_LEVEL / LOG_FORMAT.
func NewLogger(level, format string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lv}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	redisDB, err := strconv.Atoi(get("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = db.DSN(
			get("DB_HOST", "127.0.0.1"),
			get("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			get("DB_NAME", "lab_loans"),
			get("DB_PORT", "5432"),
		)
	}
	var custodians []string
	for _, s := range strings.Split(os.Getenv("BOOTSTRAP_CUSTODIANS"), ",") { // 例如: "Luis,Ana"
		if t := strings.TrimSpace(s); t != "" {
			custodians = append(custodians, t)
		}
	}
	return Config{
		Port:                get("PORT", "3001"),
		StoreDriver:         strings.ToLower(get("STORE_DRIVER", "file")),
		DataDir:             get("DATA_DIR", "./data"),
		RedisAddr:           get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		RedisPrefix:         get("REDIS_PREFIX", "labloans"),
		DatabaseURL:         dsn,
		WebOrigin:           get("WEB_ORIGIN", "http://localhost:5173"),
		BootstrapCustodians: custodians,
		LogLevel:            get("LOG_LEVEL", "info"),
		LogFormat:           get("LOG_FORMAT", "text"),
	}
}
