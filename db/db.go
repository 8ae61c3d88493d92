package db

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/go-gorm/caches/v4"
	"github.com/redis/go-redis/v9"
	"go.lumeweb.com/queuemailer/config"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/db/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewDatabase(ctx core.Context) (*gorm.DB, []core.ContextBuilderOption, error) {
	cfg := ctx.Config()

	configDir := ""
	if file := cfg.ConfigFile(); file != "" {
		configDir = path.Dir(file)
	}

	db, err := OpenDatabase(cfg.Config().Core.DB, configDir, ctx.Logger())
	if err != nil {
		return nil, nil, err
	}

	ctxOpts := []core.ContextBuilderOption{
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			return Migrate(db)
		}),
		core.ContextWithDB(db),
		core.ContextWithExitFunc(func(ctx core.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}),
	}

	return db, ctxOpts, nil
}

// OpenDatabase opens the configured database and installs the query cache, if any.
// Relative sqlite files resolve against configDir.
func OpenDatabase(cfg config.DatabaseConfig, configDir string, rootLogger *core.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch cfg.Type {
	case "mysql":
		db, err = openMySQLDatabase(cfg, rootLogger)
	case "sqlite", "":
		db, err = openSQLiteDatabase(sqliteFile(cfg.File, configDir), rootLogger)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	if err != nil {
		return nil, err
	}

	cacher, err := getCacher(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if cacher != nil {
		err = db.Use(&caches.Caches{Conf: &caches.Config{
			Cacher: cacher,
		}})
		if err != nil {
			return nil, err
		}

		rootLogger.Debug("database query cache enabled", zap.String("mode", string(cfg.Cache.Mode)))
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.GetModels()...)
}

func sqliteFile(file, configDir string) string {
	if isMemoryDSN(file) || path.IsAbs(file) || configDir == "" {
		return file
	}

	return path.Join(configDir, file)
}

func isMemoryDSN(file string) bool {
	return file == ":memory:" || strings.HasPrefix(file, "file:")
}

func openMySQLDatabase(cfg config.DatabaseConfig, rootLogger *core.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local", cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.Charset)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger(rootLogger.Logger, rootLogger.Level()),
	})
}

func openSQLiteDatabase(file string, rootLogger *core.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(file), &gorm.Config{
		Logger: newLogger(rootLogger.Logger, rootLogger.Level()),
	})
	if err != nil {
		return nil, err
	}

	// every pooled connection to an in-memory database would otherwise see its own empty database
	if isMemoryDSN(file) {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func getCacher(cfg config.CacheConfig) (caches.Cacher, error) {
	switch cfg.Mode {
	case config.CacheModeNone, "":
		return nil, nil
	case config.CacheModeMemory:
		return &memoryCacher{}, nil
	case config.CacheModeRedis:
		return &redisCacher{
			redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Address,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			}),
		}, nil
	}

	return nil, fmt.Errorf("invalid cache mode: %s", cfg.Mode)
}

func RetryOnLock(db *gorm.DB, operation func(*gorm.DB) *gorm.DB) error {
	initialBackoff := 100 * time.Millisecond
	maxBackoff := 10 * time.Second
	attempt := 0

	for {
		result := operation(db)
		if result.Error == nil {
			return nil
		}

		if !isLockError(result.Error) {
			return result.Error
		}

		backoff := float64(initialBackoff) * math.Pow(2, float64(attempt))
		jitter := rand.Float64() * float64(initialBackoff)
		sleepDuration := time.Duration(math.Min(backoff+jitter, float64(maxBackoff)))

		if ctx := db.Statement.Context; ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleepDuration):
			}
		} else {
			time.Sleep(sleepDuration)
		}

		attempt++
	}
}

func RetryableTransaction(ctx context.Context, db *gorm.DB, operation func(*gorm.DB) *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return RetryOnLock(tx, func(tx *gorm.DB) *gorm.DB {
			return operation(tx)
		})
	})
}

// isLockError checks if the given error is a database lock error
func isLockError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "lock wait timeout") ||
		strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "too many connections")
}
