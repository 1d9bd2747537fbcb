package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	commonconfig "github.com/dyslexiquest/quest-engine-go/internal/common/config"
	"github.com/dyslexiquest/quest-engine-go/internal/common/dbutil"
)

// OpenDB: 설정에 따라 SQLite 또는 PostgreSQL 연결을 연다.
// 로컬 우선 배포가 기본이며, DB_HOST가 설정된 경우에만 PostgreSQL을 쓴다.
// 연결은 dbutil의 backoff 재시도로 감싼다.
func OpenDB(ctx context.Context, cfg commonconfig.DatabaseConfig, logger *slog.Logger) (*gorm.DB, *sql.DB, error) {
	openFn := func(ctx context.Context) (*gorm.DB, *sql.DB, error) {
		if cfg.UsePostgres() {
			return openPostgres(ctx, cfg)
		}
		return openSQLite(cfg.SQLiteFile)
	}
	return dbutil.OpenWithRetry(ctx, openFn, dbutil.DefaultRetryConfig(), logger)
}

func openSQLite(file string) (*gorm.DB, *sql.DB, error) {
	if file == "" {
		file = "data/quest.db"
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create sqlite dir failed: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(file), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("gorm open failed: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db failed: %w", err)
	}
	return db, sqlDB, nil
}

func openPostgres(ctx context.Context, cfg commonconfig.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("gorm open failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db failed: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, nil, fmt.Errorf("db ping failed: %w", err)
	}

	return db, sqlDB, nil
}
