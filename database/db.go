package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"medialit/internal/config"
	"medialit/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/clause"
)

const applicationName = "medialit-api"

// Connect opens the configured database, verifies the connection and applies migrations.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: gormlogger.NewSlogLogger(logger.With("component", "gorm"), gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.IsPostgres() {
		db, err = openPostgres(cfg, gormCfg)
	} else {
		db, err = openSQLite(cfg.SQLitePath(), gormCfg)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		// close the handle if ping fails to avoid leaking the pool
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Info("database_connected", "postgres", cfg.IsPostgres())
	return db, nil
}

func openPostgres(cfg *config.Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	connCfg, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres url: %w", err)
	}
	if connCfg.RuntimeParams == nil {
		connCfg.RuntimeParams = map[string]string{}
	}
	connCfg.RuntimeParams["application_name"] = applicationName

	sqlDB := stdlib.OpenDB(*connCfg)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	return db, nil
}

func openSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	return db, nil
}

// Models lists every table owned by this service, parents first.
func Models() []any {
	return []any{
		&models.User{},
		&models.Rating{},
		&models.MultiRating{},
		&models.MediaPerson{},
		&models.GameScore{},
		&models.PromptClick{},
		&models.ChatMessage{},
		&models.Mood{},
	}
}

// Migrate creates or updates the schema and seeds the fixed prompt set.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return SeedPrompts(ctx, db)
}

// SeedPrompts inserts the prompt templates that are missing. Existing rows, and their
// click counters, are left untouched.
func SeedPrompts(ctx context.Context, db *gorm.DB) error {
	rows := make([]models.PromptClick, 0, len(models.PromptTemplates))
	for i, text := range models.PromptTemplates {
		rows = append(rows, models.PromptClick{PromptID: i + 1, Text: text})
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "prompt_id"}}, DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed prompts: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
