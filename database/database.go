package database

import (
	"context"
	"fmt"
	"log"

	"expo/config"
	"expo/models"
	"expo/repository"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure-Go sqlite driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

var DB *gorm.DB

// Init opens the configured database, migrates the schema and seeds the
// starter categories.
func Init(cfg *config.Config) error {
	level := logger.Info
	if cfg.Server.Mode == "release" {
		level = logger.Warn
	}

	db, err := Open(&cfg.Database, level)
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}

	if err := Seed(context.Background(), db); err != nil {
		return err
	}

	DB = db
	log.Println("database initialised")
	return nil
}

// Open connects to mysql or sqlite and applies pool settings
func Open(cfg *config.DatabaseConfig, level logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Username,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
		)
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		dialector = &sqlite.Dialector{
			DriverName: "sqlite",
			DSN:        sqliteDSN(cfg.Path),
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "mysql" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "expo.db"
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Migrate creates or updates the tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Seed inserts any missing starter category
func Seed(ctx context.Context, db *gorm.DB) error {
	return repository.NewCategoryRepository(db).Seed(ctx, models.DefaultCategories())
}

// GetDB returns the global connection
func GetDB() *gorm.DB {
	return DB
}
