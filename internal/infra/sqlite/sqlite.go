package sqlite

import (
	"fmt"
	"log"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Open opens the SQLite file at path and makes sure the schema exists.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Order{}, &domain.OrderItem{}, &domain.Product{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Init migrates and seeds. Safe to call on every start.
func Init(db *gorm.DB) error {
	log.Println("Initializing database...")
	if err := Migrate(db); err != nil {
		return err
	}
	if err := SeedMenu(db); err != nil {
		return err
	}
	log.Println("Database ready")
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
