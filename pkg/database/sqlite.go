package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the local sqlite database file. The till is a single-host,
// single-operator deployment, so there is no server database to reach.
func ConnectDB() *gorm.DB {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "almacen-pos.db"
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Fatal("Failed to open local database. \n", err)
	}

	// sqlite handles one writer; keep the pool at a single connection.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	log.Println("Local database opened at", path)
	return db
}
