package db

import (
	"database/sql"

	log "github.com/sirupsen/logrus"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

// DB is the global database connection pool.
var DB *sql.DB

// InitDB opens the SQLite database and creates tables if they don't exist.
func InitDB(path string) {
	var err error
	DB, err = sql.Open(dbDriver, path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// createTables is defined in migrate.go
	createTables()

	log.Info("Database connection initialized successfully.")
}
