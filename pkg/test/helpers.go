package test

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/mattn/go-sqlite3"

	"todolist/internal/adapter/database/sqlite"
)

// ProjectRoot walks up from this file until it finds go.mod.
func ProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

func InitTestDB() *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(ProjectRoot(), "db", "migrations", "sqlite")
	sqlite.RunMigrations(db, migrationsPath)

	return db
}

// InitTestDatabase returns the wrapped handle repositories expect.
func InitTestDatabase() *sqlite.DB {
	return sqlite.FromSQL(InitTestDB())
}
