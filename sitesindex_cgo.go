//go:build cgo

package vcfld

// If cgo is enabled, we will use the mattn cgo sqlite3 driver. It is faster
// than the modernc sqlite driver.

import (
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

const whichSQLiteDriver = "sqlite3"

func openSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(whichSQLiteDriver, sqliteURI(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
	PRAGMA journal_mode = OFF;
	PRAGMA synchronous = OFF;
	`); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
