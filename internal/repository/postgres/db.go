package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to the postgres instance behind the given connection string.
// Accepts both postgres:// and the legacy postgresql:// scheme some hosting
// providers hand out.
func Open(url string) (*sql.DB, error) {
	url = strings.Replace(url, "postgresql://", "postgres://", 1)

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}

	return db, nil
}
