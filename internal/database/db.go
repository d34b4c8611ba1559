// Package database opens the MySQL pool the repositories run on.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Fallbacks for pool fields left at zero in Options.
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 30 * time.Minute
)

// Options names one MySQL endpoint plus the pool sizing to run it with.
// Pool fields left at zero take the package defaults, so callers only set
// what they want to override.
type Options struct {
	User string
	Pass string
	Host string
	Port string
	Name string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// dsn renders the driver connection string.  parseTime maps DATETIME columns
// onto time.Time, and loc=UTC keeps stored and presented timestamps aligned
// with the UTC formatting the presenters do.
func (o Options) dsn() string {
	auth := o.User
	if o.Pass != "" {
		auth = o.User + ":" + o.Pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, o.Host, o.Port, o.Name)
}

// Open connects with the given options, applies the pool sizing and verifies
// the connection with a short ping before handing the pool back.
func Open(o Options) (*sql.DB, error) {
	db, err := sql.Open("mysql", o.dsn())
	if err != nil {
		return nil, err
	}

	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = defaultMaxOpenConns
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = defaultMaxIdleConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = defaultConnMaxLifetime
	}
	db.SetMaxOpenConns(o.MaxOpenConns)
	db.SetMaxIdleConns(o.MaxIdleConns)
	db.SetConnMaxLifetime(o.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
