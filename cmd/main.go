// Package cmd implements the fvd subcommands.
package cmd

import (
	"flag"

	"github.com/finview/finview/internal/config"
	"github.com/finview/finview/internal/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")
	c.Register(&migrateCmd{}, "server")

	c.Register(&quoteCmd{}, "market")
	c.Register(&summarizeCmd{}, "news")
}

var dbDriver = flag.String("db-driver", "", "Database driver (sqlite or postgres), overrides DB_DRIVER")
var dbDSN = flag.String("db-dsn", "", "Database DSN, overrides DB_DSN")

// openStore opens the database, preferring the command-line flags over the
// environment.
func openStore(cfg *config.Config) (*store.Store, error) {
	driver, dsn := cfg.DBDriver, cfg.DBDSN
	if *dbDriver != "" {
		driver = *dbDriver
	}
	if *dbDSN != "" {
		dsn = *dbDSN
	}
	return store.Open(driver, dsn)
}
