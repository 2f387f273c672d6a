package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finview/finview/internal/config"
	"github.com/google/subcommands"
)

// migrateCmd runs the schema migration and exits. Useful for deploys that
// migrate before rolling the server.
type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply the database schema and exit" }
func (*migrateCmd) Usage() string {
	return `fvd migrate [-db-driver <driver>] [-db-dsn <dsn>]

  Creates or updates the database schema without starting the server.
`
}

func (*migrateCmd) SetFlags(f *flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := config.Load()
	if _, err := openStore(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("schema is up to date")
	return subcommands.ExitSuccess
}
