package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finview/finview/internal/config"
	"github.com/finview/finview/marketdata"
	"github.com/google/subcommands"
)

// quoteCmd prints provider quotes for symbols given on the command line.
type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the current quote for one or more symbols" }
func (*quoteCmd) Usage() string {
	return `fvd quote <symbol> [<symbol>...]

  Fetches real-time quotes from the market-data provider, falling back to
  the spark feed for symbols the quote endpoint does not cover.
`
}

func (*quoteCmd) SetFlags(f *flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}
	cfg := config.Load()
	if cfg.MarketDataKey == "" {
		fmt.Fprintln(os.Stderr, "Error: MARKETDATA_API_KEY is unset")
		return subcommands.ExitFailure
	}
	client := marketdata.New(cfg.MarketDataKey)
	if cfg.MarketDataBaseURL != "" {
		client = marketdata.NewWithBaseURL(cfg.MarketDataKey, cfg.MarketDataBaseURL)
	}

	status := subcommands.ExitSuccess
	for _, symbol := range f.Args() {
		q, err := client.GetQuote(symbol)
		if err == nil {
			fmt.Printf("%-8s %12s  (prev close %s)\n", q.Symbol, q.Current, q.PreviousClose)
			continue
		}
		price, err := client.LastSparkPrice(symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: no quote for %s: %v\n", symbol, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%-8s %12.4f  (spark)\n", symbol, price)
	}
	return status
}
