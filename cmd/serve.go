package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finview/finview/internal/config"
	"github.com/finview/finview/internal/server"
	"github.com/finview/finview/marketdata"
	"github.com/finview/finview/summarize"
	"github.com/google/subcommands"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr      string
	rateLimit int
	rateWin   time.Duration
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the finview API server" }
func (*serveCmd) Usage() string {
	return `fvd serve [-addr <host:port>] [-rate-limit n] [-rate-window d]

  Runs the API server until interrupted. Configuration comes from the
  environment (or a .env file); flags override it.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, overrides LISTEN_ADDR")
	f.IntVar(&c.rateLimit, "rate-limit", 30, "Requests per window on provider-proxy routes")
	f.DurationVar(&c.rateWin, "rate-window", time.Minute, "Rate-limit window")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := config.Load()
	if c.addr != "" {
		cfg.ListenAddr = c.addr
	}

	st, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var market server.MarketData
	if cfg.MarketDataKey != "" {
		if cfg.MarketDataBaseURL != "" {
			market = marketdata.NewWithBaseURL(cfg.MarketDataKey, cfg.MarketDataBaseURL)
		} else {
			market = marketdata.New(cfg.MarketDataKey)
		}
	} else {
		log.Println("warning: MARKETDATA_API_KEY is unset, market routes are disabled")
	}

	var summarizer server.Summarizer
	if cfg.GeminiKey != "" {
		s, err := summarize.New(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		summarizer = s
	} else {
		log.Println("warning: GEMINI_API_KEY is unset, summarization is disabled")
	}

	var mailer server.Mailer
	if m := server.NewSendgridMailer(cfg.SendgridKey, cfg.InviteFrom); m != nil {
		mailer = m
	}

	var limiter *server.RateLimiter
	if cfg.RedisURL != "" {
		limiter = server.NewRateLimiter(cfg.RedisURL, c.rateLimit, c.rateWin)
	}

	srv := server.New(cfg, st, market, summarizer, mailer, limiter)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()
	log.Printf("serving on %s", cfg.ListenAddr)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	case s := <-sig:
		log.Printf("received %v, shutting down", s)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
