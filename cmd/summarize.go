package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finview/finview/internal/config"
	"github.com/finview/finview/summarize"
	"github.com/google/subcommands"
)

// summarizeCmd produces a one-shot digest of recently ingested news.
type summarizeCmd struct {
	symbol string
	count  int
}

func (*summarizeCmd) Name() string     { return "summarize" }
func (*summarizeCmd) Synopsis() string { return "print an LLM digest of stored news articles" }
func (*summarizeCmd) Usage() string {
	return `fvd summarize [-s <symbol>] [-n count]

  Loads the most recent stored articles and prints a markdown digest to
  stdout. The digest is not persisted; use the API for that.
`
}

func (c *summarizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Restrict the digest to one symbol")
	f.IntVar(&c.count, "n", 10, "How many recent articles to cover")
}

func (c *summarizeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := config.Load()
	if cfg.GeminiKey == "" {
		fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY is unset")
		return subcommands.ExitFailure
	}

	st, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	rows, err := st.Articles(strings.ToUpper(c.symbol), c.count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no articles to summarize")
		return subcommands.ExitFailure
	}

	summarizer, err := summarize.New(ctx, cfg.GeminiKey, cfg.GeminiModel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	articles := make([]summarize.Article, 0, len(rows))
	for _, a := range rows {
		articles = append(articles, summarize.Article{Title: a.Title, Source: a.SourceName, Content: a.Content})
	}
	markdown, err := summarizer.Summarize(ctx, articles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(markdown)
	return subcommands.ExitSuccess
}
