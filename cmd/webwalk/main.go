package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webwalk"
	"github.com/fwojciec/webwalk/crawl"
	"github.com/fwojciec/webwalk/goquery"
	"github.com/fwojciec/webwalk/html"
	webhttp "github.com/fwojciec/webwalk/http"
	webslog "github.com/fwojciec/webwalk/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string  `arg:"" help:"Seed URL to start crawling from"`
	Concurrency int     `short:"c" default:"20" help:"Maximum simultaneous fetches"`
	Limit       int     `short:"n" default:"10000" help:"Total request budget for the run"`
	RPS         float64 `name:"rps" default:"0" help:"Per-host requests per second (0 disables politeness limiting)"`
	Extractor   string  `default:"html" enum:"html,goquery" help:"Link extractor implementation (html, goquery)"`
	Debug       bool    `help:"Trace URL lifecycle and fetches at debug level"`
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the HTTP fetcher. Set before calling Run() for
	// end-to-end testing.
	Fetcher webwalk.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. The page report stream
// and the termination banner go to stdout; logs go to stderr.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webwalk"),
		kong.Description("Breadth-first web crawler with bounded concurrency."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no seed URL specified. Run 'webwalk --help' for usage")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = webhttp.NewFetcher()
	}

	var extractor webwalk.LinkExtractor = html.NewExtractor()
	if cli.Extractor == "goquery" {
		extractor = goquery.NewExtractor()
	}

	var frontier webwalk.Frontier
	if cli.Debug {
		frontier = webslog.NewLoggingFrontier(crawl.NewFrontier(10000, 0.01), logger)
		fetcher = webslog.NewLoggingFetcher(fetcher, logger)
	}
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:       fetcher,
		Extractor:     extractor,
		Frontier:      frontier,
		Concurrency:   cli.Concurrency,
		RequestBudget: cli.Limit,
	}
	if cli.RPS > 0 {
		crawler.Limiter = crawl.NewDomainLimiter(cli.RPS)
	}

	result, err := crawler.Run(ctx, cli.URL, func(r webwalk.PageReport) {
		_ = webwalk.WriteReport(stdout, r)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, result.Banner())
	logger.Debug("crawl summary",
		"pages", result.Crawled,
		"empty", result.EmptyPages,
		"duplicates", result.DuplicatePages,
		"bytes", crawl.FormatBytes(result.Bytes),
	)
	return nil
}
