// Command fbz is a small terminal client for FogBugz-style trackers:
// search cases, list them by filter and inspect installation metadata.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	fogbugz "github.com/kailas-cloud/go-fogbugz"
	"github.com/kailas-cloud/go-fogbugz/internal/config"
	"github.com/kailas-cloud/go-fogbugz/internal/logger"
	"github.com/kailas-cloud/go-fogbugz/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "fbz",
		Usage:   "Query a FogBugz-style issue tracker from the terminal",
		Version: fmt.Sprintf("%s (%s, %s)", version.Version, version.Commit, version.Date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "json-logs",
				Usage: "Emit logs as JSON",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search cases with a raw query string",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "cols",
						Usage: "Columns to request (wire names or aliases)",
					},
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum number of cases to return",
						Value: 50,
					},
				},
			},
			{
				Name:   "cases",
				Usage:  "List cases by saved filter id or search query",
				Action: casesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Saved filter id (numeric) or search query",
					},
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum number of cases to return",
						Value: 50,
					},
				},
			},
			{
				Name:   "projects",
				Usage:  "List projects",
				Action: projectsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "fbz:", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the SDK client plus a CLI
// logger.
func setup(c *cli.Context) (*fogbugz.Client, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if c.String("log-level") != "" {
		level = c.String("log-level")
	}
	log, err := logger.New(level, c.Bool("json-logs"))
	if err != nil {
		return nil, nil, err
	}

	opts := []fogbugz.Option{
		fogbugz.WithUserAgent(cfg.API.UserAgent),
		fogbugz.WithTimeout(time.Duration(cfg.API.Timeout) * time.Second),
	}
	if cfg.API.RatePerSec > 0 {
		opts = append(opts, fogbugz.WithRateLimit(cfg.API.RatePerSec, cfg.API.RateBurst))
	}
	if level == "debug" {
		opts = append(opts, fogbugz.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}

	client, err := fogbugz.New(cfg.API.URL, cfg.API.Token, opts...)
	if err != nil {
		return nil, nil, err
	}
	return client, log, nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("search: query required")
	}

	client, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cols, err := parseColumns(c.StringSlice("cols"))
	if err != nil {
		return err
	}

	query := strings.Join(c.Args().Slice(), " ")
	log.Debug("running search", zap.String("query", query))

	req := client.Search().Query(query).Max(c.Int("max"))
	if len(cols) > 0 {
		req = req.Cols(cols...)
	}
	cases, err := req.Do(c.Context)
	if err != nil {
		return err
	}

	printCases(cases)
	log.Info("search finished", zap.Int("cases", len(cases)))
	return nil
}

func casesCommand(c *cli.Context) error {
	client, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cases, err := client.Cases().List(c.Context, fogbugz.ListOptions{
		Filter: c.String("filter"),
		Max:    c.Int("max"),
	})
	if err != nil {
		return err
	}

	printCases(cases)
	log.Info("list finished", zap.Int("cases", len(cases)))
	return nil
}

func projectsCommand(c *cli.Context) error {
	client, log, err := setup(c)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	projects, err := client.Org().ListProjects(c.Context)
	if err != nil {
		return err
	}

	for _, p := range projects {
		marker := " "
		if p.IsDeleted {
			marker = "x"
		}
		fmt.Printf("%s %6d  %-30s %s\n", marker, p.ID, p.Name, p.Owner)
	}
	log.Info("projects listed", zap.Int("projects", len(projects)))
	return nil
}

func parseColumns(names []string) ([]fogbugz.Column, error) {
	cols := make([]fogbugz.Column, 0, len(names))
	for _, n := range names {
		col, err := fogbugz.ParseColumn(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func printCases(cases []fogbugz.Case) {
	for _, cs := range cases {
		fmt.Printf("%6d  %-20s %s\n", cs.CaseID, cs.Project, cs.Title)
	}
}
