// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/poiesic/poetica"
	"github.com/poiesic/poetica/config"
	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/dataset"
	"github.com/poiesic/poetica/filter"
	"github.com/poiesic/poetica/ingestion"
	"github.com/poiesic/poetica/paginate"
	"github.com/poiesic/poetica/render"
	"github.com/poiesic/poetica/server"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "poetica",
		Usage: "Browse a catalog of Russian poems with word-level morphology",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default ~/.config/poetica/config.toml)",
				EnvVars: []string{"POETICA_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to catalog store directory, overrides the config file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "import",
				Usage:  "Import the poem dataset and optional morphology into the catalog",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dataset",
						Usage: "Path to poems_minimal.json",
					},
					&cli.StringFlag{
						Name:  "lemmas",
						Usage: "Path to lemmas.json",
					},
					&cli.StringFlag{
						Name:  "morphology",
						Usage: "Path to poems_morphology_compact.json",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Import even when the dataset is unchanged",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of conversion workers (0 picks from CPU count)",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Do not report progress",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List poems matching the given filters, one page at a time",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Case-insensitive substring of title, text, epigraph or dedication",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Poem type (cycles, cycles_with_names, cycles_without_names, individual)",
					},
					&cli.StringFlag{
						Name:  "section",
						Usage: "Exact section name",
					},
					&cli.StringFlag{
						Name:  "min-lines",
						Usage: "Minimum line count",
					},
					&cli.StringFlag{
						Name:  "max-lines",
						Usage: "Maximum line count",
					},
					&cli.BoolFlag{
						Name:  "epigraph",
						Usage: "Only poems with an epigraph",
					},
					&cli.BoolFlag{
						Name:  "dedication",
						Usage: "Only poems with a dedication",
					},
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page number, starting at 1",
						Value:   1,
					},
					&cli.StringFlag{
						Name:  "page-size",
						Usage: "Poems per page (5, 10, 20, 30, 50, 100 or all)",
					},
				},
			},
			{
				Name:   "sections",
				Usage:  "List the section names of the catalog",
				Action: sectionsCommand,
			},
			{
				Name:      "show",
				Usage:     "Print a poem",
				ArgsUsage: "<id>",
				Action:    showCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "words",
						Aliases: []string{"w"},
						Usage:   "Print line:word coordinates after each word",
					},
				},
			},
			{
				Name:      "morph",
				Usage:     "Print the morphological analyses of a word",
				ArgsUsage: "<id> <line> <word>",
				Action:    morphCommand,
			},
			{
				Name:   "serve",
				Usage:  "Serve the catalog as JSON to browser front ends",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Address to listen on, overrides the config file",
					},
					&cli.StringSliceFlag{
						Name:  "origin",
						Usage: "Allowed CORS origin, may be repeated",
					},
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("db") {
		cfg.Apply(config.WithDBPath(c.String("db")))
	}
	return cfg, nil
}

func openCatalog(cfg *config.Config) (*poetica.Catalog, error) {
	catalog, err := poetica.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog, nil
}

func browse(c *cli.Context, cfg *config.Config) (*poetica.Catalog, *poetica.Browser, error) {
	catalog, err := openCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	browser, err := catalog.Browse(c.Context, poetica.WithPageSize(cfg.PageSize))
	if err != nil {
		if cerr := catalog.Close(); cerr != nil {
			slog.Error("error closing catalog", "err", cerr)
		}
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog, browser, nil
}

func importCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.IsSet("dataset") {
		cfg.Apply(config.WithDataset(c.String("dataset")))
	}
	if c.IsSet("lemmas") || c.IsSet("morphology") {
		cfg.Apply(config.WithMorphology(c.String("lemmas"), c.String("morphology")))
	}
	if c.IsSet("pool-size") {
		cfg.Apply(config.WithPoolSize(c.Int("pool-size")))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	input := ingestion.Input{}
	if input.Poems, err = dataset.ReadSource(cfg.Dataset); err != nil {
		return err
	}
	if cfg.HasMorphology() {
		if input.Lexicon, err = dataset.ReadSource(cfg.Lemmas); err != nil {
			return err
		}
		if input.Compact, err = dataset.ReadSource(cfg.Morphology); err != nil {
			return err
		}
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	opts := []ingestion.Option{ingestion.WithForce(c.Bool("force"))}
	if cfg.PoolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(cfg.PoolSize))
	}
	if !c.Bool("quiet") {
		opts = append(opts, ingestion.WithProgress(c.App.ErrWriter))
	}

	pipeline, err := catalog.NewPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	result, err := pipeline.Import(c.Context, input)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if result.Skipped {
		fmt.Fprintf(c.App.Writer, "Dataset unchanged, %d poems in catalog\n", result.Poems)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "Imported %d poems\n", result.Poems)
	if result.Unresolved > 0 {
		fmt.Fprintf(c.App.Writer, "%d morphology references missing from lexicon\n", result.Unresolved)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("page-size") {
		size, err := paginate.ParsePageSize(c.String("page-size"))
		if err != nil {
			return err
		}
		cfg.Apply(config.WithPageSize(size))
	}

	catalog, browser, err := browse(c, cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	browser.ApplyForm(filter.Form{
		Search:        c.String("search"),
		PoemType:      c.String("type"),
		Section:       c.String("section"),
		MinLines:      c.String("min-lines"),
		MaxLines:      c.String("max-lines"),
		HasEpigraph:   c.Bool("epigraph"),
		HasDedication: c.Bool("dedication"),
	})
	browser.SetPage(c.Int("page") - 1)

	p := render.NewPrinter(c.App.Writer)
	p.Results(browser.Info(), browser.Active())
	p.Poems(browser.Page())
	return nil
}

func sectionsCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	catalog, browser, err := browse(c, cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	render.NewPrinter(c.App.Writer).Sections(browser.Sections())
	return nil
}

func showCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected a poem id")
	}
	id, err := parsePoemID(c.Args().Get(0))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	catalog, browser, err := browse(c, cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	poem, err := browser.Poem(id)
	if err != nil {
		return err
	}

	render.NewPrinter(c.App.Writer).Poem(poem, c.Bool("words"))
	return nil
}

func morphCommand(c *cli.Context) error {
	if c.NArg() != 3 {
		return fmt.Errorf("expected a poem id, a line index and a word index")
	}
	id, err := parsePoemID(c.Args().Get(0))
	if err != nil {
		return err
	}
	line, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid line index %q", c.Args().Get(1))
	}
	word, err := strconv.Atoi(c.Args().Get(2))
	if err != nil {
		return fmt.Errorf("invalid word index %q", c.Args().Get(2))
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	catalog, browser, err := browse(c, cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	clean, analyses, err := browser.Lookup(id, line, word)
	if err != nil {
		return err
	}
	if clean == "" {
		clean = fmt.Sprintf("[%d:%d]", line, word)
	}

	render.NewPrinter(c.App.Writer).Analyses(clean, analyses)
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("listen") {
		cfg.Apply(config.WithListen(c.String("listen")))
	}
	if c.IsSet("origin") {
		cfg.Apply(config.WithAllowedOrigins(c.StringSlice("origin")...))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	srv, err := server.NewServer(catalog.Poems(), server.WithAllowedOrigins(cfg.AllowedOrigins...))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, cfg.Listen)
}

func parsePoemID(s string) (core.PoemID, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid poem id %q", s)
	}
	return core.PoemID(id), nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
