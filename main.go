// Webfonts CLI - self-hosted Google Fonts for web projects
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joeblew999/plat-webfonts/internal/config"
	"github.com/joeblew999/plat-webfonts/pkg/cache"
	"github.com/joeblew999/plat-webfonts/pkg/db"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/joeblew999/plat-webfonts/pkg/history"
	"github.com/joeblew999/plat-webfonts/pkg/log"
	"github.com/joeblew999/plat-webfonts/pkg/manifest"
	"github.com/joeblew999/plat-webfonts/pkg/preload"
	"github.com/joeblew999/plat-webfonts/pkg/prompt"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

const version = "webfonts v0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var code int
	switch os.Args[1] {
	case "add":
		code = addCmd(ctx, os.Args[2:])
	case "preload":
		code = preloadCmd(os.Args[2:])
	case "list":
		code = listCmd(os.Args[2:])
	case "history":
		code = historyCmd(ctx, os.Args[2:])
	case "clear-cache":
		code = clearCacheCmd(ctx, os.Args[2:])
	case "version":
		fmt.Println(version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		code = 1
	}

	stop()
	os.Exit(code)
}

func printUsage() {
	fmt.Println(`Webfonts - self-hosted Google Fonts CLI

Usage:
  webfonts <command> [options]

Commands:
  add          Download fonts and add them to the project stylesheet
  preload      Print <link rel="preload"> tags for fonts in the build manifest
  list         List installed font files
  history      Show recent install runs
  clear-cache  Forget the cached font catalog
  version      Show version
  help         Show this help

Examples:
  webfonts add
  webfonts add --font inter:400,700:latin --font roboto --yes
  webfonts add --path sass --stylesheet typography --extension scss
  webfonts preload --only Inter --except Inter-700
  webfonts history --limit 50

Environment Variables:
  DATA_PATH      Cache, history and staging directory (default: ./.data)
  RESOURCE_PATH  Project resources holding css/ and fonts/ (default: ./resources)
  PUBLIC_PATH    Web root holding the build manifests (default: ./public)
  FONT_PATH      Installed font directory (default: $RESOURCE_PATH/fonts)`)
}

// globalFlags are accepted by every command.
type globalFlags struct {
	config  string
	env     string
	verbose bool
}

func newFlagSet(name string) (*pflag.FlagSet, *globalFlags) {
	g := &globalFlags{}
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	fs.StringVarP(&g.config, "config", "c", "webfonts.yaml", "Config file (used when present)")
	fs.StringVar(&g.env, "env", ".env", "Dotenv file loaded before the config")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output to stderr")
	return fs, g
}

// setup configures logging and loads the configuration.
func (g *globalFlags) setup() (config.WebfontsConfig, error) {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	log.UseText(os.Stderr, level)

	logx.DisableStat()
	if !g.verbose {
		logx.SetLevel(logx.ErrorLevel)
	}

	if err := godotenv.Load(g.env); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config.WebfontsConfig{}, fmt.Errorf("load %s: %w", g.env, err)
	}

	var c config.WebfontsConfig
	if _, err := os.Stat(g.config); err == nil {
		if err := conf.Load(g.config, &c, conf.UseEnv()); err != nil {
			return c, fmt.Errorf("load %s: %w", g.config, err)
		}
		log.Debug("Loaded config", "path", g.config)
		return c, nil
	}
	if err := conf.FillDefault(&c); err != nil {
		return c, fmt.Errorf("default config: %w", err)
	}
	return c, nil
}

// workspace holds the stores a command works against.
type workspace struct {
	cfg      config.WebfontsConfig
	db       *db.DB
	store    cache.Store
	history  *history.Recorder
	catalog  *font.CatalogClient
	registry *font.Registry
}

func openWorkspace(cfg config.WebfontsConfig) (*workspace, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	conn := database.SqlConn()
	store, err := cache.Open(cfg.CacheOptions(), conn)
	if err != nil {
		database.Close()
		return nil, err
	}

	recorder, err := history.NewRecorder(conn)
	if err != nil {
		store.Close()
		database.Close()
		return nil, err
	}

	return &workspace{
		cfg:     cfg,
		db:      database,
		store:   store,
		history: recorder,
		catalog: font.NewCatalogClient(store,
			font.WithEndpoint(cfg.Catalog.Endpoint),
			font.WithExpiry(cfg.Catalog.Expiry),
		),
		registry: font.NewRegistry(cfg.RegistryPath()),
	}, nil
}

func (w *workspace) Close() {
	w.history.Flush()
	w.store.Close()
	w.db.Close()
}

func stdout() *prompt.Printer {
	return prompt.NewPrinter(os.Stdout, prompt.DefaultTheme)
}

func preloadCmd(args []string) int {
	fs, g := newFlagSet("preload")
	only := fs.StringSlice("only", nil, "Only preload these fonts (file, file stem or family)")
	except := fs.StringSlice("except", nil, "Never preload these fonts (wins over --only)")
	public := fs.String("public", "", "Public directory holding the manifests")
	assetURL := fs.String("asset-url", "", "Base URL fonts are served from")
	fs.Parse(args)

	cfg, err := g.setup()
	if err != nil {
		stdout().Error("%v", err)
		return 1
	}

	opts := cfg.ManifestOptions()
	if fs.Changed("only") {
		opts.Only = *only
	}
	if fs.Changed("except") {
		opts.Except = *except
	}
	if *public != "" {
		opts.PublicDir = *public
	}
	base := cfg.Preload.AssetURL
	if *assetURL != "" {
		base = *assetURL
	}

	resolver := manifest.NewResolver(opts)
	builder := preload.NewBuilder(resolver, preload.PublicAssets(base))
	if err := builder.HeadHook()(os.Stdout); err != nil {
		stdout().Error("%v", err)
		return 1
	}
	if len(resolver.Fonts()) == 0 {
		prompt.NewPrinter(os.Stderr, prompt.DefaultTheme).Warn("No fonts found in the manifests under %s.", opts.PublicDir)
	}
	return 0
}

func listCmd(args []string) int {
	fs, g := newFlagSet("list")
	fs.Parse(args)

	p := stdout()
	cfg, err := g.setup()
	if err != nil {
		p.Error("%v", err)
		return 1
	}

	fonts := font.NewRegistry(cfg.RegistryPath()).List()
	if len(fonts) == 0 {
		p.Warn("No fonts installed yet. Run %s.", p.Accent("webfonts add"))
		return 0
	}

	var total uint64
	rows := make([][]string, 0, len(fonts))
	for _, f := range fonts {
		total += uint64(f.Size)
		installed := "-"
		if !f.InstalledAt.IsZero() {
			installed = humanize.Time(f.InstalledAt)
		}
		rows = append(rows, []string{
			f.Family,
			strconv.Itoa(f.Weight) + " " + f.Style,
			f.Filename,
			humanize.Bytes(uint64(f.Size)),
			installed,
		})
	}
	fmt.Println(p.Table([]string{"Family", "Face", "File", "Size", "Installed"}, rows))
	p.Step("%d files, %s in %s", len(fonts), humanize.Bytes(total), cfg.FontDir())
	return 0
}

func historyCmd(ctx context.Context, args []string) int {
	fs, g := newFlagSet("history")
	limit := fs.IntP("limit", "n", 20, "Number of events to show")
	run := fs.String("run", "", "Show every event of one install run")
	fs.Parse(args)

	p := stdout()
	cfg, err := g.setup()
	if err != nil {
		p.Error("%v", err)
		return 1
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		p.Error("%v", err)
		return 1
	}
	defer ws.Close()

	var events []history.Event
	if *run != "" {
		events, err = ws.history.Run(ctx, *run)
	} else {
		events, err = ws.history.List(ctx, *limit)
	}
	if err != nil {
		p.Error("%v", err)
		return 1
	}
	if len(events) == 0 {
		p.Warn("No install events recorded.")
		return 0
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		when := e.Timestamp
		if t, err := time.Parse(time.RFC3339Nano, e.Timestamp); err == nil {
			when = humanize.Time(t)
		}
		runID := e.RunID
		if len(runID) > 8 {
			runID = runID[:8]
		}
		rows = append(rows, []string{when, e.Type, e.FontID, runID, e.Fields().Encode()})
	}
	fmt.Println(p.Table([]string{"When", "Event", "Font", "Run", "Details"}, rows))
	return 0
}

func clearCacheCmd(ctx context.Context, args []string) int {
	fs, g := newFlagSet("clear-cache")
	fs.Parse(args)

	p := stdout()
	cfg, err := g.setup()
	if err != nil {
		p.Error("%v", err)
		return 1
	}

	ws, err := openWorkspace(cfg)
	if err != nil {
		p.Error("%v", err)
		return 1
	}
	defer ws.Close()

	if err := ws.catalog.Clear(ctx); err != nil {
		p.Error("%v", err)
		return 1
	}
	p.Success("The font catalog cache has been cleared.")
	return 0
}
