package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/joeblew999/plat-webfonts/pkg/prompt"
)

func addCmd(ctx context.Context, args []string) int {
	fs, g := newFlagSet("add")
	path := fs.String("path", "", "Stylesheet directory, relative to the resources directory (default: css)")
	stylesheet := fs.String("stylesheet", "", "Stylesheet name (default: fonts)")
	extension := fs.String("extension", "", "Stylesheet extension (default: inferred, else css)")
	clearCache := fs.Bool("clear-cache", false, "Fetch a fresh font catalog")
	force := fs.Bool("force", false, "Overwrite existing font files without asking")
	fonts := fs.StringArrayP("font", "f", nil, "Font to add as id[:variant,...[:subset,...]]; repeatable")
	yes := fs.BoolP("yes", "y", false, "Skip confirmations; overwrite prompts are accepted")
	fs.Parse(args)

	p := stdout()
	cfg, err := g.setup()
	if err != nil {
		p.Error("%v", err)
		return 1
	}

	opts := cfg.StylesheetOptions()
	if *path != "" {
		opts.Path = *path
	}
	if *stylesheet != "" {
		opts.Name = *stylesheet
	}
	if *extension != "" {
		opts.Extension = *extension
	}

	renderer, err := font.LoadTemplateRenderer(cfg.Stylesheet.Template)
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

	term := prompt.NewTerminal()
	var confirmer font.Confirmer = term.Confirmer()
	if *yes {
		confirmer = font.AutoConfirm
	}

	manager := font.NewManager(ws.catalog,
		font.NewStylesheetLocator(cfg.ResourceDir(), opts),
		font.WithFontDir(cfg.FontDir()),
		font.WithStagingDir(cfg.StagingDir()),
		font.WithFetcher(font.NewArchiveFetcher(ws.catalog.Endpoint(), cfg.StagingDir(), font.WithRateLimit(cfg.RateLimit))),
		font.WithRenderer(renderer),
		font.WithConfirmer(confirmer),
		font.WithRegistry(ws.registry),
		font.WithEventRecorder(ws.history),
		font.WithReporter(p),
		font.WithWorkers(cfg.Workers),
	)

	if *clearCache {
		if err := manager.ClearCache(ctx); err != nil {
			p.Error("%v", err)
			return 1
		}
		p.Step("Cleared the font catalog cache.")
	}

	catalog, err := manager.Catalog(ctx)
	if err != nil {
		reportError(p, err)
		return 1
	}

	selections, err := chooseFonts(term, p, catalog, *fonts, *yes)
	if errors.Is(err, prompt.ErrAborted) {
		p.Warn("Cancelled.")
		return 1
	}
	if err != nil {
		reportError(p, err)
		return 1
	}
	if selections == nil {
		return 0
	}

	report, err := manager.Install(ctx, selections, *force)
	if err != nil {
		reportError(p, err)
		return 1
	}
	p.Outcome(report)
	if !report.Succeeded() {
		return 1
	}
	return 0
}

// chooseFonts parses --font values, or asks interactively and confirms the summary.
// A nil result without error means the user declined.
func chooseFonts(term *prompt.Terminal, p *prompt.Printer, catalog *font.Catalog, values []string, yes bool) ([]font.Selection, error) {
	if len(values) > 0 {
		selections := make([]font.Selection, 0, len(values))
		for _, value := range values {
			sel, err := font.ParseSelection(catalog, value)
			if err != nil {
				return nil, err
			}
			selections = append(selections, sel)
		}
		return selections, nil
	}

	selections, err := term.SelectFonts(catalog)
	if err != nil {
		return nil, err
	}

	fmt.Println(p.Summary(selections))
	if yes {
		return selections, nil
	}

	ok, err := term.Confirm("Do you want to add these fonts to the project?", true)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.Warn("No fonts were added.")
		return nil, nil
	}
	return selections, nil
}

func reportError(p *prompt.Printer, err error) {
	switch {
	case errors.Is(err, font.ErrStylesDirectoryNotFound):
		p.Error("Could not find the styles directory. Create resources/css or resources/styles, or pass --path.")
	case errors.Is(err, font.ErrCatalogUnavailable):
		p.Error("The font catalog is unavailable. Check your connection and try again.")
	case errors.Is(err, font.ErrNoSelection):
		p.Error("No fonts were selected.")
	default:
		p.Error("%v", err)
	}
}
