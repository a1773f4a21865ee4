package main

import (
	"encoding/json"
	"fmt"

	"hyperui/internal/builder"
	"hyperui/internal/catalog"
	"hyperui/internal/config"
	"hyperui/internal/content"
	"hyperui/internal/mdx"
	"hyperui/internal/page"
	"hyperui/internal/scaffold"
	"hyperui/internal/server"
)

func (c *CLI) compilerOptions() mdx.Options {
	return mdx.Options{Unsafe: c.Unsafe, EditML: c.EditML}
}

// GenCmd implements the 'gen' command.
type GenCmd struct {
	Clean bool `help:"Empty the output directory before writing"`
	Jobs  int  `short:"j" help:"Pages built concurrently (0 means unbounded)" default:"0" env:"HYPERUI_JOBS"`
}

func (g *GenCmd) Run(globals *Globals, root *CLI) error {
	site, err := config.LoadSiteConfig(root.Config)
	if err != nil {
		return err
	}
	report, err := builder.BuildSite(globals.Ctx, builder.BuildOptions{
		Site:             site,
		CleanDestination: g.Clean,
		Jobs:             g.Jobs,
		Compiler:         root.compilerOptions(),
		Logger:           globals.Logger,
	})
	if err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}
	if report.Failed() {
		return fmt.Errorf("%d of %d routes failed", len(report.Failures), report.Routes)
	}
	return nil
}

// RoutesCmd implements the 'routes' command.
type RoutesCmd struct {
	JSON bool `name:"json" help:"Print routes as a JSON array"`
}

func (r *RoutesCmd) Run(globals *Globals, root *CLI) error {
	site, err := config.LoadSiteConfig(root.Config)
	if err != nil {
		return err
	}
	assembler := page.New(content.NewDir(site.ContentDir), mdx.NewCompiler(catalog.Widgets(), root.compilerOptions()), site, globals.Logger)
	rs, err := assembler.ListAllRoutes(globals.Ctx)
	if err != nil {
		return err
	}
	if r.JSON {
		enc := json.NewEncoder(globals.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}
	for _, route := range rs {
		if _, err := fmt.Fprintln(globals.Stdout, route.String()); err != nil {
			return err
		}
	}
	return nil
}

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Port int `short:"p" help:"Port for the local development server" default:"1313" env:"HYPERUI_PORT"`
}

func (s *ServeCmd) Run(globals *Globals, root *CLI) error {
	site, err := config.LoadSiteConfig(root.Config)
	if err != nil {
		return err
	}
	return server.Run(globals.Ctx, server.Options{
		Port:       s.Port,
		WatchPaths: []string{site.ContentDir, site.TemplateDir, site.StaticDir, root.Config},
		Build:      builder.BuildSite,
		BuildOpts: builder.BuildOptions{
			Site:     site,
			Compiler: root.compilerOptions(),
			Logger:   globals.Logger,
		},
		Logger: globals.Logger,
	})
}

// NewCmd groups the scaffolding commands.
type NewCmd struct {
	Site      NewSiteCmd      `cmd:"" help:"Scaffold a new site"`
	Component NewComponentCmd `cmd:"" help:"Create a component document from the archetype"`
}

type NewSiteCmd struct {
	Dir string `arg:"" help:"Directory to create the site in"`
}

func (n *NewSiteCmd) Run(globals *Globals) error {
	return scaffold.CreateNewSite(n.Dir, globals.Logger)
}

type NewComponentCmd struct {
	Category string `arg:"" help:"Component category, e.g. buttons"`
	Slug     string `arg:"" help:"Component slug, e.g. rounded"`
}

func (n *NewComponentCmd) Run(globals *Globals, root *CLI) error {
	site, err := config.LoadSiteConfig(root.Config)
	if err != nil {
		return err
	}
	path, err := scaffold.CreateNewComponent(site, n.Category, n.Slug, globals.Logger)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(globals.Stdout, path)
	return err
}
