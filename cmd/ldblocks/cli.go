package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/ldblocks"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    ldblocks.Config
	Logger    *slog.Logger
	Records   ldblocks.RecordService
	Index     ldblocks.BlockIndex
	Revisions ldblocks.RevisionService
	Hook      ldblocks.SaveHook
	FAQ       ldblocks.FAQExtractor
	HowTo     ldblocks.HowToExtractor
	Converter ldblocks.Converter
	Injector  ldblocks.HeadInjector
	Fetcher   ldblocks.PageFetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `name:"db" env:"LDBLOCKS_DB" default:"${db}" help:"SQLite database path"`
	Config   string `short:"c" type:"path" help:"Config file (JSON or YAML)"`
	StoreDir string `name:"store-dir" type:"path" help:"Keep cached records as JSON files in this directory instead of the database"`
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Save    SaveCmd    `cmd:"" help:"Extract structured data from a saved document"`
	Get     GetCmd     `cmd:"" help:"Show cached structured data of a document"`
	List    ListCmd    `cmd:"" help:"List documents with cached data"`
	Preview PreviewCmd `cmd:"" help:"Preview extracted data as Markdown without saving"`
	Render  RenderCmd  `cmd:"" help:"Inject cached head content into a rendered page"`
	Serve   ServeCmd   `cmd:"" help:"Serve the read API"`
}

// SaveCmd is the "save" subcommand.
type SaveCmd struct {
	ID         string `arg:"" help:"Document ID"`
	File       string `arg:"" type:"existingfile" help:"File holding the document text"`
	RevisionOf string `name:"revision-of" help:"Register the document as a revision of this parent ID"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	ID       string `arg:"" help:"Document ID"`
	Pipeline string `short:"p" help:"Only show this pipeline (faq, howto)"`
	CSS      bool   `help:"Show the how-to stylesheet instead of structured data"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Pipeline string `short:"p" help:"List records of this pipeline (faq, howto) instead of indexed documents"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	File string `arg:"" type:"existingfile" help:"File holding the document text"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	ID   string `arg:"" help:"Document ID"`
	Page string `arg:"" help:"Rendered page file or http(s) URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string  `default:":8080" help:"Listen address"`
	RenderRate  float64 `name:"render-rate" default:"5" help:"Render requests per second per client (0 disables limiting)"`
	RenderBurst int     `name:"render-burst" default:"10" help:"Render request burst per client"`
}
