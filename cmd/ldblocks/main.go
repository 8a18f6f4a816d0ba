package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ldblocks"
	"github.com/fwojciec/ldblocks/bluemonday"
	"github.com/fwojciec/ldblocks/extract"
	"github.com/fwojciec/ldblocks/fs"
	"github.com/fwojciec/ldblocks/gjson"
	"github.com/fwojciec/ldblocks/goquery"
	"github.com/fwojciec/ldblocks/htmltomarkdown"
	ldhttp "github.com/fwojciec/ldblocks/http"
	"github.com/fwojciec/ldblocks/jsonschema"
	"github.com/fwojciec/ldblocks/kv"
	ldslog "github.com/fwojciec/ldblocks/slog"
	"github.com/fwojciec/ldblocks/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default database path. Overridden by --db.
	DBPath string

	// SQLite database holding options and revisions.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Records ldblocks.RecordService
	Index   ldblocks.BlockIndex
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ldblocks"),
		kong.Description("Extract FAQ and HowTo structured data from block markup."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"db": m.DBPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ldblocks --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", ldblocks.ErrorMessage(err))
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cli.LogLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LDBLOCKS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	var store ldblocks.KVStore = sqlite.NewOptionStore(m.DB)
	if cli.StoreDir != "" {
		store = fs.NewFileStore(cli.StoreDir)
	}

	m.Records = ldslog.NewLoggingRecordService(kv.NewRecordService(store), logger)
	m.Index = kv.NewBlockIndex(store)

	decoder := gjson.NewDecoder()
	sanitizer := bluemonday.NewSanitizer()
	faq := ldslog.NewLoggingFAQExtractor(extract.NewFAQExtractor(cfg, decoder, sanitizer), logger)
	howTo := ldslog.NewLoggingHowToExtractor(extract.NewHowToExtractor(cfg, decoder, sanitizer), logger)
	revisions := sqlite.NewRevisionService(m.DB)

	deps.Config = cfg
	deps.Logger = logger
	deps.Records = m.Records
	deps.Index = m.Index
	deps.Revisions = revisions
	deps.FAQ = faq
	deps.HowTo = howTo
	deps.Injector = goquery.NewInjector()

	if cmd == "save" {
		validator, err := jsonschema.NewValidator()
		if err != nil {
			return fmt.Errorf("failed to compile schemas: %w", err)
		}
		deps.Hook = ldslog.NewLoggingSaveHook(&extract.Hook{
			FAQ:       faq,
			HowTo:     howTo,
			Records:   m.Records,
			Revisions: revisions,
			Index:     m.Index,
			Validator: validator,
			Config:    cfg,
		}, logger)
	}

	if cmd == "preview" {
		deps.Converter = htmltomarkdown.NewConverter()
	}

	if cmd == "render" {
		deps.Fetcher = ldhttp.NewRetryFetcher(ldhttp.NewFetcher(), logger)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("LDBLOCKS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ldblocks.db"
	}
	dir := filepath.Join(home, ".ldblocks")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ldblocks.db")
}
