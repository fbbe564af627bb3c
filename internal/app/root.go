package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blackwell-systems/booklog/internal/cache"
	"github.com/blackwell-systems/booklog/internal/config"
	"github.com/blackwell-systems/booklog/internal/library"
	"github.com/blackwell-systems/booklog/internal/logging"
	"github.com/blackwell-systems/booklog/internal/openlibrary"
	"github.com/blackwell-systems/booklog/internal/storage"
	"github.com/blackwell-systems/booklog/internal/tui"
	"github.com/blackwell-systems/booklog/internal/util"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion records the build version for `booklog version` and the
// catalog User-Agent.
func SetVersion(v string) {
	if v != "" {
		appVersion = v
	}
}

// App carries everything a command needs. NewRootCmd builds one per process
// and hands it to every subcommand; commands never reach for globals.
type App struct {
	out    io.Writer
	errOut io.Writer
	in     io.Reader

	flagConfig        string
	flagNoColor       bool
	flagNoInteractive bool
	flagVerbose       bool

	cfg     *config.Config
	slot    storage.Slot
	store   *library.Store
	catalog *openlibrary.Client
	covers  *cache.Manager
}

// NewApp creates an App wired to the process's standard streams.
func NewApp() *App {
	return &App{out: os.Stdout, errOut: os.Stderr, in: os.Stdin}
}

// NewRootCmd builds the command tree over a.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "booklog",
		Short: "Track your reading with Open Library",
		Long: `booklog keeps a personal reading list on your machine.

Search the Open Library catalog, add books, import a Goodreads export and
backfill missing covers. Everything is stored locally.

Run 'booklog' with no arguments to open the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return a.runBrowser(cmd.Context())
			}
			return cmd.Help()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.SetIn(a.in)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flagConfig, "config", "", "Config file path (default: ~/.config/booklog/config.yml)")
	pf.BoolVar(&a.flagNoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&a.flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	pf.BoolVarP(&a.flagVerbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(a.flagNoColor)

		// These run without touching config or storage.
		switch cmd.Name() {
		case "init", "version", "completion", "help":
			return nil
		}
		return a.setup()
	}
	root.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return a.close()
	}

	root.AddCommand(
		newInitCmd(a),
		newSearchCmd(a),
		newAddCmd(a),
		newImportCmd(a),
		newListCmd(a),
		newInfoCmd(a),
		newEnrichCmd(a),
		newCoversCmd(a),
		newIndexCmd(a),
		newExportCmd(a),
		newClearCmd(a),
		newVersionCmd(a),
		newCompletionCmd(),
	)
	return root
}

// errFailed marks an error that fail has already printed.
var errFailed = errors.New("command failed")

// Execute is the entry point called from main.
func Execute() {
	a := NewApp()
	root := NewRootCmd(a)
	if err := root.ExecuteContext(context.Background()); err != nil {
		_ = a.close()
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		}
		os.Exit(1)
	}
}

// setup loads config and opens the store. A snapshot that cannot be read is
// reported and the command continues with an empty library.
func (a *App) setup() error {
	cfg, err := config.Load(a.flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.flagVerbose {
		level = "debug"
	}
	logging.Init(level, cfg.Log.Format)

	slot, err := storage.Open(storage.Options{
		Backend:    cfg.Storage.Backend,
		Dir:        cfg.Storage.Dir,
		SQLitePath: cfg.Storage.SQLitePath,
	})
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	a.slot = slot
	a.store = library.NewStore(slot,
		library.WithKey(cfg.Storage.Key),
		library.WithLogger(log.With().Str("component", "library").Logger()),
	)
	if err := a.store.Load(context.Background()); err != nil {
		var perr *library.ParseError
		if errors.As(err, &perr) {
			a.warn("library data is unreadable and was ignored: %v", err)
		} else {
			a.warn("could not read library data: %v", err)
		}
	}

	ua := cfg.Catalog.UserAgent
	if ua == "" || ua == "booklog" {
		ua = "booklog/" + appVersion
	}
	a.catalog = openlibrary.NewClient(openlibrary.Options{
		BaseURL:   cfg.Catalog.BaseURL,
		CoversURL: cfg.Catalog.CoversURL,
		UserAgent: ua,
		RPS:       cfg.Catalog.RPS,
		Timeout:   cfg.Catalog.Timeout,
		CacheTTL:  cfg.Catalog.CacheTTL,
	})
	a.covers = cache.New(cfg.Cache.Dir)
	return nil
}

func (a *App) close() error {
	if a.slot == nil {
		return nil
	}
	err := a.slot.Close()
	a.slot = nil
	return err
}

func (a *App) runBrowser(ctx context.Context) error {
	size := a.cfg.Cache.CoverSize
	return tui.Run(ctx, tui.Options{
		Library: a.store,
		Catalog: a.catalog,
		CoverPath: func(e library.Entry) string {
			if e.HasCover() && a.covers.HasCover(e.Cover.String(), size) {
				return a.covers.CoverPath(e.Cover.String(), size)
			}
			return ""
		},
	})
}

// reportPersist warns when a mutation succeeded in memory but was not saved.
func (a *App) reportPersist(err error) {
	if err != nil {
		a.warn("changes are kept for this session but could not be saved: %v", err)
	}
}

// ok prints a green success line.
func (a *App) ok(format string, args ...interface{}) {
	fmt.Fprintln(a.out, color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// warn prints a yellow warning line.
func (a *App) warn(format string, args ...interface{}) {
	fmt.Fprintln(a.errOut, color.YellowString("!"), fmt.Sprintf(format, args...))
}

// fail prints a red error line and returns an error that makes the command
// exit 1 without printing it again.
func (a *App) fail(format string, args ...interface{}) error {
	fmt.Fprintln(a.errOut, color.RedString("✗"), fmt.Sprintf(format, args...))
	return errFailed
}

// header prints a cyan section heading.
func (a *App) header(format string, args ...interface{}) {
	fmt.Fprintln(a.out, color.CyanString(fmt.Sprintf(format, args...)))
}

func (a *App) printField(label, value string) {
	fmt.Fprintf(a.out, "  %-12s %s\n", color.CyanString(label+":"), value)
}
