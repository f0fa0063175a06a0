// Package runtime wires the Chronos components into one explicit context
// object. Commands, the HTTP server and the dashboard all receive it
// instead of reaching for package-level state.
package runtime

import (
	"errors"
	"os"
	"time"

	"github.com/manav03panchal/chronos/internal/account"
	"github.com/manav03panchal/chronos/internal/attributes"
	"github.com/manav03panchal/chronos/internal/blob"
	"github.com/manav03panchal/chronos/internal/config"
	"github.com/manav03panchal/chronos/internal/daily"
	"github.com/manav03panchal/chronos/internal/journal"
	"github.com/manav03panchal/chronos/internal/letter"
	"github.com/manav03panchal/chronos/internal/notify"
	"github.com/manav03panchal/chronos/internal/output"
	"github.com/manav03panchal/chronos/internal/planner"
	"github.com/manav03panchal/chronos/internal/storage"
)

// MemoryPath selects in-memory databases when set as CHRONOS_DATABASE.
const MemoryPath = ":memory:"

// Context holds the application runtime context.
type Context struct {
	DB        *storage.DB
	Blobs     *blob.Store
	Store     *storage.RecordStore
	Formatter *output.Formatter
	Config    *config.RuntimeConfig

	Attributes *attributes.Engine
	Ledger     *notify.Ledger
	Daily      *daily.Engine
	Letters    *letter.Vault
	Journal    *journal.Journal
	Planner    *planner.Planner
	Account    *account.Service

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	DBPath    string
	BlobPath  string
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// Config defaults to config.Global.
	Config *config.RuntimeConfig
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		BlobPath:  blob.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New opens the stores and builds every component on top of them.
func New(opts Options) (*Context, error) {
	if envPath := os.Getenv("CHRONOS_DATABASE"); envPath != "" {
		if envPath == MemoryPath {
			opts.InMemory = true
		} else {
			opts.DBPath = envPath
		}
	}
	if envPath := os.Getenv("CHRONOS_BLOBS"); envPath != "" {
		opts.BlobPath = envPath
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	db, err := storage.Open(storage.Options{
		Path:     opts.DBPath,
		InMemory: opts.InMemory,
	})
	if err != nil {
		return nil, err
	}

	blobPath := opts.BlobPath
	if opts.InMemory || blobPath == "" {
		blobPath = blob.Memory
	}
	blobs, err := blob.Open(blobPath)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := storage.NewRecordStore(db, storage.RecordOptions{
		Latency:        cfg.Store.Latency,
		MaxRecordBytes: cfg.Store.MaxRecordBytes,
	})
	loc := cfg.Location()

	attrs := attributes.New(store,
		attributes.WithClock(now),
		attributes.WithEntropyRate(cfg.Attributes.EntropyRate))

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode
	formatter.Now = now

	return &Context{
		DB:         db,
		Blobs:      blobs,
		Store:      store,
		Formatter:  formatter,
		Config:     cfg,
		Attributes: attrs,
		Ledger: notify.New(store,
			notify.WithCapacity(cfg.Ledger.Capacity),
			notify.WithClock(now)),
		Daily: daily.New(store, attrs,
			daily.WithClock(now),
			daily.WithLocation(loc)),
		Letters: letter.New(store,
			letter.WithClock(now),
			letter.WithKeyLength(cfg.Letter.GeneratedKeyLength)),
		Journal: journal.New(store, blobs, attrs,
			journal.WithClock(now),
			journal.WithLocation(loc)),
		Planner: planner.New(store, attrs,
			planner.WithClock(now),
			planner.WithLocation(loc)),
		Account: account.New(store, blobs, attrs),
		Debug:   opts.Debug,
	}, nil
}

// Close closes both databases.
func (c *Context) Close() error {
	var errs []error
	if c.Blobs != nil {
		errs = append(errs, c.Blobs.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...interface{}) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
