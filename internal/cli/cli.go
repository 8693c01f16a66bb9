// Package cli implements quotectl, a command-line client for the quotation
// service. It browses quotations and edits designer layouts remotely: every
// layout command opens an editing session against the API, applies one
// edit and saves.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotation-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotation-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
	"github.com/jsamuelsen/quotation-service/internal/platform/config"
)

const appName = "quotectl"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version shown by --version. Values are injected via
// ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// LayoutAPI loads, saves and deletes stored layouts.
type LayoutAPI interface {
	app.LayoutBackend
	Delete(ctx context.Context, key layout.Key) error
}

// QuotationAPI reads quotations and designer helpers.
type QuotationAPI interface {
	List(ctx context.Context) ([]acl.Quotation, error)
	Get(ctx context.Context, id int64) (acl.Quotation, error)
	Templates(ctx context.Context, id int64) ([]layout.BlockTemplate, error)
	Preview(ctx context.Context, id int64, scope layout.Scope) ([]layout.PreviewBlock, error)
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Layouts and Quotations talk to the API. When nil they are built from
	// configuration before the first command runs.
	Layouts    LayoutAPI
	Quotations QuotationAPI

	out       io.Writer
	configDir string
	profile   string
	server    string
	verbose   bool
}

// New creates a CLI that writes results to out and logs to logw.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(logw, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
			Prefix:          appName,
		}),
		out: out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "quotectl browses quotations and edits their print layouts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}

			return c.connect()
		},
	}

	root.SetOut(c.out)
	root.SetVersionTemplate(fmt.Sprintf("%s {{.Version}}\ncommit: %s\nbuilt: %s\n", appName, commit, date))

	flags := root.PersistentFlags()
	flags.StringVar(&c.configDir, "config-dir", "configs", "directory holding base.yaml and profile files")
	flags.StringVar(&c.profile, "profile", "", "configuration profile, e.g. dev")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&c.server, "server", "", "API base URL including any configured prefix, e.g. http://localhost:8000")

	root.AddCommand(c.quotationsCommand())
	root.AddCommand(c.templatesCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.layoutCommand())

	return root
}

// connect builds the API clients from configuration unless they were
// injected.
func (c *CLI) connect() error {
	if c.Layouts != nil && c.Quotations != nil {
		return nil
	}

	cfg, err := config.LoadFrom(c.configDir, c.profile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	baseURL := cfg.Services.Quotation.BaseURL
	if c.server != "" {
		baseURL = c.server
	}

	c.Logger.Debug("connecting", "server", baseURL)

	logger := c.slogger()

	client, err := clients.New(&clients.Config{
		BaseURL:     baseURL,
		ServiceName: cfg.Services.Quotation.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Header:      http.Header{"User-Agent": []string{appName + "/" + version}},
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	if c.Layouts == nil {
		c.Layouts = acl.NewLayoutClient(acl.LayoutClientConfig{Client: client, Logger: logger})
	}

	if c.Quotations == nil {
		c.Quotations = acl.NewQuotationClient(acl.QuotationClientConfig{Client: client, Logger: logger})
	}

	return nil
}

// slogger exposes the charm logger to packages that log through slog.
func (c *CLI) slogger() *slog.Logger {
	return slog.New(c.Logger)
}

// Execute runs the command tree with ctx.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	root.SetArgs(args)

	// One request id per invocation ties its API calls together in server logs.
	ctx = middleware.ContextWithRequestID(ctx, uuid.NewString())

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		c.printError("%v", err)
	}

	return err
}
