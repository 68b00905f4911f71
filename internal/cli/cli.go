// Package cli implements the liblens command-line interface.
//
// Commands cover the same ground as the HTTP API: inspecting installed
// Python libraries, retrieving element source, searching the local
// environment and the package index, drawing structure diagrams, and
// running the API server itself. The CLI is built using cobra with
// verbose logging via the charmbracelet/log library; loggers travel
// through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/liblens/liblens/internal/config"
	"github.com/liblens/liblens/pkg/buildinfo"
	"github.com/liblens/liblens/pkg/cache"
	"github.com/liblens/liblens/pkg/integrations/pypi"
	"github.com/liblens/liblens/pkg/introspect"
	"github.com/liblens/liblens/pkg/pydist"
)

// appName is the application name used for directories and display.
const appName = "liblens"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Liblens explores installed Python libraries",
		Long:         `Liblens inspects the Python libraries installed on this machine, retrieves their source code and examples, proxies the PyPI index, and serves it all over a REST API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to TOML config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.sourceCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.pypiCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// config loads the configuration selected by --config.
func (c *CLI) config() (*config.Config, error) {
	return config.Load(c.configPath)
}

// env builds the installed-distribution scanner from config.
func (c *CLI) env(cfg *config.Config) *pydist.Env {
	return pydist.NewEnv(cfg.ResolveRoots()...)
}

// httpCache selects the HTTP response cache backend: Redis when
// configured, the on-disk cache otherwise.
func (c *CLI) httpCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cfg.RedisAddr, appName+":")
	}
	return cache.NewFileCache(cfg.ResolveCacheDir())
}

// pypiClient builds the package-index client over the response cache.
func (c *CLI) pypiClient(ctx context.Context, cfg *config.Config) (*pypi.Client, error) {
	backend, err := c.httpCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pypi.NewClient(backend, cfg.TTL(), cfg.PyPIBaseURL), nil
}

// introspector builds the parser over the given environment with the
// in-process parse cache.
func (c *CLI) introspector(cfg *config.Config) *introspect.Introspector {
	return introspect.New(c.env(cfg), nil)
}
