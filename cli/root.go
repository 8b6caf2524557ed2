// ABOUTME: Root cobra command and shared command state
// ABOUTME: Loads configuration, builds loggers and picks the contacts backend
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/config"
	"github.com/harperreed/rolodex/db"
	"github.com/harperreed/rolodex/handlers"
	"github.com/harperreed/rolodex/logging"
	"github.com/harperreed/rolodex/service"
)

// annotationTUI marks commands that own the terminal; they log to a file.
const annotationTUI = "tui"

// app is the state shared by every command of one invocation.
type app struct {
	version    string
	configPath string
	apiURL     string
	verbose    bool
	local      bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand builds the full command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "rolodex",
		Short:         "Contact manager with a terminal UI, REST API and MCP server",
		Long:          "rolodex manages contacts and categories.\n\nRun without arguments to start the terminal UI.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{annotationTUI: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd, "")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/rolodex/config.yaml)")
	flags.StringVar(&a.apiURL, "api-url", "", "Contacts API base URL")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.newTUICommand(),
		a.newServeCommand(),
		a.newMCPCommand(),
		a.newContactsCommand(),
		a.newCategoriesCommand(),
		a.newVizCommand(),
	)
	return root
}

// Execute runs the CLI.
func Execute(ctx context.Context, version string, args []string) error {
	root := NewRootCommand(version)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.API.URL = a.apiURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	opts := logging.Options{Level: cfg.Log.Level, Verbose: a.verbose, File: cfg.Log.File}
	if cmd.Annotations[annotationTUI] == "true" && opts.File == "" {
		opts.File = filepath.Join(config.StateDir(), "rolodex.log")
	}
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) client() (*service.Client, error) {
	return service.NewClient(a.cfg.API.URL,
		service.WithToken(a.cfg.API.Token),
		service.WithTimeout(a.cfg.API.Timeout),
		service.WithLogger(a.logger.Named("api")),
	)
}

func (a *app) openStore(ctx context.Context) (*db.Store, error) {
	store, err := db.Open(ctx, a.cfg.Database.URL, db.WithLogger(a.logger.Named("db")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// backend returns the database when --local is set and the API otherwise.
func (a *app) backend(ctx context.Context) (handlers.Backend, func(), error) {
	if a.local {
		store, err := a.openStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	client, err := a.client()
	if err != nil {
		return nil, nil, err
	}
	return client, client.CloseIdleConnections, nil
}

func (a *app) addLocalFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&a.local, "local", false, "Use the database directly instead of the API")
}
