// Package cli builds the guardctl command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samvad-hq/guardctl/internal/app"
	"github.com/samvad-hq/guardctl/internal/config"
	"github.com/samvad-hq/guardctl/internal/logger"
	"github.com/spf13/cobra"
)

// App holds the state shared by all commands of one invocation.
type App struct {
	version string
	stdout  io.Writer
	stderr  io.Writer
	stdin   io.Reader

	configFile string
	baseURL    string
	output     string
	logLevel   string

	cfg  *config.Config
	ctrl *app.Controller
}

// New returns an App writing to the process streams.
func New(version string) *App {
	return &App{
		version: version,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		stdin:   os.Stdin,
	}
}

// Execute runs the command line given by args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetIn(a.stdin)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "guardctl",
		Short:   "Control a DNS filtering service through its control API",
		Version: a.version,
		Long: `guardctl drives the administrative control API of a DNS filtering
service: global start/stop, statistics, the query log, upstream servers,
filter lists and rules, parental control, safe browsing and safe search.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "service address, e.g. http://127.0.0.1:3000")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "output format: json, yaml, text")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddGroup(
		&cobra.Group{ID: "control", Title: "Control Commands:"},
		&cobra.Group{ID: "local", Title: "Local Commands:"},
	)

	for _, category := range app.Categories() {
		root.AddCommand(a.categoryCommand(category))
	}
	root.AddCommand(a.operationsCommand(), a.historyCommand())

	return root
}

// setup loads configuration and builds the controller. Commands that talk to
// the service or the journal call it before doing any work.
func (a *App) setup() error {
	if a.ctrl != nil {
		return nil
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.Init(cfg, a.stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctrl, err := app.NewController(cfg, log)
	if err != nil {
		return fmt.Errorf("init controller: %w", err)
	}

	a.cfg = cfg
	a.ctrl = ctrl
	return nil
}

// loadConfig reads the config file and environment, then applies command line flags.
func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyOverrides(a.baseURL, a.output, a.logLevel); err != nil {
		return nil, fmt.Errorf("apply flags: %w", err)
	}
	return cfg, nil
}

// teardown releases what setup acquired.
func (a *App) teardown() {
	if a.ctrl != nil {
		_ = a.ctrl.Close()
		a.ctrl = nil
	}
	_ = logger.Close()
}

func (a *App) withController(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.setup(); err != nil {
			return err
		}
		defer a.teardown()
		return run(cmd, args)
	}
}
