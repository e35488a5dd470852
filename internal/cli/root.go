package cli

import (
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tasklist/internal/config"
	"tasklist/internal/journal"
	"tasklist/internal/todo"
	"tasklist/internal/ui"
)

type App struct {
	ConfigPath string
	Debug      bool
	NoSeed     bool
	Filter     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tasklist",
		Short:        "A small terminal task list",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive list
  tasklist

  # Start empty, showing only unfinished tasks
  tasklist --no-seed --filter not

  # Print the effective configuration
  tasklist config
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $TASKLIST_CONFIG or the XDG config dir)")
	cmd.Flags().BoolVar(&app.Debug, "debug", false, "Write debug logs to log_path")
	cmd.Flags().BoolVar(&app.NoSeed, "no-seed", false, "Start with an empty list instead of the configured seed tasks")
	cmd.Flags().StringVar(&app.Filter, "filter", "", "Initial filter (all|not|done), overrides default_filter")

	cmd.AddCommand(newConfigCmd(app))
	return cmd
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(app)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
			return nil
		},
	}
}

func loadConfig(app *App) (config.Config, string, error) {
	path := app.ConfigPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, path, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

// newStore builds the session store from config and flags.
func newStore(app *App, cfg config.Config) (*todo.Store, error) {
	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}
	if app.Filter != "" {
		filter, err = todo.ParseFilter(app.Filter)
		if err != nil {
			return nil, fmt.Errorf("%w: --filter %q", config.ErrInvalidFilter, app.Filter)
		}
	}
	opts := []todo.Option{todo.WithFilter(filter)}
	if !app.NoSeed {
		opts = append(opts, todo.WithTasks(cfg.SeedTasks()))
	}
	return todo.NewStore(opts...), nil
}

func runTUI(app *App) error {
	cfg, _, err := loadConfig(app)
	if err != nil {
		return err
	}

	if app.Debug {
		f, err := tea.LogToFile(cfg.LogPath, "tasklist")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	store, err := newStore(app, cfg)
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer j.Close()

	if err := ui.Run(store, j, cfg); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
