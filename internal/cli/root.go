// Package cli wires configuration, logging and the state store into the crm
// commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/td0m/crm/pkg/config"
	"github.com/td0m/crm/pkg/logger"
	"github.com/td0m/crm/pkg/persist"
	"github.com/td0m/crm/pkg/seed"
	"github.com/td0m/crm/pkg/state"
)

// Version is set at build time with -ldflags "-X github.com/td0m/crm/internal/cli.Version=...".
var Version = "dev"

var errNoData = errors.New("no data file: pass --data or set CRM_DATA_FILE")

// env is what every command runs with, filled in before the command runs.
type env struct {
	configFile string
	dataFile   string
	stateFile  string
	logLevel   string

	cfg *config.Config
	log *logger.Logger
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "crm",
		Short:         "Customers, tasks and a calendar in your terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.log != nil {
				return e.log.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configFile, "config", "", "config file (default: crm.yaml in . or ~/.config/crm)")
	flags.StringVar(&e.dataFile, "data", "", "YAML or JSON file with customers, tasks and events to load")
	flags.StringVar(&e.stateFile, "state", "", "file keeping settings such as the theme")
	flags.StringVar(&e.logLevel, "log-level", "", "trace, debug, info, warn or error")

	root.AddCommand(
		newTUICommand(e),
		newExportCommand(e),
		newValidateCommand(e),
		newStatsCommand(e),
		newDumpCommand(e),
		newVersionCommand(),
	)
	return root
}

func (e *env) load(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if e.dataFile != "" {
		cfg.Data.SeedFile = e.dataFile
	}
	if e.stateFile != "" {
		cfg.Data.StateFile = e.stateFile
	}
	if e.logLevel != "" {
		cfg.Log.Level = e.logLevel
	}
	// the terminal belongs to the UI
	if cmd.Name() == "tui" && cfg.Log.File == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		cfg.Log.File = filepath.Join(dir, "crm.log")
	}
	e.cfg = cfg
	e.log, err = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	return nil
}

// openStore builds the store, restoring settings from the state file and
// loading the data file when one is configured.
func (e *env) openStore(requireData bool) (*state.Store, error) {
	s := state.New(persist.InJSON(e.cfg.Data.StateFile), state.WithLogger(e.log))
	if e.cfg.Data.SeedFile == "" {
		if requireData {
			return nil, errNoData
		}
		return s, nil
	}
	d, err := seed.Read(e.cfg.Data.SeedFile)
	if err != nil {
		return nil, err
	}
	if err := seed.Load(s, d); err != nil {
		return nil, err
	}
	snap := s.Snapshot()
	e.log.Info().
		Str("file", e.cfg.Data.SeedFile).
		Int("customers", snap.Customers.Len()).
		Int("tasks", snap.Tasks.Len()).
		Int("events", snap.Events.Len()).
		Msg("data loaded")
	return s, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crm %s\n", Version)
		},
	}
}
