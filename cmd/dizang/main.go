package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dizang-faith/dizang-faith-web/internal/config"
	"github.com/dizang-faith/dizang-faith-web/internal/logging"
	"github.com/dizang-faith/dizang-faith-web/internal/storage"

	"github.com/spf13/cobra"
)

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// app carries the persistent flags and what they resolve to.
type app struct {
	configPath string
	dbPath     string
	dir        string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "dizang",
		Short:         "Sutra library tools: verse formatting, script conversion, catalog and reader backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&a.dbPath, "db", "d", "", "Path to the catalog database (SQLite)")
	rootCmd.PersistentFlags().StringVar(&a.dir, "dir", "", "Directory holding the sutra JSON files")

	rootCmd.AddCommand(
		newFormatVersesCmd(a),
		newSplitLinesCmd(a),
		newValidateCmd(a),
		newConvertCmd(a),
		newImportCmd(a),
		newIndexCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.dir != "" {
		cfg.SutrasDir = a.dir
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	a.cfg = cfg

	a.logger = logging.New(cmd.ErrOrStderr(), cfg.Log)
	a.logger.Debug("config loaded", "sutras_dir", cfg.SutrasDir, "db", cfg.Database.Path)
	return nil
}

// initStore opens the catalog database.
func (a *app) initStore() (*storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(a.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}
