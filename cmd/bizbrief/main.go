package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amiyamandal-dev/bizbrief/internal/backend"
	"github.com/amiyamandal-dev/bizbrief/internal/config"
	"github.com/amiyamandal-dev/bizbrief/internal/session"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

var (
	configPath string
	envFile    string
	verbose    bool

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bizbrief",
	Short: "BizBrief - business news aggregation client",
	Long: `BizBrief browses business news from the BizBrief backend.

Run "bizbrief serve" for the browser UI or "bizbrief tui" for the terminal client.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		opts := logger.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		}
		if cmd.Name() == "tui" && (opts.Output == "" || opts.Output == "stderr" || opts.Output == "stdout") {
			opts.Output = tuiLogFile
		}
		log, err = logger.NewWithOptions(opts)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd, tuiCmd, loginCmd, logoutCmd, whoamiCmd, savedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newBackend() (*backend.Client, error) {
	return backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
}

// openSession opens the persisted credential slot shared by the CLI and the
// terminal client
func openSession() (*session.Session, func(), error) {
	store, err := session.OpenBadgerStore(cfg.Session.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Warn("Failed to close session store", "error", err)
		}
	}
	return session.New(store, log), closeStore, nil
}
