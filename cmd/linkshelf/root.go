package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkshelf/internal/config"
	"github.com/MrSnakeDoc/linkshelf/internal/logger"
)

var (
	flagBackend  string
	flagDataDir  string
	flagLogLevel string

	cfg *config.Config
	log logger.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linkshelf",
	Short: "A personal bookmark manager with link health checks",
	Long: `linkshelf keeps your bookmarks in a single JSON document on the storage
backend of your choice (file, bolt, sqlite, redis or memory) and serves them
as a small web app. Each link can be probed to see whether it is still online.

Configuration comes from LINKSHELF_* environment variables; the flags below
override them for one invocation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded
		log = logger.New(cfg.LogLevel, cfg.PrettyLog)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ linkshelf: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig turns config.Load's fatal panic into an error for cobra.
func loadConfig(cmd *cobra.Command) (loaded *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	flags := cmd.Flags()
	return config.Load(func(c *config.Config) {
		if flags.Changed("backend") {
			c.Backend = flagBackend
		}
		if flags.Changed("data-dir") {
			c.DataDir = flagDataDir
		}
		if flags.Changed("log-level") {
			c.LogLevel = flagLogLevel
		}
	}), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: file, bolt, sqlite, redis, memory (env LINKSHELF_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory of the file backend (env LINKSHELF_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (env LINKSHELF_LOG_LEVEL)")
}
