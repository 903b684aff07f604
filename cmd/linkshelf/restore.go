package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkshelf/internal/app"
	"github.com/MrSnakeDoc/linkshelf/internal/scheduler"
	"github.com/MrSnakeDoc/linkshelf/internal/utils"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the collection with the last snapshot",
	Long: `While serving, linkshelf copies the collection aside every
LINKSHELF_SNAPSHOT_INTERVAL. restore puts that copy back, discarding every
change made since.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := app.OpenBackend(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer utils.MustClose(log, "storage", backend)

		n, err := scheduler.NewSnapshotter(backend, log, 0).Restore(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("✅ restored %d bookmarks from snapshot\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
