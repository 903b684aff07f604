package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkshelf/internal/app"
	"github.com/MrSnakeDoc/linkshelf/internal/utils"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every bookmark",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			return errors.New("refusing to delete all bookmarks without --yes")
		}

		st, err := app.OpenStore(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer utils.MustClose(log, "storage", st.Backend())

		if err := st.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("✅ all bookmarks deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "confirm deleting everything")
}
