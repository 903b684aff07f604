package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkshelf/internal/app"
	"github.com/MrSnakeDoc/linkshelf/internal/seed"
	"github.com/MrSnakeDoc/linkshelf/internal/utils"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import bookmarks from a Homepage bookmarks.yaml or a JSON export",
	Long: `Import prepends every bookmark of FILE to the collection in one write.

A .json file is read as a collection document (the format linkshelf stores).
Any other file is read as a Homepage bookmarks.yaml: each category becomes a
tag unless the entry lists its own tags. Nothing is written if one entry is
invalid.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputs, err := seed.LoadInputs(args[0])
		if err != nil {
			fatal("Error reading "+args[0], err)
		}

		st, err := app.OpenStore(cmd.Context(), cfg, log)
		if err != nil {
			fatal("Error opening storage", err)
		}
		defer utils.MustClose(log, "storage", st.Backend())

		n, err := st.Import(cmd.Context(), inputs)
		if err != nil {
			fatal("Error importing bookmarks", err)
		}
		fmt.Printf("✅ imported %d bookmarks into %s storage\n", n, st.Backend().Name())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
