package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkshelf/internal/app"
	"github.com/MrSnakeDoc/linkshelf/internal/seed"
	"github.com/MrSnakeDoc/linkshelf/internal/utils"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the example bookmarks if the collection is empty",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		bookmarks, err := seed.Load(cfg.SeedFile, time.Now())
		if err != nil {
			fatal("Error loading seed data", err)
		}

		st, err := app.OpenStore(cmd.Context(), cfg, log)
		if err != nil {
			fatal("Error opening storage", err)
		}
		defer utils.MustClose(log, "storage", st.Backend())

		n, err := st.Seed(cmd.Context(), bookmarks)
		if err != nil {
			fatal("Error seeding", err)
		}
		if n == 0 {
			fmt.Println("collection is not empty, nothing to do")
			return
		}
		fmt.Printf("✅ added %d example bookmarks\n", n)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
