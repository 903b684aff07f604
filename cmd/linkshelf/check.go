package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkshelf/internal/linkcheck"
)

var (
	checkJSON    bool
	checkTimeout time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check URL [URL...]",
	Short: "Probe links once and print their status",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		timeout := cfg.ProbeTimeout
		if cmd.Flags().Changed("timeout") {
			timeout = checkTimeout
		}
		checker := linkcheck.NewChecker(timeout)

		results := make([]linkcheck.Result, len(args))
		var wg sync.WaitGroup
		for i, u := range args {
			wg.Add(1)
			go func(i int, u string) {
				defer wg.Done()
				results[i] = checker.Check(cmd.Context(), u)
			}(i, u)
		}
		wg.Wait()

		if checkJSON {
			out := make(map[string]linkcheck.Result, len(args))
			for i, u := range args {
				out[u] = results[i]
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(out); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for i, u := range args {
			fmt.Printf("%-10s %s\n", describe(results[i]), u)
		}
	},
}

// describe renders a result on one short line, ex: "301 → https://x".
func describe(r linkcheck.Result) string {
	switch r.Status {
	case linkcheck.Redirected:
		return fmt.Sprintf("%s %d → %s", r.Status, r.StatusCode, r.FinalURL)
	case linkcheck.Online, linkcheck.Offline:
		return fmt.Sprintf("%s %d", r.Status, r.StatusCode)
	case linkcheck.Error:
		return fmt.Sprintf("%s: %s", r.Status, r.Message)
	default:
		return string(r.Status)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output in JSON format")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", linkcheck.DefaultTimeout, "deadline of one probe")
}
