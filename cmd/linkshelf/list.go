package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkshelf/internal/app"
	"github.com/MrSnakeDoc/linkshelf/internal/domain"
	"github.com/MrSnakeDoc/linkshelf/internal/linkcheck"
	"github.com/MrSnakeDoc/linkshelf/internal/utils"
)

var (
	listJSON   bool
	listTag    string
	listQuery  string
	listStatus bool
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks, optionally with their link status",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		st, err := app.OpenStore(ctx, cfg, log)
		if err != nil {
			fatal("Error opening storage", err)
		}
		defer utils.MustClose(log, "storage", st.Backend())

		bookmarks := domain.Filter{Tag: listTag, Query: listQuery}.Apply(st.ListAll(ctx))

		// Only the rows that get printed are "visible" and probed.
		visible := bookmarks
		if listLimit > 0 && len(visible) > listLimit {
			visible = visible[:listLimit]
		}

		var statuses []linkcheck.Result
		if listStatus {
			statuses = probeVisible(ctx, visible, linkcheck.NewChecker(cfg.ProbeTimeout))
		}

		if listJSON {
			type row struct {
				domain.Bookmark
				Health *linkcheck.Result `json:"health,omitempty"`
			}
			rows := make([]row, len(visible))
			for i, b := range visible {
				rows[i].Bookmark = b
				if statuses != nil {
					rows[i].Health = &statuses[i]
				}
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rows); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for i, b := range visible {
			line := fmt.Sprintf("%s\t%s\t%s\t%s", b.ID, b.Title, b.URL, strings.Join(b.Tags, ","))
			if statuses != nil {
				line += "\t" + describe(statuses[i])
			}
			_, _ = fmt.Fprintln(tw, line)
		}
		_ = tw.Flush()

		if hidden := len(bookmarks) - len(visible); hidden > 0 {
			fmt.Printf("… %d more (raise --limit)\n", hidden)
		}
	},
}

// probeVisible gives every printed row its own gate, reports them all visible
// at once and waits for every probe to settle.
func probeVisible(ctx context.Context, bookmarks []domain.Bookmark, prober linkcheck.Prober) []linkcheck.Result {
	results := make([]linkcheck.Result, len(bookmarks))
	var mu sync.Mutex

	gates := make([]*linkcheck.Gate, len(bookmarks))
	for i, b := range bookmarks {
		results[i] = linkcheck.Pending()
		gates[i] = linkcheck.NewGate(b.URL, prober, func(r linkcheck.Result) {
			mu.Lock()
			results[i] = r
			mu.Unlock()
		})
	}

	for _, g := range gates {
		g.Observe(true)
	}
	for _, g := range gates {
		if err := g.Wait(ctx); err != nil {
			// Interrupted: stop listening, late results are dropped.
			g.Close()
		}
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]linkcheck.Result, len(results))
	copy(out, results)
	return out
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter bookmarks by tag (case-insensitive)")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Search title, description and tags")
	listCmd.Flags().BoolVar(&listStatus, "status", false, "Probe each listed link")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Show at most this many bookmarks (0 = all)")
}
