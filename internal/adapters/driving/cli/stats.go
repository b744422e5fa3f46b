package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long:  `Prints record counts for the locally cached data, broken down by entity type.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	ctx := context.Background()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	stats := indexService.Statistics()

	cmd.Printf("Indexed records: %d\n", stats.Total)
	cmd.Printf("Indexing time:   %s\n", stats.IndexingTime)
	cmd.Println()

	types := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, t)
	}
	sort.Strings(types)

	cmd.Println("By entity type:")
	for _, t := range types {
		cmd.Printf("  %-10s %d\n", t, stats.ByType[t])
	}

	return nil
}
