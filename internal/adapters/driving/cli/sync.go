package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/melioro/connectai/internal/core/ports/driven"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise data from the CRM provider",
	Long: `Downloads records from the configured CRM provider, saves them to
the local snapshot cache and rebuilds the search index.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if crmFactory == nil || snapshots == nil {
		return errors.New("sync services not configured")
	}

	settings := settingsService.CRMSettings()
	if !settings.IsConfigured() {
		return errors.New("CRM provider not configured, run 'connectai settings crm' first")
	}

	connector, err := crmFactory(settings)
	if err != nil {
		return fmt.Errorf("create connector: %w", err)
	}
	defer connector.Close() //nolint:errcheck // Best-effort cleanup

	ctx := context.Background()

	cmd.Printf("Synchronising from %s...\n", connector.Provider())
	if err := connector.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	tables, err := connector.LoadData(ctx, driven.LoadOptions{Limit: settings.RecordsLimit})
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	if err := snapshots.Save(ctx, settings.Provider, tables); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	indexService.BuildIndex(tables)
	stats := indexService.Statistics()

	cmd.Printf("Synchronised %d records across %d tables.\n", stats.Total, len(tables))

	types := make([]string, 0, len(stats.ByType))
	for t := range stats.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		cmd.Printf("  %s: %d\n", t, stats.ByType[t])
	}

	return nil
}
