// Package cli provides the cobra command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
	"github.com/melioro/connectai/internal/core/ports/driving"
	"github.com/melioro/connectai/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	queryService    driving.QueryService
	indexService    driving.IndexService
	settingsService driving.SettingsService
	snapshots       driven.SnapshotStore
	aiFactory       func(domain.AISettings) (driven.AIService, error)
	crmFactory      func(domain.CRMSettings) (driven.CRMConnector, error)
	watchConfig     func(ctx context.Context) (<-chan struct{}, error)
)

// Services bundles everything the commands need.
type Services struct {
	Query    driving.QueryService
	Index    driving.IndexService
	Settings driving.SettingsService
	Snapshots driven.SnapshotStore

	// NewAIService creates an AI service from settings. A nil factory
	// disables AI narration.
	NewAIService func(domain.AISettings) (driven.AIService, error)

	// NewCRMConnector creates a CRM connector from settings.
	NewCRMConnector func(domain.CRMSettings) (driven.CRMConnector, error)

	// WatchConfig signals when the configuration file changes on disk.
	// The underlying store reloads itself before signalling.
	WatchConfig func(ctx context.Context) (<-chan struct{}, error)
}

// SetServices wires the commands to their backing services.
func SetServices(s Services) {
	queryService = s.Query
	indexService = s.Index
	settingsService = s.Settings
	snapshots = s.Snapshots
	aiFactory = s.NewAIService
	crmFactory = s.NewCRMConnector
	watchConfig = s.WatchConfig
}

// SetVersion overrides the build version string.
func SetVersion(v string) {
	version = v
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "connectai",
	Short: "Natural-language assistant for CRM data",
	Long: `ConnectAI answers natural-language questions (in Czech) against
locally cached CRM records. Data is synchronised from the configured
CRM provider and queried entirely offline; an optional AI provider
rewrites complex answers conversationally.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureIndex loads the cached snapshot for the configured CRM provider
// and builds the in-memory index. Commands that answer queries call this
// first.
func ensureIndex(ctx context.Context) error {
	settings := settingsService.CRMSettings()
	if !settings.IsConfigured() {
		return errors.New("CRM provider not configured, run 'connectai settings crm' first")
	}

	tables, savedAt, err := snapshots.Load(ctx, settings.Provider)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("no local data found, run 'connectai sync' first")
		}
		return fmt.Errorf("load snapshot: %w", err)
	}

	indexService.BuildIndex(tables)
	logger.Debug("Index built from snapshot saved at %s", savedAt.Format("2006-01-02 15:04"))
	return nil
}

// newAIService creates the AI service when one is configured, nil
// otherwise. Answering works without AI; UseAI results then fall back to
// their plain response.
func newAIService() driven.AIService {
	if aiFactory == nil {
		return nil
	}
	settings := settingsService.AISettings()
	if !settings.IsConfigured() {
		return nil
	}

	service, err := aiFactory(settings)
	if err != nil {
		logger.Warn("AI provider unavailable: %v", err)
		return nil
	}
	return service
}

// answer processes one query and prints the response, narrating through
// the AI service when the result asks for it.
func answer(ctx context.Context, cmd *cobra.Command, ai driven.AIService, query string) {
	result := queryService.Process(ctx, query)

	response := result.Response
	if result.UseAI && ai != nil {
		formatted, err := ai.FormatAnswer(ctx, query, result)
		if err != nil {
			logger.Warn("AI formatting failed, using plain answer: %v", err)
		} else {
			response = formatted
		}
	}

	cmd.Println(response)
}
