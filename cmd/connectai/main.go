// Command connectai is a natural-language assistant for locally cached
// CRM data.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/melioro/connectai/internal/adapters/driven/ai"
	"github.com/melioro/connectai/internal/adapters/driven/ai/claude"
	"github.com/melioro/connectai/internal/adapters/driven/ai/gemini"
	"github.com/melioro/connectai/internal/adapters/driven/ai/openai"
	"github.com/melioro/connectai/internal/adapters/driven/config/file"
	"github.com/melioro/connectai/internal/adapters/driven/crm"
	"github.com/melioro/connectai/internal/adapters/driven/crm/hubspot"
	"github.com/melioro/connectai/internal/adapters/driven/crm/tabidoo"
	"github.com/melioro/connectai/internal/adapters/driven/storage/sqlite"
	"github.com/melioro/connectai/internal/adapters/driving/cli"
	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
	"github.com/melioro/connectai/internal/core/services"
)

// version is set at build time via ldflags.
var version = "2.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := configDir()
	if err != nil {
		return err
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	snapshotStore, err := sqlite.NewSnapshotStore(configDir)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	defer snapshotStore.Close() //nolint:errcheck // Best-effort cleanup

	registry := services.NewProviderRegistry()
	settingsService := services.NewSettingsService(configStore, registry)

	engine := services.NewSearchEngine(configStore)
	analyzer := services.NewQueryAnalyzer(configStore)
	processor := services.NewQueryProcessor(analyzer, engine, configStore)

	crmFactory := newCRMFactory()
	cli.SetServices(cli.Services{
		Query:        processor,
		Index:        processor,
		Settings:     settingsService,
		Snapshots:    snapshotStore,
		NewAIService: newAIFactory().Create,
		NewCRMConnector: func(s domain.CRMSettings) (driven.CRMConnector, error) {
			return crmFactory.Create(s, configStore)
		},
		WatchConfig: configStore.Watch,
	})
	cli.SetVersion(version)

	return cli.Execute()
}

// configDir resolves the configuration directory, honouring the
// CONNECTAI_CONFIG_DIR override.
func configDir() (string, error) {
	if dir := os.Getenv("CONNECTAI_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".connectai"), nil
}

func newAIFactory() *ai.Factory {
	factory := ai.NewFactory()
	factory.Register(domain.ProviderOpenAI, func(s domain.AISettings) (driven.AIService, error) {
		return openai.NewService(openai.Config{APIKey: s.APIKey, Model: s.Model})
	})
	factory.Register(domain.ProviderClaude, func(s domain.AISettings) (driven.AIService, error) {
		return claude.NewService(claude.Config{APIKey: s.APIKey, Model: s.Model})
	})
	factory.Register(domain.ProviderGemini, func(s domain.AISettings) (driven.AIService, error) {
		return gemini.NewService(gemini.Config{APIKey: s.APIKey, Model: s.Model})
	})
	return factory
}

func newCRMFactory() *crm.Factory {
	factory := crm.NewFactory()
	factory.Register(domain.ProviderTabidoo, func(s domain.CRMSettings, t driven.TableConfigSource) (driven.CRMConnector, error) {
		return tabidoo.NewConnector(tabidoo.Config{APIToken: s.APIToken, AppID: s.AppID}, t)
	})
	factory.Register(domain.ProviderHubSpot, func(s domain.CRMSettings, _ driven.TableConfigSource) (driven.CRMConnector, error) {
		return hubspot.NewConnector(hubspot.Config{APIToken: s.APIToken})
	})
	return factory
}
