package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/melioro/connectai/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the CRM and AI providers.

Use subcommands to configure a specific provider or test the connection.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsCRMCmd = &cobra.Command{
	Use:   "crm",
	Short: "Configure CRM provider",
	Long:  `Configure the CRM provider data is synchronised from.`,
	RunE:  runSettingsCRM,
}

var settingsAICmd = &cobra.Command{
	Use:   "ai",
	Short: "Configure AI provider",
	Long:  `Configure the optional AI provider used for conversational answers.`,
	RunE:  runSettingsAI,
}

var settingsTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the CRM connection",
	RunE:  runSettingsTest,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsCRMCmd)
	settingsCmd.AddCommand(settingsAICmd)
	settingsCmd.AddCommand(settingsTestCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	crm := settingsService.CRMSettings()
	cmd.Println("[CRM]")
	cmd.Printf("  Provider: %s\n", orUnset(crm.Provider))
	if crm.APIToken != "" {
		cmd.Printf("  API Token: %s\n", maskCredential(crm.APIToken))
	} else {
		cmd.Printf("  API Token: (not set)\n")
	}
	if crm.AppID != "" {
		cmd.Printf("  App ID: %s\n", crm.AppID)
	}
	cmd.Printf("  Records limit: %d\n", crm.RecordsLimit)
	cmd.Printf("  Status: %s\n", configuredStatus(crm.IsConfigured()))
	cmd.Println()

	ai := settingsService.AISettings()
	cmd.Println("[AI]")
	cmd.Printf("  Provider: %s\n", orUnset(ai.Provider))
	if ai.Model != "" {
		cmd.Printf("  Model: %s\n", ai.Model)
	}
	if ai.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskCredential(ai.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Status: %s\n", configuredStatus(ai.IsConfigured()))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsCRM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select CRM Provider")
	providers := settingsService.Providers(domain.ProviderKindCRM)
	for i, p := range providers {
		note := ""
		if !p.Implemented {
			note = " (not yet available)"
		}
		cmd.Printf("  %d. %s%s\n", i+1, p.Name, note)
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selected := providers[idx-1]

	cmd.Print("Enter API token: ")
	token := readPassword()
	cmd.Println()

	var appID string
	if selected.Name == domain.ProviderTabidoo {
		cmd.Print("Enter application ID: ")
		appID = readLine(reader)
	}

	cmd.Print("Records limit per table [100]: ")
	limit := parseChoice(readLine(reader), 10000, 100)

	if err := settingsService.SetCRMProvider(selected.Name, token, appID, limit); err != nil {
		return fmt.Errorf("failed to configure CRM provider: %w", err)
	}

	cmd.Printf("CRM provider configured: %s\n", selected.Name)
	cmd.Println("Run 'connectai sync' to download data.")
	return nil
}

func runSettingsAI(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select AI Provider")
	providers := settingsService.Providers(domain.ProviderKindAI)
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Name)
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selected := providers[idx-1]

	cmd.Print("Enter model name (empty for provider default): ")
	model := readLine(reader)

	cmd.Print("Enter API key: ")
	apiKey := readPassword()
	cmd.Println()

	if err := settingsService.SetAIProvider(selected.Name, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure AI provider: %w", err)
	}

	// Validate the configuration by pinging the service.
	if aiFactory != nil {
		cmd.Print("Validating configuration... ")
		service, err := aiFactory(settingsService.AISettings())
		if err == nil {
			err = service.Ping(context.Background())
			service.Close() //nolint:errcheck // Best-effort cleanup
		}
		if err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("AI configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("AI provider configured: %s\n", selected.Name)
	return nil
}

func runSettingsTest(cmd *cobra.Command, _ []string) error {
	if crmFactory == nil {
		return errors.New("CRM factory not configured")
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

	cmd.Printf("Testing connection to %s... ", connector.Provider())
	result, err := connector.TestConnection(context.Background())
	if err != nil {
		cmd.Println("FAILED")
		return err
	}

	if result.Success {
		cmd.Println("OK")
	} else {
		cmd.Println("FAILED")
	}
	cmd.Println(result.Message)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo first.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskCredential(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
