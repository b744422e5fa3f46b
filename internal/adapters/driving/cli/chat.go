package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/melioro/connectai/internal/logger"
)

// exitWords end the chat loop.
var exitWords = map[string]struct{}{
	"exit":  {},
	"quit":  {},
	"konec": {},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question answering",
	Long: `Starts an interactive loop answering questions against the locally
cached CRM data. Configuration changes on disk are picked up without
restarting. Type "konec" or "exit" to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ensureIndex(ctx); err != nil {
		return err
	}

	ai := newAIService()
	if ai != nil {
		defer ai.Close() //nolint:errcheck // Best-effort cleanup
	}

	// Pick up config edits made while the chat is running.
	if watchConfig != nil {
		changes, err := watchConfig(ctx)
		if err != nil {
			logger.Warn("Config watch unavailable: %v", err)
		} else {
			go func() {
				for range changes {
					logger.Info("Configuration reloaded")
				}
			}()
		}
	}

	greet(cmd)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if _, done := exitWords[strings.ToLower(query)]; done {
			break
		}

		answer(ctx, cmd, ai, query)
		cmd.Println()
	}

	cmd.Println("Na shledanou!")
	return scanner.Err()
}

// greet prints the welcome banner with example queries.
func greet(cmd *cobra.Command) {
	cmd.Printf("ConnectAI %s\n", version)
	cmd.Println("Zeptejte se na cokoliv z vašich CRM dat. Napište \"konec\" pro ukončení.")

	examples := settingsService.ExampleQueries()
	if len(examples) > 0 {
		cmd.Println("\nPříklady dotazů:")
		for _, example := range examples {
			cmd.Printf("  - %s\n", example)
		}
	}
	cmd.Println()
}
