package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var askNoAI bool

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Answer a single question",
	Long: `Answers one natural-language question against the locally cached
CRM data and exits.

Examples:
  connectai ask "Kolik firem je v systému?"
  connectai ask 'Najdi firmu "Alza"'`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askNoAI, "no-ai", false, "skip AI formatting even when configured")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	ctx := context.Background()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	var ai = newAIService()
	if askNoAI {
		ai = nil
	}
	if ai != nil {
		defer ai.Close() //nolint:errcheck // Best-effort cleanup
	}

	answer(ctx, cmd, ai, args[0])
	return nil
}
