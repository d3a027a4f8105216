package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sportiq/sportiq-go/internal/logging"
)

// NewAskCmd constructs the `sportiq ask` command, which answers a single
// natural language question and prints the result to stdout.
func NewAskCmd() *cobra.Command {
	var showCategory bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the sports chatbot a single question",
		Long: `Ask SportIQ a natural language question about sports.

The question is classified into a category (Factual, Comparative, or
Analytical), relevant passages are retrieved from the knowledge base, and the
answer is generated by the configured LLM. Non-sport questions are refused.

Examples:
  sportiq ask "Who won the 2022 World Cup?"
  sportiq ask "Messi vs Ronaldo: who has more international trophies?"
  sportiq ask --show-category "Why do marathon runners carb-load?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			session, closeSession, err := buildSession(ctx, log)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}
			defer closeSession()

			answer := session.Ask(ctx, args[0])

			if showCategory {
				fmt.Printf("[%s] ", answer.Category)
			}
			fmt.Println(answer.Text)

			log.Debug("ask complete",
				slog.String("category", string(answer.Category)),
				slog.String("outcome", string(answer.Outcome)),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCategory, "show-category", false, "Prefix the answer with its routing category")

	return cmd
}
