package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sportiq/sportiq-go/internal/logging"
)

// wordDelay is the pause between words when printing answers in the chat
// REPL, giving a streaming feel without requiring a streaming backend.
const wordDelay = 50 * time.Millisecond

// NewChatCmd constructs the `sportiq chat` command, an interactive REPL that
// answers questions until the user types "exit" or closes stdin.
func NewChatCmd() *cobra.Command {
	var noPacing bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive terminal chat with SportIQ.

Each question is answered independently; there is no cross-question memory.
Type "exit" or press Ctrl-D to quit.

Examples:
  sportiq chat
  sportiq chat --no-pacing`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			session, closeSession, err := buildSession(ctx, log)
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}
			defer closeSession()

			fmt.Println("SportIQ ready. Ask me anything about sports. Type \"exit\" to quit.")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("\nYou: ")
				if !scanner.Scan() {
					fmt.Println()
					break
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					continue
				}
				if strings.EqualFold(question, "exit") || strings.EqualFold(question, "quit") {
					break
				}

				answer := session.Ask(ctx, question)

				fmt.Print("SportIQ: ")
				printPaced(answer.Text, noPacing)
				fmt.Println()
			}

			return scanner.Err() //nolint:wrapcheck // CLI entry point, error goes directly to cobra
		},
	}

	cmd.Flags().BoolVar(&noPacing, "no-pacing", false, "Print answers immediately instead of word by word")

	return cmd
}

// printPaced prints text word by word with a short delay, unless pacing is
// disabled.
func printPaced(text string, noPacing bool) {
	if noPacing {
		fmt.Print(text)
		return
	}
	words := strings.Fields(text)
	for i, w := range words {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(w)
		time.Sleep(wordDelay)
	}
}
