// Package commands defines all Cobra CLI commands for the sportiq binary.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sportiq/sportiq-go/internal/audit"
	"github.com/sportiq/sportiq-go/internal/config"
	"github.com/sportiq/sportiq-go/internal/logging"
)

// configPath holds the --config flag value for YAML config file override.
var configPath string

// loadedConfigPath stores the resolved config file path for audit logging.
var loadedConfigPath string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sportiq",
		Short: "SportIQ — a sports intelligence chatbot powered by RAG",
		Long: `SportIQ is a retrieval-augmented chatbot that answers sports questions
from a local knowledge base of documents.

Questions are classified into Factual, Comparative, or Analytical categories
and routed to the matching retrieval strategy; non-sport questions are
politely refused. Model provider is selected via the MODEL_PROVIDER
environment variable or a YAML config file (~/.sportiq/config.yaml).
See 'sportiq --help' for available commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Load .env if present; real env vars are never overwritten.
			_ = godotenv.Load()

			log := logging.New()

			// Load YAML config (env vars always override YAML values).
			path, err := config.Load(configPath, log)
			if err != nil {
				return err
			}
			loadedConfigPath = path

			// Emit structured audit log for every command invocation.
			audit.LogCommandStart(log, cmd.Name(), loadedConfigPath)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: ~/.sportiq/config.yaml)")

	root.AddCommand(
		NewAskCmd(),
		NewChatCmd(),
		NewIngestCmd(),
		NewServeCmd(),
		NewVersionCmd(),
	)

	return root
}
