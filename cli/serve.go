package cli

import (
	"santorini/agent"

	"github.com/spf13/cobra"
)

func newServeCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search engine over HTTP",
		Long: `Serve the search engine over HTTP:

  POST /findmove    {"state": ...}            -> {"move": "a1-b2-c3", "metrics": ...}
  POST /legalmoves  {"state": ...}            -> {"moves": [...], "winner": 0}
  POST /play        {"state": ..., "move": ""} -> {"state": ..., "winner": 0}
  GET  /health`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return agent.Serve(cmd.Context(), cfg.Addr, agent.NewEvaluationAgent(cfg.newMCTS()))
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address (env: SANTORINI_ADDR)")
	return cmd
}
