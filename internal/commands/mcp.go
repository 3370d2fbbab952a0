package commands

import (
	"log/slog"

	"github.com/SscSPs/mof_report_service/internal/platform/config"
	"github.com/SscSPs/mof_report_service/internal/tools"
	"github.com/spf13/cobra"
)

func newMCPCommand(newLogger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var baseURL, token string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MOF endpoints as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = cfg.MofAPIBaseURL
			}
			if token == "" {
				token = cfg.MofAPIToken
			}

			logger := newLogger(cmd)
			logger.Info("Serving MCP tools", slog.String("base_url", baseURL))
			return tools.ServeStdio(tools.NewServer(tools.NewClient(baseURL, token), Version, logger))
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "MOF API base URL (default MOF_API_BASE_URL)")
	cmd.Flags().StringVar(&token, "token", "", "bearer token for the MOF API (default MOF_API_TOKEN)")

	return cmd
}
