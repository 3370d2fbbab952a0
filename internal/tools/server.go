package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is announced to MCP clients.
const ServerName = "mof-report-tools"

// forward describes a tool that relays request_json to one endpoint.
type forward struct {
	name        string
	description string
	path        string
	timeout     time.Duration
}

var forwards = []forward{
	{"mof_valid_data", "MOF: validate an uploaded file against its column settings", "/mof-report/mof-valid-data/", DefaultTimeout},
	{"mof_import_after_mapping", "MOF: import an uploaded file as a parquet snapshot after mapping", "/mof-report/mof-import-data-after-mapping/", DefaultTimeout},
	{"mof_pnt_11", "MOF: build the PNT-11 motor portfolio summary from premium, claim and reserve snapshots", "/mof-report/mof-pnt-11/", ReportTimeout},
	{"mof_bctcq", "MOF: derive the financial statements from an imported ledger", "/mof-report/mof-pnt-bctcq/", ReportTimeout},
}

// NewServer registers the ping tool and one forwarding tool per endpoint.
func NewServer(client *Client, version string, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ping", mcp.WithDescription("Check that the MOF report service is reachable")),
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			body, err := client.Get(ctx, "/health", DefaultTimeout)
			if err != nil {
				logger.Warn("Ping failed", slog.String("error", err.Error()))
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(body), nil
		},
	)

	for _, f := range forwards {
		s.AddTool(
			mcp.NewTool(f.name,
				mcp.WithDescription(f.description),
				mcp.WithString("request_json",
					mcp.Required(),
					mcp.Description("Request body of "+f.path+" as a JSON string"),
				),
			),
			forwardHandler(client, f, logger),
		)
	}
	return s
}

func forwardHandler(client *Client, f forward, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("request_json")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload, err := RepairRequestJSON(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		started := time.Now()
		body, err := client.Post(ctx, f.path, payload, f.timeout)
		if err != nil {
			logger.Warn("Tool call failed", slog.String("tool", f.name), slog.String("error", err.Error()))
			return mcp.NewToolResultError(err.Error()), nil
		}
		logger.Info("Tool call completed", slog.String("tool", f.name), slog.Duration("elapsed", time.Since(started)))
		return mcp.NewToolResultText(body), nil
	}
}

// ServeStdio runs the tool server on stdin and stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
