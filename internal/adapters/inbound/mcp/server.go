package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewTriageKitMCPServer creates a new MCP server with all TriageKit tools
// registered. The projectPath is the root directory of the project to scan.
func NewTriageKitMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"triagekit",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
