package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/triagekit/triagekit/internal/adapters/outbound/config"
	"github.com/triagekit/triagekit/internal/adapters/outbound/gitinfo"
	"github.com/triagekit/triagekit/internal/adapters/outbound/history"
	"github.com/triagekit/triagekit/internal/adapters/outbound/rulepack"
	"github.com/triagekit/triagekit/internal/adapters/outbound/source"
	"github.com/triagekit/triagekit/internal/application"
	"github.com/triagekit/triagekit/internal/domain"
	"github.com/triagekit/triagekit/internal/domain/scan"
	"github.com/triagekit/triagekit/internal/rules"
)

// registerTools registers all TriageKit MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. triagekit_scan
	s.AddTool(
		mcplib.NewTool("triagekit_scan",
			mcplib.WithDescription("Scan the project for known failure patterns and return the prioritized remediation report as JSON"),
			mcplib.WithString("path",
				mcplib.Description("Subdirectory to scan (defaults to the project root)"),
			),
		),
		handleScan(projectPath),
	)

	// 2. triagekit_rules
	s.AddTool(
		mcplib.NewTool("triagekit_rules",
			mcplib.WithDescription("List the rules a scan would run, including rule packs from the project configuration"),
		),
		handleRules(projectPath),
	)

	// 3. triagekit_history
	s.AddTool(
		mcplib.NewTool("triagekit_history",
			mcplib.WithDescription("Return past scan runs for the project, newest first"),
			mcplib.WithString("limit",
				mcplib.Description("Maximum number of runs to return (default 20)"),
			),
		),
		handleHistory(projectPath),
	)

	// 4. triagekit_report
	s.AddTool(
		mcplib.NewTool("triagekit_report",
			mcplib.WithDescription("Return the full stored report for a past run by its run ID"),
			mcplib.WithString("run_id",
				mcplib.Required(),
				mcplib.Description("Run ID as returned by triagekit_history"),
			),
		),
		handleReport(projectPath),
	)
}

// buildScanRequest assembles the registry and tables from the project
// configuration, mirroring what a CLI scan would run.
func buildScanRequest(root string) (application.ScanRequest, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return application.ScanRequest{}, err
	}

	registry, err := domain.NewRegistry(rules.Builtin()...)
	if err != nil {
		return application.ScanRequest{}, err
	}
	for _, p := range cfg.RulePacks {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		if _, err := rulepack.LoadInto(registry, p); err != nil {
			return application.ScanRequest{}, fmt.Errorf("loading rule pack %s: %w", p, err)
		}
	}

	priority, err := cfg.PriorityTable()
	if err != nil {
		return application.ScanRequest{}, err
	}

	return application.ScanRequest{
		Root:     root,
		Registry: registry,
		Filters:  cfg.Filters(),
		Priority: priority,
		Steps:    cfg.StepTable(),
		Options:  scan.Options{Workers: cfg.Workers, MaxFiles: cfg.MaxFiles},
	}, nil
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		root := projectPath
		if sub, ok := request.GetArguments()["path"].(string); ok && sub != "" {
			root = filepath.Join(projectPath, sub)
		}

		req, err := buildScanRequest(root)
		if err != nil {
			return errorResult(fmt.Sprintf("configuration failed: %v", err)), nil
		}

		svc := application.NewScanService(source.New(), gitinfo.New(), nil)
		report, err := svc.Run(req)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleRules(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		req, err := buildScanRequest(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("configuration failed: %v", err)), nil
		}

		type ruleInfo struct {
			ID       string          `json:"id"`
			Category domain.Category `json:"category"`
			Files    []string        `json:"files,omitempty"`
		}
		infos := make([]ruleInfo, 0, req.Registry.Len())
		for _, r := range req.Registry.Rules() {
			infos = append(infos, ruleInfo{ID: r.ID, Category: r.Category, Files: r.FilePatterns})
		}
		return jsonResult(infos)
	}
}

func openHistory(projectPath string) (*history.Store, error) {
	cfg, err := config.Load(projectPath)
	if err != nil {
		return nil, err
	}
	histPath := cfg.History.Path
	if histPath == "" {
		return nil, fmt.Errorf("history is disabled for this project (empty history.path)")
	}
	if !filepath.IsAbs(histPath) {
		histPath = filepath.Join(projectPath, histPath)
	}
	return history.Open(histPath)
}

func handleHistory(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		limit := 20
		if raw, ok := request.GetArguments()["limit"].(string); ok && raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return errorResult(fmt.Sprintf("invalid limit %q", raw)), nil
			}
			limit = n
		}

		hist, err := openHistory(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("opening history failed: %v", err)), nil
		}
		defer hist.Close()

		entries, err := hist.ListRuns(limit)
		if err != nil {
			return errorResult(fmt.Sprintf("loading history failed: %v", err)), nil
		}
		return jsonResult(entries)
	}
}

func handleReport(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		runID, err := request.RequireString("run_id")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		hist, err := openHistory(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("opening history failed: %v", err)), nil
		}
		defer hist.Close()

		report, err := hist.LoadReport(runID)
		if err != nil {
			return errorResult(fmt.Sprintf("loading report failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
