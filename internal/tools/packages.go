package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tender-barbarian/classprov/internal/finder"
)

// listPackagesHandler returns a handler for the list_packages tool.
// It lists the declared artifacts and, when JDK indexing is on, the runtime,
// optionally filtered by name prefix and package manager.
func listPackagesHandler(f *finder.Finder) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := req.GetString("filter", "")
		manager := req.GetString("manager", "")
		return jsonResult(filterPackages(f.Packages(), filter, manager))
	}
}

// findClassfilesHandler returns a handler for the find_classfiles tool.
func findClassfilesHandler(f *finder.Finder) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return nil, err
		}
		match := finder.MatchMode(req.GetString("match", string(finder.MatchPrefix)))
		limit := req.GetInt("limit", 100)
		return jsonResult(f.FindClassfiles(query, match, limit))
	}
}
