package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tender-barbarian/classprov/internal/finder"
)

// maxInputLen bounds every string argument a tool accepts.
const maxInputLen = 4096

// jsonResult serialises v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

// withLengthCheck rejects requests carrying a string argument longer than maxInputLen.
func withLengthCheck(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		for name, v := range req.GetArguments() {
			s, ok := v.(string)
			if ok && len(s) > maxInputLen {
				return nil, fmt.Errorf("argument %q exceeds maximum length of %d bytes", name, maxInputLen)
			}
		}
		return next(ctx, req)
	}
}

// filterPackages keeps packages whose name starts with prefix and, when
// manager is non-empty, whose manager matches.
func filterPackages(pkgs []finder.PackageSummary, prefix, manager string) []finder.PackageSummary {
	result := make([]finder.PackageSummary, 0, len(pkgs))
	for _, p := range pkgs {
		if !strings.HasPrefix(p.Name, prefix) {
			continue
		}
		if manager != "" && string(p.Manager) != manager {
			continue
		}
		result = append(result, p)
	}
	return result
}
