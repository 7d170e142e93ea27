package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tender-barbarian/classprov/internal/finder"
)

// maxSymbols bounds a single resolve_symbols request.
const maxSymbols = 500

// resolveClassfileHandler returns a handler for the resolve_classfile tool.
func resolveClassfileHandler(f *finder.Finder) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		classfile, err := req.RequireString("classfile")
		if err != nil {
			return nil, err
		}
		return jsonResult(f.ResolveClassfile(classfile))
	}
}

// resolveSymbolsHandler returns a handler for the resolve_symbols tool.
// Symbols without known provenance are returned without a package.
func resolveSymbolsHandler(f *finder.Finder) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbols, err := req.RequireStringSlice("symbols")
		if err != nil {
			return nil, err
		}
		if len(symbols) > maxSymbols {
			return nil, fmt.Errorf("too many symbols: %d (max %d)", len(symbols), maxSymbols)
		}
		for _, s := range symbols {
			if len(s) > maxInputLen {
				return nil, fmt.Errorf("symbol exceeds maximum length of %d bytes", maxInputLen)
			}
		}
		res, err := f.ResolveSymbols(ctx, symbols)
		if err != nil {
			return nil, fmt.Errorf("resolving symbols: %w", err)
		}
		return jsonResult(res)
	}
}
