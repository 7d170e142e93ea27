package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tender-barbarian/classprov/internal/finder"
)

// Register wires all provenance MCP tools to s.
// Each tool delegates to f for querying the package table.
func Register(s *server.MCPServer, f *finder.Finder) {
	s.AddTool(mcp.NewTool("list_packages",
		mcp.WithDescription("Lists the declared dependency artifacts and the JDK, with the number of classfiles indexed for each."),
		mcp.WithString("filter", mcp.Description("Optional prefix filter on package name, e.g. \"com.acme:\"")),
		mcp.WithString("manager", mcp.Description(`Optional package manager filter: "maven" or "jdk"`)),
	), withLengthCheck(listPackagesHandler(f)))

	s.AddTool(mcp.NewTool("resolve_classfile",
		mcp.WithDescription("Returns the package that ships a classfile."),
		mcp.WithString("classfile", mcp.Required(), mcp.Description("Slash-separated classfile path, e.g. com/acme/Widget.class")),
	), withLengthCheck(resolveClassfileHandler(f)))

	s.AddTool(mcp.NewTool("resolve_symbols",
		mcp.WithDescription("Returns the package that ships the top-level class of each SemanticDB symbol."),
		mcp.WithArray("symbols", mcp.Required(), mcp.WithStringItems(),
			mcp.Description("SemanticDB symbols, e.g. com/acme/Widget#spin().")),
	), withLengthCheck(resolveSymbolsHandler(f)))

	s.AddTool(mcp.NewTool("find_classfiles",
		mcp.WithDescription("Searches the indexed classfiles of all declared artifacts by name."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Classfile name or fragment")),
		mcp.WithString("match", mcp.Description(`Match mode: "prefix" (default), "exact", or "contains"`)),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 100, 0 = unlimited)")),
	), withLengthCheck(findClassfilesHandler(f)))
}
