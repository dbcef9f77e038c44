// Package mcptools exposes the extraction engines as MCP tools.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kataras/figma-sparrow/pkg/description"
	"github.com/kataras/figma-sparrow/pkg/figma"
	"github.com/kataras/figma-sparrow/pkg/formatter"
	"github.com/kataras/figma-sparrow/pkg/normalize"
	"github.com/kataras/figma-sparrow/pkg/parity"
)

// ServerName is the name the MCP server announces.
const ServerName = "figma-sparrow"

// ExtractRequest asks for the documentation entries of the components behind a Figma URL.
type ExtractRequest struct {
	URL        string   `json:"url"`
	NodeIDs    []string `json:"node_ids"`
	SystemName string   `json:"system_name"`
}

// Extractor retrieves and documents components from Figma.
type Extractor interface {
	ExtractDocs(ctx context.Context, req ExtractRequest) ([]formatter.DocsEntry, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, req ExtractRequest) ([]formatter.DocsEntry, error)

// ExtractDocs implements Extractor.
func (f ExtractorFunc) ExtractDocs(ctx context.Context, req ExtractRequest) ([]formatter.DocsEntry, error) {
	return f(ctx, req)
}

// NewServer returns an MCP server with every tool registered.
// extract may be nil, in which case extract_component_docs is not offered.
func NewServer(version string, extract Extractor) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version, server.WithToolCapabilities(true))
	Register(s, extract)
	return s
}

// Register adds the tools to s. It can be combined with other registrations.
func Register(s *server.MCPServer, extract Extractor) {
	s.AddTool(parseDescriptionTool(), handleParseDescription)
	s.AddTool(parityScoreTool(), handleParityScore)
	s.AddTool(normalizeColorTool(), handleNormalizeColor)
	s.AddTool(chunkMarkdownTool(), handleChunkMarkdown)
	s.AddTool(compareValuesTool(), handleCompareValues)
	s.AddTool(classifyNameTool(), handleClassifyName)
	if extract != nil {
		s.AddTool(extractDocsTool(), createExtractDocsHandler(extract))
	}
}

func parseDescriptionTool() mcp.Tool {
	return mcp.NewTool(
		"parse_component_description",
		mcp.WithDescription("Parse a Figma component description into overview, when to use, when not to use, content guidelines and accessibility notes."),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("Raw description text as written in Figma")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

func handleParseDescription(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Description *string `json:"description"`
	}
	if err := bindArguments(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
	}
	if args.Description == nil {
		return mcp.NewToolResultError("description parameter is required"), nil
	}

	return marshalToolResponse(description.Parse(*args.Description))
}

func parityScoreTool() mcp.Tool {
	return mcp.NewTool(
		"calculate_parity_score",
		mcp.WithDescription("Compute a 0-100 design/code parity score from discrepancy counts: 100 - 15*critical - 8*major - 3*minor - info, floored at 0."),
		mcp.WithNumber("critical", mcp.Description("Number of critical discrepancies")),
		mcp.WithNumber("major", mcp.Description("Number of major discrepancies")),
		mcp.WithNumber("minor", mcp.Description("Number of minor discrepancies")),
		mcp.WithNumber("info", mcp.Description("Number of informational discrepancies")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

type parityResponse struct {
	Score  int           `json:"score"`
	Counts parity.Counts `json:"counts"`
}

func handleParityScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Critical float64 `json:"critical"`
		Major    float64 `json:"major"`
		Minor    float64 `json:"minor"`
		Info     float64 `json:"info"`
	}
	if err := bindArguments(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
	}

	var counts parity.Counts
	fields := []struct {
		name  string
		value float64
		dst   *int
	}{
		{"critical", args.Critical, &counts.Critical},
		{"major", args.Major, &counts.Major},
		{"minor", args.Minor, &counts.Minor},
		{"info", args.Info, &counts.Info},
	}
	for _, f := range fields {
		if f.value < 0 || f.value != math.Trunc(f.value) {
			return mcp.NewToolResultError(fmt.Sprintf("%s must be a non-negative integer, got %v", f.name, f.value)), nil
		}
		if f.value >= math.MaxInt64 {
			return mcp.NewToolResultError(fmt.Sprintf("%s is too large, got %v", f.name, f.value)), nil
		}
		*f.dst = int(f.value)
	}

	return marshalToolResponse(parityResponse{Score: counts.Score(), Counts: counts})
}

func normalizeColorTool() mcp.Tool {
	return mcp.NewTool(
		"normalize_color",
		mcp.WithDescription("Normalize a color to uppercase #RRGGBB[AA]. Pass either a hex string as color, or Figma float channels r, g, b (and optional a) in [0,1]."),
		mcp.WithString("color", mcp.Description("Hex color with 3, 6 or 8 digits, '#' optional")),
		mcp.WithNumber("r", mcp.Description("Red channel, 0-1")),
		mcp.WithNumber("g", mcp.Description("Green channel, 0-1")),
		mcp.WithNumber("b", mcp.Description("Blue channel, 0-1")),
		mcp.WithNumber("a", mcp.Description("Optional alpha channel, 0-1")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

type colorResponse struct {
	Hex string `json:"hex"`
}

func handleNormalizeColor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Color string   `json:"color"`
		R     *float64 `json:"r"`
		G     *float64 `json:"g"`
		B     *float64 `json:"b"`
		A     *float64 `json:"a"`
	}
	if err := bindArguments(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
	}

	var (
		hex string
		err error
	)
	switch {
	case args.Color != "":
		hex, err = normalize.NormalizeColor(args.Color)
	case args.R != nil && args.G != nil && args.B != nil:
		c := figma.RGB(*args.R, *args.G, *args.B)
		c.A = args.A
		hex, err = normalize.FigmaRGBAToHex(c)
	default:
		return mcp.NewToolResultError("either color or r, g and b parameters are required"), nil
	}

	var verr *normalize.ValidationError
	if errors.As(err, &verr) {
		return mcp.NewToolResultError(verr.Error()), nil
	}
	if err != nil {
		return nil, err
	}

	return marshalToolResponse(colorResponse{Hex: hex})
}

func chunkMarkdownTool() mcp.Tool {
	return mcp.NewTool(
		"chunk_markdown",
		mcp.WithDescription("Split a markdown document into sections on its level-2 (##) headers."),
		mcp.WithString("markdown",
			mcp.Required(),
			mcp.Description("Markdown document")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

func handleChunkMarkdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Markdown *string `json:"markdown"`
	}
	if err := bindArguments(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
	}
	if args.Markdown == nil {
		return mcp.NewToolResultError("markdown parameter is required"), nil
	}

	return marshalToolResponse(formatter.ChunkMarkdownByHeaders(*args.Markdown))
}

func compareValuesTool() mcp.Tool {
	return mcp.NewTool(
		"compare_values",
		mcp.WithDescription("Check whether a measured design value (size, spacing, radius) matches the implemented value within a tolerance."),
		mcp.WithNumber("design",
			mcp.Required(),
			mcp.Description("Value taken from the design")),
		mcp.WithNumber("code",
			mcp.Required(),
			mcp.Description("Value found in the implementation")),
		mcp.WithNumber("tolerance",
			mcp.Description(fmt.Sprintf("Maximum absolute difference, default %g", normalize.DefaultTolerance))),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

type compareResponse struct {
	Match      bool    `json:"match"`
	Difference float64 `json:"difference"`
	Tolerance  float64 `json:"tolerance"`
}

func handleCompareValues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Design    *float64 `json:"design"`
		Code      *float64 `json:"code"`
		Tolerance *float64 `json:"tolerance"`
	}
	if err := bindArguments(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
	}
	if args.Design == nil || args.Code == nil {
		return mcp.NewToolResultError("design and code parameters are required"), nil
	}

	resp := compareResponse{
		Difference: math.Abs(*args.Design - *args.Code),
		Tolerance:  normalize.DefaultTolerance,
	}
	if args.Tolerance != nil {
		if *args.Tolerance < 0 {
			return mcp.NewToolResultError("tolerance must not be negative"), nil
		}
		resp.Tolerance = *args.Tolerance
	}
	resp.Match = normalize.NumericCloseTol(*args.Design, *args.Code, resp.Tolerance)

	return marshalToolResponse(resp)
}

func classifyNameTool() mcp.Tool {
	return mcp.NewTool(
		"classify_component_name",
		mcp.WithDescription("Tell whether a Figma layer name is a variant property list and return its display and identifier forms."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Layer or component name, e.g. 'Type=Filled, Size=Large'")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

type classifyResponse struct {
	IsVariant  bool   `json:"isVariant"`
	Clean      string `json:"clean"`
	Identifier string `json:"identifier"`
}

func handleClassifyName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Name *string `json:"name"`
	}
	if err := bindArguments(request, &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
	}
	if args.Name == nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	return marshalToolResponse(classifyResponse{
		IsVariant:  normalize.IsVariantName(*args.Name),
		Clean:      normalize.CleanVariantName(*args.Name),
		Identifier: normalize.SanitizeComponentName(*args.Name),
	})
}

func extractDocsTool() mcp.Tool {
	return mcp.NewTool(
		"extract_component_docs",
		mcp.WithDescription("Fetch components from a Figma URL and return documentation entries with anatomy, typography, variant colors and parsed usage guidance."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Figma file or design URL, optionally with a node-id")),
		mcp.WithArray("node_ids",
			mcp.Description("Node IDs to document (e.g. ['1:2']); defaults to the node-id in the URL")),
		mcp.WithString("system_name",
			mcp.Description("Design system name recorded in the entry metadata")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

type extractResponse struct {
	Entries []formatter.DocsEntry `json:"entries"`
	Total   int                   `json:"total"`
}

func createExtractDocsHandler(extract Extractor) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req ExtractRequest
		if err := bindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if req.URL == "" {
			return mcp.NewToolResultError("url parameter is required"), nil
		}

		entries, err := extract.ExtractDocs(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
		}

		return marshalToolResponse(extractResponse{Entries: entries, Total: len(entries)})
	}
}
