// Package figmasparrow turns Figma components into structured documentation:
// parsed usage guidance, an anatomy tree, typography, per-variant colors and
// ready-to-store documentation entries.
//
// The CLI and the MCP server live in cmd/figma-sparrow; this root package exposes
// the same pipeline as a Go API so that callers can embed it in their own tools.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmasparrow:
//
//	import "github.com/kataras/figma-sparrow" // package figmasparrow
//
// # Quick start
//
//	result, err := figmasparrow.Run(ctx, figmasparrow.Options{
//	    AccessToken: os.Getenv("FIGMA_SPARROW_TOKEN"),
//	    FileURL:     "https://www.figma.com/design/ABC123/My-DS?node-id=1-2",
//	    SystemName:  "My DS",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range result.Components {
//	    os.WriteFile(c.FileName, []byte(c.Markdown), 0644)
//	}
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output. A *zap.SugaredLogger satisfies
// the interface.
//
// # Node selection
//
// Components are selected with [Options.NodeIDs] or, when that is empty, with
// the node-id query parameter of the Figma URL. Nodes that cannot be documented
// are reported in [Result.Errors] while the rest are still returned.
//
// # Engines
//
// The building blocks are usable on their own: pkg/description parses
// description text, pkg/extractor walks node trees, pkg/normalize converts
// colors and names, pkg/parity scores design/code parity and pkg/formatter
// renders markdown and documentation entries.
package figmasparrow
