package figmasparrow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kataras/figma-sparrow/pkg/batch"
	"github.com/kataras/figma-sparrow/pkg/extractor"
	"github.com/kataras/figma-sparrow/pkg/figma"
	"github.com/kataras/figma-sparrow/pkg/formatter"
)

// ErrMissingToken is returned by Run when no access token is given.
var ErrMissingToken = errors.New("missing Figma access token")

// Options configures the extraction.
type Options struct {
	AccessToken string
	FileURL     string   // Figma file or design URL
	NodeIDs     []string // empty = node-id from the URL
	SystemName  string   // recorded in every DocsEntry, optional
	Format      formatter.Format
	Parallel    int // concurrent extractions, 0 = batch.DefaultParallel

	// Progress, when set, is called as components finish extracting.
	Progress batch.ProgressFunc

	BaseURL    string       // Figma API root, empty = public API
	HTTPClient *http.Client // optional

	Logger Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Component is the documentation of one extracted component.
type Component struct {
	Docs     *extractor.ComponentDocs
	Markdown string
	Entry    formatter.DocsEntry
	Chunks   []formatter.MarkdownChunk
	FileName string // unique output file name for Options.Format
}

// Result contains the extraction output.
type Result struct {
	FileName   string // Figma file name
	Components []Component
	Errors     []error // nodes that could not be documented
}

// Entries returns the documentation entries of every component.
func (r *Result) Entries() []formatter.DocsEntry {
	entries := make([]formatter.DocsEntry, 0, len(r.Components))
	for _, c := range r.Components {
		entries = append(entries, c.Entry)
	}
	return entries
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

func (o *Options) client() *figma.Client {
	var clientOpts []figma.Option
	if o.BaseURL != "" {
		clientOpts = append(clientOpts, figma.WithBaseURL(o.BaseURL))
	}
	if o.HTTPClient != nil {
		clientOpts = append(clientOpts, figma.WithHTTPClient(o.HTTPClient))
	}
	return figma.NewClient(o.AccessToken, clientOpts...)
}

// Run executes the documentation pipeline and returns the result.
// Nodes that fail to extract are reported in Result.Errors; Run fails only when
// nothing could be documented.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.AccessToken) == "" {
		return nil, ErrMissingToken
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatMarkdown
	}

	// Extract file key from URL.
	opts.logInfo("Extracting file key from URL...")
	fileKey, err := figma.ExtractFileKey(opts.FileURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}
	opts.logInfo("File key: %s", fileKey)

	// Explicit node IDs win over the ones in the URL.
	var targetNodeIDs []string
	if len(opts.NodeIDs) > 0 {
		opts.logInfo("Using %d explicit node ID(s)", len(opts.NodeIDs))
		targetNodeIDs = opts.NodeIDs
	} else {
		opts.logInfo("Checking URL for node IDs...")
		targetNodeIDs, err = figma.ExtractNodeIDs(opts.FileURL)
		if err != nil {
			return nil, fmt.Errorf("extract node IDs from URL: %w", err)
		}
		if len(targetNodeIDs) == 0 {
			return nil, errors.New("no component to document: select a node in Figma and copy its link, or pass node IDs")
		}
		opts.logInfo("Found %d node(s) in URL", len(targetNodeIDs))
	}

	opts.logInfo("Authenticating with Figma API...")
	client := opts.client()

	opts.logInfo("Fetching nodes from Figma...")
	nodesResp, err := client.GetFileNodes(ctx, fileKey, targetNodeIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch nodes: %w", err)
	}
	opts.logInfo("File: %s, retrieved %d node(s)", nodesResp.Name, len(nodesResp.Nodes))

	// Variables only add names to bound colors; the docs are still useful without them.
	opts.logInfo("Fetching local variables...")
	vars := figma.VariableNames{}
	varsResp, err := client.GetLocalVariables(ctx, fileKey)
	if err != nil {
		opts.logWarn("Variables unavailable, colors will not carry variable names: %v", err)
	} else {
		vars = figma.NamesFromVariables(varsResp)
		opts.logInfo("Resolved %d variable name(s)", len(vars))
	}

	jobs, missing := batch.JobsFromNodes(nodesResp, targetNodeIDs)
	for _, err := range missing {
		opts.logWarn("%v", err)
	}

	opts.logInfo("Extracting %d component(s)...", len(jobs))
	var batchOpts []batch.Option
	if opts.Progress != nil {
		batchOpts = append(batchOpts, batch.WithProgress(opts.Progress))
	}
	extracted := batch.ExtractAll(jobs, vars, opts.Parallel, batchOpts...)
	for _, err := range extracted.Errors {
		opts.logError("%v", err)
	}

	result := &Result{
		FileName: nodesResp.Name,
		Errors:   append(missing, extracted.Errors...),
	}

	opts.logInfo("Generating markdown documentation...")
	namer := formatter.NewFileNamer()
	for _, docs := range extracted.Docs {
		result.Components = append(result.Components, document(docs, namer, &opts))
	}

	if len(result.Components) == 0 {
		return nil, fmt.Errorf("no component could be documented: %w", errors.Join(result.Errors...))
	}

	return result, nil
}

func document(docs *extractor.ComponentDocs, namer *formatter.FileNamer, opts *Options) Component {
	markdown := formatter.ToMarkdown(docs)

	return Component{
		Docs:     docs,
		Markdown: markdown,
		Entry:    formatter.NewDocsEntry(markdown, docs.Name, opts.FileURL, opts.SystemName),
		Chunks:   formatter.ChunkMarkdownByHeaders(markdown),
		FileName: namer.Next(docs.Name, docs.NodeID, opts.Format),
	}
}

// ParseNodeIDs parses a comma-separated string of node IDs and returns a slice.
// URL-style IDs ("1-2") are converted to API form ("1:2").
func ParseNodeIDs(nodeIDsStr string) []string {
	parts := strings.Split(nodeIDsStr, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, strings.ReplaceAll(trimmed, "-", ":"))
		}
	}

	return result
}
