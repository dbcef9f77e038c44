package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	figmasparrow "github.com/kataras/figma-sparrow"
	"github.com/kataras/figma-sparrow/internal/config"
	"github.com/kataras/figma-sparrow/internal/logging"
	"github.com/kataras/figma-sparrow/pkg/description"
	"github.com/kataras/figma-sparrow/pkg/formatter"
	"github.com/kataras/figma-sparrow/pkg/mcptools"
	"github.com/kataras/figma-sparrow/pkg/parity"
)

func newExtractCmd() *cobra.Command {
	var (
		figmaURL string
		nodeIDs  string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write documentation files for Figma components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]string{
				"token":       "token",
				"system-name": "system_name",
				"output":      "output",
				"format":      "format",
				"parallel":    "parallel",
			})
			if err != nil {
				return err
			}
			if err := cfg.RequireToken(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runExtract(ctx, cfg, figmaURL, figmasparrow.ParseNodeIDs(nodeIDs))
		},
	}

	cmd.Flags().StringVarP(&figmaURL, "url", "u", "", "Figma component URL (required)")
	cmd.Flags().StringP("token", "t", "", "Figma Personal Access Token (or FIGMA_SPARROW_TOKEN)")
	cmd.Flags().StringVarP(&nodeIDs, "node-ids", "n", "", "Comma-separated node IDs to document (optional, defaults to the node-id in the URL)")
	cmd.Flags().StringP("system-name", "s", "", "Design system name recorded in the entries")
	cmd.Flags().StringP("output", "o", config.Default().Output, "Output directory")
	cmd.Flags().StringP("format", "f", config.Default().Format, "Output format: md, json, yaml")
	cmd.Flags().IntP("parallel", "p", config.Default().Parallel, "Number of components extracted at once")

	cmd.MarkFlagRequired("url")

	return cmd
}

func runExtract(ctx context.Context, cfg *config.Config, figmaURL string, nodeIDs []string) error {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🐦 Figma Sparrow")
	cyan.Println("================")
	cyan.Println()

	format, err := formatter.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	progress := &extractProgress{}
	result, err := figmasparrow.Run(ctx, figmasparrow.Options{
		AccessToken: cfg.Token,
		FileURL:     figmaURL,
		NodeIDs:     nodeIDs,
		SystemName:  cfg.SystemName,
		Format:      format,
		Parallel:    cfg.Parallel,
		Progress:    progress.update,
		Logger:      &cliLogger{},
	})
	if err != nil {
		return err
	}

	cyan.Println("\n📊 Extraction Summary:")
	fmt.Printf("  • File: %s\n", result.FileName)
	for _, c := range result.Components {
		fmt.Printf("  • %s: %d variant(s), %d text style(s), %d section(s)\n",
			c.Docs.Name,
			len(c.Docs.Variants),
			len(c.Docs.Typography),
			len(c.Chunks))
	}
	if len(result.Errors) > 0 {
		red.Printf("  • Failed: %d node(s)\n", len(result.Errors))
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, c := range result.Components {
		data, err := formatter.EncodeEntry(c.Entry, format)
		if err != nil {
			return err
		}

		outputFile := filepath.Join(cfg.Output, c.FileName)
		green.Printf("\n💾 Writing to %s... ", outputFile)
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			red.Printf("✗\n")
			return err
		}
		green.Println("✓")
	}

	green.Printf("\n✨ Successfully documented %d component(s) in %s\n\n", len(result.Components), cfg.Output)
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation tools over MCP (stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, map[string]string{
				"token":      "token",
				"log-level":  "log.level",
				"log-format": "log.format",
			})
			if err != nil {
				return err
			}

			// stdout carries the MCP protocol.
			logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()
			sugar := logger.Sugar()

			var extract mcptools.Extractor
			if cfg.RequireToken() == nil {
				extract = docsExtractor(cfg, sugar)
			} else {
				sugar.Warnw("no Figma token configured, extract_component_docs is disabled")
			}

			sugar.Infow("starting MCP server", "name", mcptools.ServerName, "version", version)
			return server.ServeStdio(mcptools.NewServer(version, extract))
		},
	}

	cmd.Flags().StringP("token", "t", "", "Figma Personal Access Token (or FIGMA_SPARROW_TOKEN)")
	cmd.Flags().String("log-level", config.Default().Log.Level, "Log level: debug, info, warn, error")
	cmd.Flags().String("log-format", config.Default().Log.Format, "Log format: json, console")

	return cmd
}

// docsExtractor runs the pipeline for MCP requests.
func docsExtractor(cfg *config.Config, logger figmasparrow.Logger) mcptools.Extractor {
	return mcptools.ExtractorFunc(func(ctx context.Context, req mcptools.ExtractRequest) ([]formatter.DocsEntry, error) {
		systemName := req.SystemName
		if systemName == "" {
			systemName = cfg.SystemName
		}

		result, err := figmasparrow.Run(ctx, figmasparrow.Options{
			AccessToken: cfg.Token,
			FileURL:     req.URL,
			NodeIDs:     req.NodeIDs,
			SystemName:  systemName,
			Parallel:    cfg.Parallel,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}

		return result.Entries(), nil
	})
}

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a component description (file or stdin) into structured sections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := structuredFormat(outputFormat)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			text, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read description: %w", err)
			}

			return formatter.Encode(cmd.OutOrStdout(), description.Parse(string(text)), format)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json, yaml")

	return cmd
}

type scoreOutput struct {
	Score  int           `json:"score" yaml:"score"`
	Counts parity.Counts `json:"counts" yaml:"counts"`
}

func newScoreCmd() *cobra.Command {
	var (
		severities   []string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "score [critical major minor info]",
		Short: "Compute the design/code parity score",
		Long: "Compute the 0-100 design/code parity score from discrepancy counts, given either as four " +
			"numbers or as a list of severities with --severities critical,minor,minor",
		Args: cobra.RangeArgs(0, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := scoreCounts(args, severities)
			if err != nil {
				return err
			}

			if outputFormat == "text" {
				fmt.Fprintf(cmd.OutOrStdout(), "Parity score: %d/100 (%d critical, %d major, %d minor, %d info)\n",
					counts.Score(), counts.Critical, counts.Major, counts.Minor, counts.Info)
				return nil
			}

			format, err := structuredFormat(outputFormat)
			if err != nil {
				return err
			}
			return formatter.Encode(cmd.OutOrStdout(), scoreOutput{Score: counts.Score(), Counts: counts}, format)
		},
	}

	cmd.Flags().StringSliceVar(&severities, "severities", nil, "Comma-separated severities of each discrepancy")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text, json, yaml")

	return cmd
}

func scoreCounts(args, severities []string) (parity.Counts, error) {
	if len(severities) > 0 {
		if len(args) > 0 {
			return parity.Counts{}, errors.New("pass either counts or --severities, not both")
		}

		parsed := make([]parity.Severity, 0, len(severities))
		for _, name := range severities {
			s, err := parity.ParseSeverity(name)
			if err != nil {
				return parity.Counts{}, err
			}
			parsed = append(parsed, s)
		}
		return parity.Tally(parsed), nil
	}

	if len(args) != 4 {
		return parity.Counts{}, fmt.Errorf("expected 4 counts (critical major minor info), got %d", len(args))
	}

	var values [4]int
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return parity.Counts{}, fmt.Errorf("count %q must be a non-negative integer", arg)
		}
		values[i] = n
	}

	return parity.Counts{Critical: values[0], Major: values[1], Minor: values[2], Info: values[3]}, nil
}

func structuredFormat(name string) (formatter.Format, error) {
	format, err := formatter.ParseFormat(name)
	if err != nil {
		return "", err
	}
	if format == formatter.FormatMarkdown {
		return "", fmt.Errorf("format %q is not supported here (expected json or yaml)", name)
	}
	return format, nil
}
