package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kataras/figma-sparrow/internal/config"
	"github.com/kataras/figma-sparrow/pkg/figma"
)

const version = figma.Version

var configFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "figma-sparrow",
		Short: "Document Figma components",
		Long: "A tool to turn Figma components into structured documentation: usage guidance, " +
			"anatomy, typography and variant colors, as markdown files or through an MCP server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default .figma-sparrow.yaml in the current or home directory)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "figma-sparrow version %s\n", version)
		},
	}

	rootCmd.AddCommand(
		newExtractCmd(),
		newServeCmd(),
		newParseCmd(),
		newScoreCmd(),
		versionCmd,
	)

	return rootCmd
}

// loadConfig reads the configuration, letting the given flags override their keys.
func loadConfig(cmd *cobra.Command, flagKeys map[string]string) (*config.Config, error) {
	loader := config.NewLoader()
	if configFile != "" {
		loader.SetConfigFile(configFile)
	}

	for flagName, key := range flagKeys {
		loader.BindFlag(key, cmd.Flags().Lookup(flagName))
	}

	return loader.Load()
}

// cliLogger implements figmasparrow.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
