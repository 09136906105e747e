package main

import (
	"fmt"
	"os"

	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley plays branching dialogues",
	Long: `Parley walks dialogue graphs: nodes of content joined by choices that may be
guarded by conditions and carry actions. Stories are written in YAML; with no
story file the built-in cavern adventure is used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log runner events to stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

// runOptions collects the shared flags; the first argument, if any, is the story.
func runOptions(cmd *cobra.Command, args []string) cli.RunOptions {
	debug, _ := cmd.Flags().GetBool("debug")
	format, _ := cmd.Flags().GetString("log-format")
	opts := cli.RunOptions{Debug: debug, LogFormat: format}
	if len(args) > 0 {
		opts.StoryPath = args[0]
	}
	if f := cmd.Flags().Lookup("start"); f != nil {
		opts.Start = f.Value.String()
	}
	return opts
}
