package main

import (
	"context"

	"github.com/aretw0/parley/internal/cli"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [story.yaml]",
	Short: "Play a dialogue in the terminal",
	Long: `Plays a story interactively. Type the number of a choice to take it,
"reset" to start over, or "exit" to leave. Without a story the built-in
cavern adventure is played and the final score is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd, args)
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		return cli.RunSession(context.Background(), opts)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().String("start", "", "Start at this node instead of the story's start")
	playCmd.Flags().Bool("plain", false, "Disable banner, markdown and colours")

	// Make 'play' the default if no command is provided
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
	rootCmd.Args = playCmd.Args
}
