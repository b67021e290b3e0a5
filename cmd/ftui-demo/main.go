// Ftui-demo is a small interactive showcase for the frankentui
// runtime.
//
// It runs a counter application that exercises the message loop:
// keyboard input, commands, background tasks, periodic subscriptions
// and the scrollback log path. By default it renders as a four-row
// inline region at the bottom of the terminal; --fullscreen switches
// to the alternate screen.
//
// Usage:
//
//	ftui-demo [flags]
//
// See 'ftui-demo --help' for available flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sfncore/frankentui/internal/logging"
	"github.com/sfncore/frankentui/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ftui-demo",
	Short: "Frankentui runtime demo",
	Long: `An interactive demo of the frankentui terminal runtime.

Keys:
  space     increment the counter
  t         run a background task
  l         write a line to the scrollback log
  w         toggle the clock subscription
  q, ctrl+c quit`,
	Version: version.Version,
	RunE:    runDemo,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ftui-demo %s (commit: %s)\n", version.Version, version.Commit)
	},
}
