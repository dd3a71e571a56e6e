// Package cli defines the crosswatch command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "crosswatch",
	Short: "Crosswatch correlation engine",
	Long: `crosswatch discovers latent relationships in event snapshots:
temporal and spatial proximity, recurring themes, cause-effect cascades,
periodic patterns, and geographic clusters.

Run the HTTP service, analyze a snapshot file offline, or generate
synthetic snapshots for testing.`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
}
