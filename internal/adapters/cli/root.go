package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipforge",
		Short: "ShipForge CLI - Design ships and inspect their derived stats",
		Long: `ShipForge CLI manages ship designs built from component, modifier and
class definitions. Designs store only definition ids and modifier values;
all derived attributes are recomputed from the current definition files.

Examples:
  shipforge definitions validate
  shipforge definitions list
  shipforge design build --file designs/frigate.yaml
  shipforge design list
  shipforge design show <design-id>
  shipforge design stats <design-id>`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewDefinitionsCommand())
	rootCmd.AddCommand(NewDesignCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
