package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/shipforge/internal/infrastructure/config"
)

// NewDefinitionsCommand creates the definitions command with subcommands
func NewDefinitionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "definitions",
		Short: "Validate and inspect definition files",
		Long: `Validate and inspect the component, modifier and class definition files.

Definitions are loaded from the path in the config file (definitions.path)
or the SF_DEFINITIONS_PATH environment variable.

Examples:
  shipforge definitions validate
  shipforge definitions list`,
	}

	cmd.AddCommand(newDefinitionsValidateCommand())
	cmd.AddCommand(newDefinitionsListCommand())

	return cmd
}

// newDefinitionsValidateCommand creates the definitions validate subcommand
func newDefinitionsValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load all definition files and report the first error",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			reg, err := openRegistry(cfg)
			if err != nil {
				return err
			}

			fmt.Println("✓ Definitions valid")
			fmt.Printf("  Components: %d\n", len(reg.ComponentIDs()))
			fmt.Printf("  Modifiers:  %d\n", len(reg.ModifierIDs()))
			fmt.Printf("  Classes:    %d\n", len(reg.ClassIDs()))
			return nil
		},
	}
}

// newDefinitionsListCommand creates the definitions list subcommand
func newDefinitionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all loaded definitions by kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			reg, err := openRegistry(cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tID\tNAME")
			for _, id := range reg.ComponentIDs() {
				def, _ := reg.ComponentDefinition(id)
				fmt.Fprintf(w, "component\t%s\t%s\n", def.ID, def.Name)
			}
			for _, id := range reg.ModifierIDs() {
				def, _ := reg.ModifierDefinition(id)
				fmt.Fprintf(w, "modifier\t%s\t%s\n", def.ID, def.Name)
			}
			for _, id := range reg.ClassIDs() {
				def, _ := reg.ClassDefinition(id)
				fmt.Fprintf(w, "class\t%s\t%s\n", def.ID, def.Name)
			}
			return w.Flush()
		},
	}
}
