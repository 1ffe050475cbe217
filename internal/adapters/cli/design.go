package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/shipforge/internal/adapters/persistence"
	"github.com/andrescamacho/shipforge/internal/domain/registry"
	"github.com/andrescamacho/shipforge/internal/domain/vehicle"
	"github.com/andrescamacho/shipforge/internal/infrastructure/config"
	"github.com/andrescamacho/shipforge/internal/infrastructure/database"
)

// NewDesignCommand creates the design command with subcommands
func NewDesignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Manage ship designs",
		Long: `Manage stored ship designs.

A design is a class plus components placed in layers, with optional modifier
values per component. Derived stats are recomputed from the current
definitions every time a design is loaded.

Examples:
  shipforge design build --file designs/frigate.yaml
  shipforge design list
  shipforge design show <design-id>
  shipforge design stats <design-id>
  shipforge design delete <design-id>`,
	}

	cmd.AddCommand(newDesignBuildCommand())
	cmd.AddCommand(newDesignListCommand())
	cmd.AddCommand(newDesignShowCommand())
	cmd.AddCommand(newDesignStatsCommand())
	cmd.AddCommand(newDesignDeleteCommand())

	return cmd
}

// designFile is the YAML layout accepted by `design build`
type designFile struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
	Slots []struct {
		Layer     string             `yaml:"layer"`
		Component string             `yaml:"component"`
		Modifiers map[string]float64 `yaml:"modifiers"`
	} `yaml:"slots"`
}

// newDesignBuildCommand creates the design build subcommand
func newDesignBuildCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a ship design from a YAML file and store it",
		Long: `Build a ship design from a YAML file, validate it against the loaded
definitions, and store it.

The file lists the class, a name, and the components to place:

  name: Resolute
  class: frigate
  slots:
    - layer: hull
      component: fusion_drive
      modifiers:
        overdrive: 2
    - layer: systems
      component: bridge

Example:
  shipforge design build --file designs/frigate.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file flag is required")
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			reg, err := openRegistry(cfg)
			if err != nil {
				return err
			}

			ship, err := buildDesign(reg, file)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			repo := persistence.NewGormDesignRepository(db, reg)
			if err := repo.Save(context.Background(), ship); err != nil {
				return fmt.Errorf("failed to save design: %w", err)
			}

			fmt.Println("✓ Design saved")
			fmt.Printf("  ID:    %s\n", ship.ID())
			fmt.Printf("  Name:  %s\n", ship.Name())
			fmt.Printf("  Class: %s\n", ship.Class().ID)
			if missing := ship.MissingRequiredAbilities(); len(missing) > 0 {
				fmt.Printf("  Warning: missing required abilities: %v\n", missing)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Design YAML file (required)")

	return cmd
}

// buildDesign reads a design file and assembles the ship against the registry
func buildDesign(reg *registry.Registry, path string) (*vehicle.Ship, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design file: %w", err)
	}

	var df designFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse design file: %w", err)
	}

	class, err := reg.ClassDefinition(df.Class)
	if err != nil {
		return nil, err
	}

	ship, err := vehicle.NewShip(df.Name, class)
	if err != nil {
		return nil, err
	}

	for i, slot := range df.Slots {
		def, err := reg.ComponentDefinition(slot.Component)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		comp, err := ship.AddComponent(slot.Layer, def, reg)
		if err != nil {
			return nil, fmt.Errorf("slot %d (%s): %w", i, slot.Component, err)
		}
		for id, value := range slot.Modifiers {
			if _, ok := comp.ModifierInstance(id); !ok {
				modDef, err := reg.ModifierDefinition(id)
				if err != nil {
					return nil, fmt.Errorf("slot %d (%s): %w", i, slot.Component, err)
				}
				if err := comp.AttachModifier(modDef, &value); err != nil {
					return nil, fmt.Errorf("slot %d (%s): %w", i, slot.Component, err)
				}
				continue
			}
			if err := comp.SetModifierValue(id, value); err != nil {
				return nil, fmt.Errorf("slot %d (%s): %w", i, slot.Component, err)
			}
		}
	}

	ship.RecalculateAll()
	return ship, nil
}

// newDesignListCommand creates the design list subcommand
func newDesignListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored designs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			reg, err := openRegistry(cfg)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			repo := persistence.NewGormDesignRepository(db, reg)
			designs, err := repo.List(context.Background())
			if err != nil {
				return err
			}

			if len(designs) == 0 {
				fmt.Println("No designs stored")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCLASS\tUPDATED")
			for _, d := range designs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					d.ID, d.Name, d.ClassID, d.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

// newDesignShowCommand creates the design show subcommand
func newDesignShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <design-id>",
		Short: "Show a design's components and their resolved attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ship, cleanup, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Printf("%s (%s)\n", ship.Name(), ship.Class().Name)
			for _, p := range ship.Placements() {
				c := p.Component
				fmt.Printf("\n[%s] %s (%s)\n", p.Layer, c.Definition().Name, c.Status())
				for _, row := range c.SummaryRows() {
					fmt.Printf("  %-24s %s\n", row.Label, row.Value)
				}
			}
			if missing := ship.MissingRequiredAbilities(); len(missing) > 0 {
				fmt.Printf("\nMissing required abilities: %v\n", missing)
			}
			return nil
		},
	}
}

// newDesignStatsCommand creates the design stats subcommand
func newDesignStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <design-id>",
		Short: "Show a design's aggregated ship stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ship, cleanup, err := loadDesign(args[0])
			if err != nil {
				return err
			}
			defer cleanup()

			stats := vehicle.ComputeStats(ship)
			printStats(ship, stats)
			return nil
		},
	}
}

func printStats(ship *vehicle.Ship, stats vehicle.ShipStats) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Design\t%s (%s)\n", ship.Name(), ship.Class().Name)
	fmt.Fprintf(w, "Total mass\t%g / %g\n", stats.TotalMass, ship.Class().MassBudget)
	fmt.Fprintf(w, "Total cost\t%g\n", stats.TotalCost)
	fmt.Fprintf(w, "Thrust\t%g\n", stats.TotalThrust)
	fmt.Fprintf(w, "Turn rate\t%g\n", stats.TurnRate)
	fmt.Fprintf(w, "Shield capacity\t%g\n", stats.MaxShields)
	fmt.Fprintf(w, "Shield regen\t%g\n", stats.ShieldRegen)
	fmt.Fprintf(w, "Armor pool\t%g\n", stats.ArmorHPPool)
	fmt.Fprintf(w, "Max weapon range\t%g\n", stats.MaxWeaponRange)
	fmt.Fprintf(w, "Crew\t%g required / %g capacity\n", stats.CrewRequired, stats.CrewCapacity)
	fmt.Fprintf(w, "Fighter capacity\t%g\n", stats.FighterCapacity)
	fmt.Fprintf(w, "Command and control\t%t\n", stats.HasCommandAndControl)
	fmt.Fprintf(w, "Understaffed\t%t\n", stats.Understaffed)
	for kind, res := range stats.Resources {
		fmt.Fprintf(w, "%s\t%g stored / %g capacity (+%g/-%g per tick)\n",
			kind, res.Stored, res.StorageCapacity, res.Generation, res.Consumption)
	}
	w.Flush()
}

// newDesignDeleteCommand creates the design delete subcommand
func newDesignDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <design-id>",
		Short: "Delete a stored design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			reg, err := openRegistry(cfg)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			repo := persistence.NewGormDesignRepository(db, reg)
			if err := repo.Delete(context.Background(), args[0]); err != nil {
				return err
			}

			fmt.Println("✓ Design deleted")
			return nil
		},
	}
}

// loadDesign loads config, registry, database and the named design
func loadDesign(id string) (*vehicle.Ship, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	repo := persistence.NewGormDesignRepository(db, reg)
	ship, err := repo.FindByID(context.Background(), id)
	if err != nil {
		database.Close(db)
		return nil, nil, err
	}

	return ship, func() { database.Close(db) }, nil
}
