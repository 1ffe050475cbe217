package cli

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/shipforge/internal/domain/registry"
	"github.com/andrescamacho/shipforge/internal/infrastructure/config"
	"github.com/andrescamacho/shipforge/internal/infrastructure/database"
)

// openRegistry loads the configured definition files into a frozen registry
func openRegistry(cfg *config.Config) (*registry.Registry, error) {
	reg := registry.New()
	if err := registry.Load(reg, cfg.Definitions.Path); err != nil {
		return nil, fmt.Errorf("failed to load definitions from %s: %w", cfg.Definitions.Path, err)
	}
	reg.Freeze()
	return reg, nil
}

// openDatabase loads config, connects and migrates
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}
