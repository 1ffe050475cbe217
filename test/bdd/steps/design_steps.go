package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/shipforge/internal/adapters/persistence"
	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/registry"
	"github.com/andrescamacho/shipforge/internal/domain/shared"
	"github.com/andrescamacho/shipforge/internal/domain/vehicle"
	"github.com/andrescamacho/shipforge/internal/infrastructure/database"
	"github.com/andrescamacho/shipforge/test/helpers"
)

type designContext struct {
	reg           *registry.Registry
	ship          *vehicle.Ship
	lastComponent *component.Component
	lastErr       error
	stats         vehicle.ShipStats
	savedStats    vehicle.ShipStats
}

func (dc *designContext) reset() {
	dc.reg = nil
	dc.ship = nil
	dc.lastComponent = nil
	dc.lastErr = nil
	dc.stats = vehicle.ShipStats{}
	dc.savedStats = vehicle.ShipStats{}
}

func (dc *designContext) theStandardDefinitionCatalog() error {
	reg, err := helpers.LoadFixtureRegistry()
	if err != nil {
		return err
	}
	dc.reg = reg
	return nil
}

func (dc *designContext) aNewDesignOfClass(classID string) error {
	class, err := dc.reg.ClassDefinition(classID)
	if err != nil {
		return err
	}
	ship, err := vehicle.NewShip("test design", class)
	if err != nil {
		return err
	}
	dc.ship = ship
	return nil
}

func (dc *designContext) iPlaceAInTheLayer(componentID, layer string) error {
	def, err := dc.reg.ComponentDefinition(componentID)
	if err != nil {
		return err
	}
	comp, err := dc.ship.AddComponent(layer, def, dc.reg)
	if err != nil {
		return err
	}
	dc.lastComponent = comp
	return nil
}

func (dc *designContext) iAttachTheModifierWithValue(modifierID string, value float64) error {
	def, err := dc.reg.ModifierDefinition(modifierID)
	if err != nil {
		return err
	}
	if err := dc.lastComponent.AttachModifier(def, &value); err != nil {
		return err
	}
	return nil
}

func (dc *designContext) iAttemptToAttachTheModifier(modifierID string) error {
	def, err := dc.reg.ModifierDefinition(modifierID)
	if err != nil {
		return err
	}
	dc.lastErr = dc.lastComponent.AttachModifier(def, nil)
	return nil
}

func (dc *designContext) theComponentIsDestroyed(componentID string) error {
	for _, comp := range dc.ship.Components() {
		if comp.DefinitionID() == componentID {
			comp.TakeDamage(comp.MaxHitPoints())
			return nil
		}
	}
	return fmt.Errorf("no %s component placed", componentID)
}

func (dc *designContext) theDesignIsRecalculated() error {
	dc.stats = dc.ship.RecalculateAll()
	return nil
}

func (dc *designContext) theDesignIsSavedAndReloaded() error {
	dc.savedStats = dc.ship.RecalculateAll()

	db, err := database.NewTestConnection()
	if err != nil {
		return err
	}
	defer database.Close(db)

	repo := persistence.NewGormDesignRepository(db, dc.reg)
	ctx := context.Background()
	if err := repo.Save(ctx, dc.ship); err != nil {
		return err
	}
	loaded, err := repo.FindByID(ctx, dc.ship.ID())
	if err != nil {
		return err
	}

	dc.ship = loaded
	dc.stats = vehicle.ComputeStats(loaded)
	return nil
}

func (dc *designContext) theTotalThrustShouldBe(want float64) error {
	return assertFloat("total thrust", want, dc.stats.TotalThrust)
}

func (dc *designContext) theTotalMassShouldBe(want float64) error {
	return assertFloat("total mass", want, dc.stats.TotalMass)
}

func (dc *designContext) theMaxWeaponRangeShouldBe(want float64) error {
	return assertFloat("max weapon range", want, dc.stats.MaxWeaponRange)
}

func (dc *designContext) theAttachmentShouldFailAsIneligible() error {
	var ineligible *shared.IneligibleModifierError
	if !errors.As(dc.lastErr, &ineligible) {
		return fmt.Errorf("expected ineligible modifier error, got %v", dc.lastErr)
	}
	return nil
}

func (dc *designContext) theReloadedStatsShouldMatchTheSavedStats() error {
	if !reflect.DeepEqual(dc.stats, dc.savedStats) {
		return fmt.Errorf("stats changed across reload:\nsaved:    %+v\nreloaded: %+v", dc.savedStats, dc.stats)
	}
	return nil
}

func assertFloat(label string, want, got float64) error {
	if math.Abs(want-got) > 1e-9 {
		return fmt.Errorf("expected %s %g, got %g", label, want, got)
	}
	return nil
}

// InitializeDesignScenario registers the design assembly step definitions
func InitializeDesignScenario(sc *godog.ScenarioContext) {
	dc := &designContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		dc.reset()
		return ctx, nil
	})

	sc.Step(`^the standard definition catalog$`, dc.theStandardDefinitionCatalog)
	sc.Step(`^a new design of class "([^"]*)"$`, dc.aNewDesignOfClass)
	sc.Step(`^I place a "([^"]*)" in the "([^"]*)" layer$`, dc.iPlaceAInTheLayer)
	sc.Step(`^I attach the "([^"]*)" modifier with value (-?\d+(?:\.\d+)?)$`, dc.iAttachTheModifierWithValue)
	sc.Step(`^I attempt to attach the "([^"]*)" modifier$`, dc.iAttemptToAttachTheModifier)
	sc.Step(`^the "([^"]*)" component is destroyed$`, dc.theComponentIsDestroyed)
	sc.Step(`^the design is recalculated$`, dc.theDesignIsRecalculated)
	sc.Step(`^the design is saved and reloaded$`, dc.theDesignIsSavedAndReloaded)
	sc.Step(`^the total thrust should be (-?\d+(?:\.\d+)?)$`, dc.theTotalThrustShouldBe)
	sc.Step(`^the total mass should be (-?\d+(?:\.\d+)?)$`, dc.theTotalMassShouldBe)
	sc.Step(`^the max weapon range should be (-?\d+(?:\.\d+)?)$`, dc.theMaxWeaponRangeShouldBe)
	sc.Step(`^the attachment should fail as ineligible$`, dc.theAttachmentShouldFailAsIneligible)
	sc.Step(`^the reloaded stats should match the saved stats$`, dc.theReloadedStatsShouldMatchTheSavedStats)
}
