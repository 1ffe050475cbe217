package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/shipforge/internal/domain/component"
	"github.com/andrescamacho/shipforge/internal/domain/vehicle"
)

// GormDesignRepository implements DesignRepository using GORM
type GormDesignRepository struct {
	db   *gorm.DB
	defs vehicle.DefinitionSource
}

// NewGormDesignRepository creates a new GORM design repository
func NewGormDesignRepository(db *gorm.DB, defs vehicle.DefinitionSource) *GormDesignRepository {
	return &GormDesignRepository{db: db, defs: defs}
}

// Save persists a ship design, replacing any previous slot rows
func (r *GormDesignRepository) Save(ctx context.Context, ship *vehicle.Ship) error {
	snap := ship.Snapshot()

	slots := make([]DesignSlotModel, 0, len(snap.Slots))
	for i, slot := range snap.Slots {
		modifiers, err := json.Marshal(slot.Component.Modifiers)
		if err != nil {
			return fmt.Errorf("failed to marshal modifiers: %w", err)
		}
		slots = append(slots, DesignSlotModel{
			DesignID:              snap.ID,
			Position:              i,
			Layer:                 slot.Layer,
			ComponentDefinitionID: slot.Component.ComponentDefinitionID,
			Modifiers:             string(modifiers),
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		model := DesignModel{
			ID:        snap.ID,
			Name:      snap.Name,
			ClassID:   snap.Class,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Save(&model).Error; err != nil {
			return fmt.Errorf("failed to save design: %w", err)
		}
		if err := tx.Where("design_id = ?", snap.ID).Delete(&DesignSlotModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear design slots: %w", err)
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return fmt.Errorf("failed to save design slots: %w", err)
			}
		}
		return nil
	})
}

// FindByID loads a design and rebuilds the ship from current definitions
func (r *GormDesignRepository) FindByID(ctx context.Context, id string) (*vehicle.Ship, error) {
	var model DesignModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("design not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find design: %w", result.Error)
	}

	var slots []DesignSlotModel
	result = r.db.WithContext(ctx).Where("design_id = ?", id).Order("position").Find(&slots)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load design slots: %w", result.Error)
	}

	snap, err := r.modelToSnapshot(&model, slots)
	if err != nil {
		return nil, err
	}

	ship, err := vehicle.FromSnapshot(snap, r.defs)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild design %s: %w", id, err)
	}
	return ship, nil
}

// List retrieves all stored design headers without rebuilding ships
func (r *GormDesignRepository) List(ctx context.Context) ([]DesignModel, error) {
	var models []DesignModel
	result := r.db.WithContext(ctx).Order("name").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list designs: %w", result.Error)
	}
	return models, nil
}

// Delete removes a design and its slot rows
func (r *GormDesignRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("design_id = ?", id).Delete(&DesignSlotModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete design slots: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&DesignModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete design: %w", err)
		}
		return nil
	})
}

func (r *GormDesignRepository) modelToSnapshot(model *DesignModel, slots []DesignSlotModel) (vehicle.Snapshot, error) {
	snap := vehicle.Snapshot{
		ID:    model.ID,
		Name:  model.Name,
		Class: model.ClassID,
	}
	for _, slot := range slots {
		var modifiers []component.ModifierSnapshot
		if slot.Modifiers != "" {
			if err := json.Unmarshal([]byte(slot.Modifiers), &modifiers); err != nil {
				return vehicle.Snapshot{}, fmt.Errorf("corrupt modifier data in slot %d of design %s: %w", slot.Position, model.ID, err)
			}
		}
		snap.Slots = append(snap.Slots, vehicle.SlotSnapshot{
			Layer: slot.Layer,
			Component: component.Snapshot{
				ComponentDefinitionID: slot.ComponentDefinitionID,
				Modifiers:             modifiers,
			},
		})
	}
	return snap, nil
}
