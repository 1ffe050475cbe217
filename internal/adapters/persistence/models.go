package persistence

import (
	"time"
)

// DesignModel represents the ship_designs table
type DesignModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	ClassID   string    `gorm:"column:class_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (DesignModel) TableName() string {
	return "ship_designs"
}

// DesignSlotModel represents the ship_design_slots table. Only definition ids
// and modifier values are stored; resolved attributes are recomputed on load.
type DesignSlotModel struct {
	ID                    int          `gorm:"column:id;primaryKey;autoIncrement"`
	DesignID              string       `gorm:"column:design_id;not null;index"`
	Design                *DesignModel `gorm:"foreignKey:DesignID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Position              int          `gorm:"column:position;not null"`
	Layer                 string       `gorm:"column:layer;not null"`
	ComponentDefinitionID string       `gorm:"column:component_definition_id;not null"`
	Modifiers             string       `gorm:"column:modifiers;type:text"` // JSON array as text
}

func (DesignSlotModel) TableName() string {
	return "ship_design_slots"
}
