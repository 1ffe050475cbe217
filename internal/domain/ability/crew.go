package ability

import "github.com/andrescamacho/shipforge/internal/domain/shared"

// CrewCapacity provides berths for crew
type CrewCapacity struct {
	baseCapacity float64
	capacity     float64
}

func newCrewCapacity(def Definition) *CrewCapacity {
	base := def.Field("capacity", 0)
	return &CrewCapacity{baseCapacity: base, capacity: base}
}

func (a *CrewCapacity) Kind() Kind {
	return KindCrewCapacity
}

func (a *CrewCapacity) Capacity() float64 {
	return a.capacity
}

func (a *CrewCapacity) Recalculate(m Multipliers) {
	a.capacity = a.baseCapacity * m.Get("capacity_mult")
}

func (a *CrewCapacity) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Crew Capacity", a.capacity)}
}

// LifeSupportCapacity sustains crew; must cover the ship's required crew
type LifeSupportCapacity struct {
	baseCapacity float64
	capacity     float64
}

func newLifeSupportCapacity(def Definition) *LifeSupportCapacity {
	base := def.Field("capacity", 0)
	return &LifeSupportCapacity{baseCapacity: base, capacity: base}
}

func (a *LifeSupportCapacity) Kind() Kind {
	return KindLifeSupportCapacity
}

func (a *LifeSupportCapacity) Capacity() float64 {
	return a.capacity
}

func (a *LifeSupportCapacity) Recalculate(m Multipliers) {
	a.capacity = a.baseCapacity * m.Get("capacity_mult")
}

func (a *LifeSupportCapacity) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Life Support", a.capacity)}
}

// CrewRequired is the crew a component needs to operate
type CrewRequired struct {
	baseCrew float64
	crew     float64
}

func newCrewRequired(def Definition) *CrewRequired {
	base := def.Field("crew", 0)
	return &CrewRequired{baseCrew: base, crew: base}
}

func (a *CrewRequired) Kind() Kind {
	return KindCrewRequired
}

func (a *CrewRequired) Crew() float64 {
	return a.crew
}

func (a *CrewRequired) Recalculate(m Multipliers) {
	a.crew = a.baseCrew
}

func (a *CrewRequired) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Crew Required", a.crew)}
}

// CommandAndControl marks a component as a command center. At least one
// operational instance must exist somewhere on the ship for combat abilities
// to contribute.
type CommandAndControl struct {
	baseRating float64
	rating     float64
}

func newCommandAndControl(def Definition) *CommandAndControl {
	base := def.Field("rating", 1)
	return &CommandAndControl{baseRating: base, rating: base}
}

func (a *CommandAndControl) Kind() Kind {
	return KindCommandAndControl
}

func (a *CommandAndControl) Rating() float64 {
	return a.rating
}

func (a *CommandAndControl) Recalculate(m Multipliers) {
	a.rating = a.baseRating
}

func (a *CommandAndControl) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Command Rating", a.rating)}
}

// VehicleLaunch provides hangar capacity for embarked craft
type VehicleLaunch struct {
	baseCapacity float64
	capacity     float64
}

func newVehicleLaunch(def Definition) *VehicleLaunch {
	base := def.Field("capacity", 0)
	return &VehicleLaunch{baseCapacity: base, capacity: base}
}

func (a *VehicleLaunch) Kind() Kind {
	return KindVehicleLaunch
}

func (a *VehicleLaunch) Capacity() float64 {
	return a.capacity
}

func (a *VehicleLaunch) Recalculate(m Multipliers) {
	a.capacity = a.baseCapacity * m.Get("capacity_mult")
}

func (a *VehicleLaunch) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{shared.NewSummaryRow("Hangar Capacity", a.capacity)}
}
