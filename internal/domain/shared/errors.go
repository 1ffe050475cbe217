package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Formula errors

// FormulaError reports a formula that could not be evaluated. The affected
// field keeps its pre-formula default; recalculation never aborts on one.
type FormulaError struct {
	*DomainError
	Expression string
	Reason     string
}

func NewFormulaError(expression, reason string) *FormulaError {
	return &FormulaError{
		DomainError: &DomainError{Message: fmt.Sprintf("formula %q: %s", expression, reason)},
		Expression:  expression,
		Reason:      reason,
	}
}

// Modifier errors

type ModifierError struct {
	*DomainError
}

func NewModifierError(message string) *ModifierError {
	return &ModifierError{DomainError: &DomainError{Message: message}}
}

// IneligibleModifierError is returned by AttachModifier when the modifier's
// restriction rejects the component. No component state is mutated.
type IneligibleModifierError struct {
	*ModifierError
	ModifierID  string
	ComponentID string
}

func NewIneligibleModifierError(modifierID, componentID string) *IneligibleModifierError {
	return &IneligibleModifierError{
		ModifierError: NewModifierError(
			fmt.Sprintf("modifier %s is not eligible for component %s", modifierID, componentID)),
		ModifierID:  modifierID,
		ComponentID: componentID,
	}
}

// OutOfRangeError is returned by SetModifierValue when the requested value
// falls outside the definition's [min,max]. The current value is unchanged.
type OutOfRangeError struct {
	*ModifierError
	ModifierID string
	Value      float64
	Min        float64
	Max        float64
}

func NewOutOfRangeError(modifierID string, value, min, max float64) *OutOfRangeError {
	return &OutOfRangeError{
		ModifierError: NewModifierError(
			fmt.Sprintf("modifier %s value %g outside range [%g, %g]", modifierID, value, min, max)),
		ModifierID: modifierID,
		Value:      value,
		Min:        min,
		Max:        max,
	}
}

// MandatoryModifierError is returned when detaching a modifier that the
// component's layer placement still requires.
type MandatoryModifierError struct {
	*ModifierError
	ModifierID string
}

func NewMandatoryModifierError(modifierID string) *MandatoryModifierError {
	return &MandatoryModifierError{
		ModifierError: NewModifierError(
			fmt.Sprintf("modifier %s is mandatory and cannot be detached", modifierID)),
		ModifierID: modifierID,
	}
}

// Registry errors

// UnknownDefinitionError is a hard failure: a runtime object references a
// definition id the registry does not hold. Never masked or defaulted.
type UnknownDefinitionError struct {
	*DomainError
	Kind string
	ID   string
}

func NewUnknownDefinitionError(kind, id string) *UnknownDefinitionError {
	return &UnknownDefinitionError{
		DomainError: &DomainError{Message: fmt.Sprintf("unknown %s definition: %s", kind, id)},
		Kind:        kind,
		ID:          id,
	}
}

// RegistryFrozenError is returned by every mutating registry call after Freeze.
type RegistryFrozenError struct {
	*DomainError
}

func NewRegistryFrozenError() *RegistryFrozenError {
	return &RegistryFrozenError{DomainError: &DomainError{Message: "registry is frozen"}}
}

// Vehicle errors

type VehicleError struct {
	*DomainError
}

func NewVehicleError(message string) *VehicleError {
	return &VehicleError{DomainError: &DomainError{Message: message}}
}

// LayerFullError is returned when adding a component to a layer whose slot
// capacity is exhausted.
type LayerFullError struct {
	*VehicleError
	Layer string
	Slots int
}

func NewLayerFullError(layer string, slots int) *LayerFullError {
	return &LayerFullError{
		VehicleError: NewVehicleError(fmt.Sprintf("layer %s is full (%d slots)", layer, slots)),
		Layer:        layer,
		Slots:        slots,
	}
}

// UnknownLayerError is returned when a placement names a layer the vehicle
// class does not define.
type UnknownLayerError struct {
	*VehicleError
	Layer string
}

func NewUnknownLayerError(layer string) *UnknownLayerError {
	return &UnknownLayerError{
		VehicleError: NewVehicleError(fmt.Sprintf("vehicle class has no layer %s", layer)),
		Layer:        layer,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
