package shared

// ResourceKind identifies a consumable/storable resource type
type ResourceKind string

const (
	ResourceFuel       ResourceKind = "FUEL"
	ResourceEnergy     ResourceKind = "ENERGY"
	ResourceAmmunition ResourceKind = "AMMUNITION"
	ResourceSupplies   ResourceKind = "SUPPLIES"
)

var validResourceKinds = map[ResourceKind]bool{
	ResourceFuel:       true,
	ResourceEnergy:     true,
	ResourceAmmunition: true,
	ResourceSupplies:   true,
}

// IsValid reports whether the resource kind is one of the known kinds
func (k ResourceKind) IsValid() bool {
	return validResourceKinds[k]
}
