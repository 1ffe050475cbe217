package ability

import (
	"fmt"

	"github.com/andrescamacho/shipforge/internal/domain/shared"
)

// ResourceStorage is a tank/bunker for one resource kind. The stored amount
// is carryable runtime state and survives recalculation; the maximum is
// derived and may shrink below the stored amount, in which case the stored
// amount is clamped.
type ResourceStorage struct {
	resource      shared.ResourceKind
	baseMaxAmount float64
	maxAmount     float64
	stored        float64
}

func newResourceStorage(def Definition) *ResourceStorage {
	base := def.Field("max_amount", 0)
	return &ResourceStorage{
		resource:      def.Resource,
		baseMaxAmount: base,
		maxAmount:     base,
	}
}

func (a *ResourceStorage) Kind() Kind {
	return KindResourceStorage
}

func (a *ResourceStorage) Resource() shared.ResourceKind {
	return a.resource
}

func (a *ResourceStorage) MaxAmount() float64 {
	return a.maxAmount
}

func (a *ResourceStorage) Stored() float64 {
	return a.stored
}

// Deposit adds up to amount, returning how much actually fit
func (a *ResourceStorage) Deposit(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	space := a.maxAmount - a.stored
	if amount > space {
		amount = space
	}
	a.stored += amount
	return amount
}

// Withdraw removes up to amount, returning how much was actually available
func (a *ResourceStorage) Withdraw(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if amount > a.stored {
		amount = a.stored
	}
	a.stored -= amount
	return amount
}

func (a *ResourceStorage) Recalculate(m Multipliers) {
	a.maxAmount = a.baseMaxAmount * m.Get("capacity_mult")
	if a.stored > a.maxAmount {
		a.stored = a.maxAmount
	}
}

func (a *ResourceStorage) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{
		shared.NewTextSummaryRow(fmt.Sprintf("%s Storage", a.resource),
			fmt.Sprintf("%g / %g", a.stored, a.maxAmount)),
	}
}

// ResourceGeneration produces a resource at a steady rate
type ResourceGeneration struct {
	resource shared.ResourceKind
	baseRate float64
	rate     float64
}

func newResourceGeneration(def Definition) *ResourceGeneration {
	base := def.Field("rate", 0)
	return &ResourceGeneration{resource: def.Resource, baseRate: base, rate: base}
}

func (a *ResourceGeneration) Kind() Kind {
	return KindResourceGeneration
}

func (a *ResourceGeneration) Resource() shared.ResourceKind {
	return a.resource
}

func (a *ResourceGeneration) Rate() float64 {
	return a.rate
}

func (a *ResourceGeneration) Recalculate(m Multipliers) {
	a.rate = a.baseRate * m.Get("rate_mult")
}

func (a *ResourceGeneration) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{
		shared.NewSummaryRow(fmt.Sprintf("%s Generation", a.resource), a.rate),
	}
}

// ResourceConsumption is a steady draw on a resource
type ResourceConsumption struct {
	resource   shared.ResourceKind
	baseAmount float64
	amount     float64
}

func newResourceConsumption(def Definition) *ResourceConsumption {
	base := def.Field("amount", 0)
	return &ResourceConsumption{resource: def.Resource, baseAmount: base, amount: base}
}

func (a *ResourceConsumption) Kind() Kind {
	return KindResourceConsumption
}

func (a *ResourceConsumption) Resource() shared.ResourceKind {
	return a.resource
}

func (a *ResourceConsumption) Amount() float64 {
	return a.amount
}

func (a *ResourceConsumption) Recalculate(m Multipliers) {
	a.amount = a.baseAmount
}

func (a *ResourceConsumption) SummaryRows() []shared.SummaryRow {
	return []shared.SummaryRow{
		shared.NewSummaryRow(fmt.Sprintf("%s Consumption", a.resource), a.amount),
	}
}
