package shared

import "fmt"

// SummaryRow is a label/value pair for presentation. Abilities and components
// expose their stats through rows so presentation code never special-cases a
// variant by name.
type SummaryRow struct {
	Label string
	Value string
}

// NewSummaryRow formats a numeric stat into a row, trimming trailing zeros
func NewSummaryRow(label string, value float64) SummaryRow {
	return SummaryRow{Label: label, Value: fmt.Sprintf("%g", value)}
}

// NewTextSummaryRow builds a row from an already-formatted value
func NewTextSummaryRow(label, value string) SummaryRow {
	return SummaryRow{Label: label, Value: value}
}
