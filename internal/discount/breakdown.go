package discount

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Breakdown is an ordered mapping from a discount label to its monetary
// amount. Insertion order is application order; setting an existing label
// overwrites its amount but keeps its original position, so callers that
// want two same-type discounts to both show must give them distinct
// labels.
type Breakdown struct {
	labels  []string
	amounts map[string]decimal.Decimal
}

// NewBreakdown returns an empty breakdown.
func NewBreakdown() *Breakdown {
	return &Breakdown{amounts: make(map[string]decimal.Decimal)}
}

// Set records the amount for a label, preserving first-insertion order.
func (b *Breakdown) Set(label string, amount decimal.Decimal) {
	if _, ok := b.amounts[label]; !ok {
		b.labels = append(b.labels, label)
	}
	b.amounts[label] = amount
}

// Get returns the amount for a label and whether the label is present.
func (b *Breakdown) Get(label string) (decimal.Decimal, bool) {
	amount, ok := b.amounts[label]
	return amount, ok
}

// Labels returns the labels in application order.
func (b *Breakdown) Labels() []string {
	return b.labels
}

// Len returns the number of entries.
func (b *Breakdown) Len() int {
	return len(b.labels)
}

// Total returns the sum of all amounts.
func (b *Breakdown) Total() decimal.Decimal {
	sum := zero
	for _, label := range b.labels {
		sum = sum.Add(b.amounts[label])
	}
	return sum
}

// MarshalJSON encodes the breakdown as a JSON object whose keys appear
// in application order.
func (b *Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range b.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(b.amounts[label])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
