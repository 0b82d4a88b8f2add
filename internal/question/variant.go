package question

import "fmt"

// Variant names.
const (
	VariantBasic = "basic"
	VariantFull  = "full"
)

// DefaultBasicCutoff is the last palanca of the basic curriculum.
const DefaultBasicCutoff = 18

// Variant selects which questions a session draws from.
type Variant struct {
	Name     string              `json:"name"`
	Label    string              `json:"label"`
	Eligible func(Question) bool `json:"-"`
}

// Variants is an ordered menu of variants.
type Variants []Variant

// DefaultVariants returns the basic (id <= cutoff) and full variants.
func DefaultVariants(cutoff int) Variants {
	return Variants{
		{
			Name:     VariantBasic,
			Label:    fmt.Sprintf("Palancas 1-%d", cutoff),
			Eligible: func(q Question) bool { return q.ID <= cutoff },
		},
		{
			Name:     VariantFull,
			Label:    "Todas las palancas",
			Eligible: func(Question) bool { return true },
		},
	}
}

// Lookup finds a variant by name. An unknown name yields a variant that
// matches nothing, so callers get an empty eligible set instead of a panic.
func (vs Variants) Lookup(name string) (Variant, bool) {
	for _, v := range vs {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{Name: name, Eligible: func(Question) bool { return false }}, false
}

// Names lists variant names in menu order.
func (vs Variants) Names() []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	return names
}
