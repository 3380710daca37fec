package enum

// ItemStatus marks whether a catalog item is offered at the counter
type ItemStatus string

const (
	ItemStatusActive  ItemStatus = "Active"
	ItemStatusDisable ItemStatus = "Disable"
)

// IsValid reports whether s is a known item status
func (s ItemStatus) IsValid() bool {
	return s == ItemStatusActive || s == ItemStatusDisable
}
