package enums

// Category classifies an inventory item. The set is open: the two known
// values drive flavor handling, anything else is carried as free text.
type Category string

const (
	CategoryJuiceOrPod Category = "JuiceOrPod"
	CategoryDevice     Category = "Device"
)

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// IsKnown reports whether the value is one of the recognized categories.
func (c Category) IsKnown() bool {
	return c == CategoryJuiceOrPod || c == CategoryDevice
}

// RequiresFlavor reports whether items in this category are sold per flavor.
func (c Category) RequiresFlavor() bool {
	return c == CategoryJuiceOrPod
}
