package ordering

// Fractional position keys keep tasks ordered within a column without
// renumbering siblings on every insert or drag.

const (
	// BasePosition is the key assigned to the first task in an empty column.
	BasePosition = 1.0

	// Epsilon is the minimum usable gap between two neighboring keys.
	// When the gap between neighbors collapses below it, Allocate steps
	// past the predecessor instead of returning a colliding midpoint.
	Epsilon = 1e-9
)

// Allocate computes an ordering key for an item inserted between prev and
// next. Either neighbor may be nil (nil prev = inserting at the head, nil
// next = appending at the tail). It always returns a usable key: after many
// same-spot inserts the midpoint can stop being strictly between the
// neighbors, in which case the result degrades to prev + Epsilon so the
// insert still makes forward progress rather than colliding.
func Allocate(prev, next *float64) float64 {
	switch {
	case prev == nil && next == nil:
		return BasePosition
	case next == nil:
		return *prev + 1
	case prev == nil:
		return *next - 1
	}

	mid := (*prev + *next) / 2
	if mid <= *prev || mid >= *next || *next-*prev < Epsilon {
		return *prev + Epsilon
	}
	return mid
}
