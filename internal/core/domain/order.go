package domain

// EntityKind names a reorderable record type. The admin reorder flow
// runs the same algorithm for each kind, only the backing table and
// order column differ.
type EntityKind string

const (
	KindAd      EntityKind = "ad"
	KindTrailer EntityKind = "trailer"
	KindMovie   EntityKind = "movie"
)

// ParseEntityKind validates a request value. The boolean is false for
// unknown kinds.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch EntityKind(s) {
	case KindAd, KindTrailer, KindMovie:
		return EntityKind(s), true
	default:
		return "", false
	}
}

// OrderItem is one (record, new position) pair from an admin
// reordering request.
type OrderItem struct {
	ID       int64
	Position int
}
