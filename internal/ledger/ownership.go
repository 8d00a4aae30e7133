package ledger

// AllEntities is the special viewing entity for the aggregate view. It bypasses
// ownership splits entirely so overlapping splits are never double counted.
const AllEntities = "All"

// Unassigned is the display owner for records whose owning entity was deleted.
const Unassigned = "Unassigned"

// Ownership is the name-keyed ownership snapshot of one asset or liability.
// Split maps entity name to a percentage. Split values are deliberately not
// validated or normalized: sums over or under 100 pass through unchanged.
type Ownership struct {
	OwnerEntity string
	Split       map[string]float64
}

// ResolveShare returns the fraction of a record attributable to the viewing
// entity:
//
//  1. "All" always resolves to 1, regardless of splits.
//  2. A non-empty split resolves to split[viewing]/100 (0 when absent). Values
//     are not clamped; entries above 100 or below 0 pass through.
//  3. Otherwise sole ownership: 1 when OwnerEntity matches, else 0.
func ResolveShare(o Ownership, viewing string) float64 {
	if viewing == AllEntities {
		return 1
	}
	if len(o.Split) > 0 {
		return o.Split[viewing] / 100
	}
	owner := o.OwnerEntity
	if owner == "" {
		owner = Unassigned
	}
	if owner == viewing {
		return 1
	}
	return 0
}
