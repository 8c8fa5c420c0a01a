package objective

import "github.com/google/uuid"

// Diff is the result of reconciling a persisted child collection against an
// incoming form collection.
type Diff struct {
	ToDelete []uuid.UUID
}

// ComputeDiff returns the existing ids that no incoming child claims.
// Incoming children without an id are new rows and never mark anything for
// deletion; incoming children whose id matches nothing existing are left to
// the writer, which falls back to insert rather than failing.
func ComputeDiff(existing []uuid.UUID, incoming []*uuid.UUID) Diff {
	keep := make(map[uuid.UUID]struct{}, len(incoming))
	for _, id := range incoming {
		if id != nil {
			keep[*id] = struct{}{}
		}
	}

	var d Diff
	for _, id := range existing {
		if _, ok := keep[id]; !ok {
			d.ToDelete = append(d.ToDelete, id)
		}
	}
	return d
}
