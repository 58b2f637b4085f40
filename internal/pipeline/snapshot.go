package pipeline

import (
	"sort"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
)

// LatestSnapshots reduces the inventory observations to one snapshot per
// product: the row with the greatest date, the later input row winning ties.
//
// The result is ordered by each winning row's position in the date-sorted
// table, so snapshots come out by ascending AsOf and, for equal dates, in
// input order.
func LatestSnapshots(observations []domain.InventoryObservation) []domain.LatestSnapshot {
	if len(observations) == 0 {
		return []domain.LatestSnapshot{}
	}

	sorted := make([]domain.InventoryObservation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	last := make(map[string]int, len(sorted))
	for i, obs := range sorted {
		last[obs.Product] = i
	}

	snapshots := make([]domain.LatestSnapshot, 0, len(last))
	for i, obs := range sorted {
		if last[obs.Product] != i {
			continue
		}
		snapshots = append(snapshots, domain.LatestSnapshot{
			Product:        obs.Product,
			UnitsOnHand:    obs.UnitsOnHand,
			InventoryValue: obs.InventoryValue,
			AsOf:           obs.Date,
		})
	}

	return snapshots
}
