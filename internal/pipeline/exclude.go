package pipeline

import (
	"strings"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
)

// ExcludeProducts drops inventory and sales rows for the named products.
// Names are compared after trimming, case-sensitively.
func ExcludeProducts(inventory []domain.InventoryObservation, sales []domain.SalesRecord, names []string) ([]domain.InventoryObservation, []domain.SalesRecord) {
	if len(names) == 0 {
		return inventory, sales
	}

	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[strings.TrimSpace(n)] = struct{}{}
	}

	keptInv := make([]domain.InventoryObservation, 0, len(inventory))
	for _, obs := range inventory {
		if _, ok := skip[strings.TrimSpace(obs.Product)]; !ok {
			keptInv = append(keptInv, obs)
		}
	}

	keptSales := make([]domain.SalesRecord, 0, len(sales))
	for _, rec := range sales {
		if _, ok := skip[strings.TrimSpace(rec.Product)]; !ok {
			keptSales = append(keptSales, rec)
		}
	}

	return keptInv, keptSales
}
