package pipeline

import (
	"sort"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
)

// TypeCount is the number of partners of one type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// PartnerSummary describes the partner table.
type PartnerSummary struct {
	Total  int         `json:"total"`
	ByType []TypeCount `json:"by_type"`
}

// AnalyzePartners counts partners overall and per type, most common type
// first. Rows without a type are only counted in the total.
func AnalyzePartners(partners []domain.PartnerRecord) PartnerSummary {
	summary := PartnerSummary{Total: len(partners), ByType: []TypeCount{}}

	counts := make(map[string]int)
	for _, p := range partners {
		if typ, ok := p.Type(); ok {
			counts[typ]++
		}
	}

	for typ, n := range counts {
		summary.ByType = append(summary.ByType, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(summary.ByType, func(i, j int) bool {
		a, b := summary.ByType[i], summary.ByType[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Type < b.Type
	})

	return summary
}
