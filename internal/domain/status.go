package domain

import (
	"fmt"
	"strings"
)

// StockStatus classifies a product's current stock against the thresholds.
type StockStatus string

const (
	StatusCritical StockStatus = "CRITICAL"
	StatusLow      StockStatus = "LOW"
	StatusNormal   StockStatus = "NORMAL"
)

// Priority is the urgency attached to a reorder recommendation.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
)

var stockStatusLabels = map[StockStatus]string{
	StatusCritical: "Critical",
	StatusLow:      "Low",
	StatusNormal:   "Normal",
}

// Label returns a human-readable label for a stock status.
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}

	return "Unknown"
}

// ParseStockStatus returns the status for a given label (case-insensitive).
func ParseStockStatus(label string) (StockStatus, error) {
	status := StockStatus(strings.ToUpper(strings.TrimSpace(label)))
	if _, ok := stockStatusLabels[status]; !ok {
		return "", fmt.Errorf("unknown stock status %q", label)
	}

	return status, nil
}

// NeedsAttention reports whether the status is CRITICAL or LOW.
func (s StockStatus) NeedsAttention() bool {
	return s == StatusCritical || s == StatusLow
}
