package pipeline

import "github.com/anapaulaelz/final-practicum-project/internal/domain"

// Classifier labels stock levels against inclusive thresholds.
type Classifier struct {
	thresholds domain.Thresholds
}

// NewClassifier creates a classifier for the given thresholds.
func NewClassifier(thresholds domain.Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Status returns CRITICAL at or below the critical threshold, LOW at or below
// the low threshold and NORMAL otherwise.
func (c *Classifier) Status(stock int) domain.StockStatus {
	switch {
	case stock <= c.thresholds.Critical:
		return domain.StatusCritical
	case stock <= c.thresholds.Low:
		return domain.StatusLow
	default:
		return domain.StatusNormal
	}
}

func (c *Classifier) Classify(s domain.LatestSnapshot) domain.ClassifiedStock {
	return domain.ClassifiedStock{
		Product:      s.Product,
		CurrentStock: s.UnitsOnHand,
		Status:       c.Status(s.UnitsOnHand),
	}
}

// ClassifyAll classifies every snapshot, keeping snapshot order.
func (c *Classifier) ClassifyAll(snapshots []domain.LatestSnapshot) []domain.ClassifiedStock {
	out := make([]domain.ClassifiedStock, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, c.Classify(s))
	}
	return out
}
