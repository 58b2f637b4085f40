package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/anapaulaelz/final-practicum-project/internal/pipeline"
)

// BuildDashboard shapes a run result into the dashboard document, applying
// the display rounding of each field.
func BuildDashboard(res *pipeline.Result, lastUpdated time.Time) *domain.DashboardDocument {
	doc := &domain.DashboardDocument{
		LastUpdated: lastUpdated,
		Metrics: domain.DashboardMetrics{
			TotalProducts:      res.Metrics.TotalProducts,
			TotalStockUnits:    res.Metrics.TotalStockUnits,
			CriticalStockItems: res.Metrics.CriticalCount,
			ReorderAlerts:      res.Metrics.ReorderCount,
			ActiveSuppliers:    res.Metrics.ActiveSuppliers,
			AvgStockPerProduct: roundFloat(res.Metrics.AvgStockPerProduct, 1),
		},
		CriticalStockDetails: stockDetails(res.Critical),
		LowStockDetails:      stockDetails(res.Low),
		ReorderDetails:       make([]domain.ReorderDetail, 0, len(res.Reorders)),
		PartnerDetails:       res.Partners,
	}
	if doc.PartnerDetails == nil {
		doc.PartnerDetails = []domain.PartnerRecord{}
	}

	for _, r := range res.Reorders {
		doc.ReorderDetails = append(doc.ReorderDetails, domain.ReorderDetail{
			Product:          r.Product,
			CurrentStock:     r.CurrentStock,
			DailyDemand:      roundFloat(r.DailyDemand, 2),
			RecommendedStock: roundFloat(r.RecommendedStock, 1),
			ReorderQty:       r.ReorderQty,
			Priority:         r.Priority,
		})
	}

	return doc
}

func stockDetails(items []domain.ClassifiedStock) []domain.StockDetail {
	out := make([]domain.StockDetail, 0, len(items))
	for _, c := range items {
		out = append(out, domain.StockDetail{
			Product:      c.Product,
			CurrentStock: c.CurrentStock,
			Status:       c.Status,
		})
	}
	return out
}

// EncodeDashboard writes doc as indented JSON, leaving non-ASCII and HTML
// characters unescaped.
func EncodeDashboard(w io.Writer, doc *domain.DashboardDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	return nil
}

// MarshalDashboard returns the encoded document.
func MarshalDashboard(doc *domain.DashboardDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeDashboard(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDashboardFile writes the document to path through a temporary file in
// the same directory, so readers never see a partial document.
func WriteDashboardFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write dashboard: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move dashboard into place: %w", err)
	}
	return nil
}
