package ingest

import (
	"strings"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
)

// Table names used in logs and errors.
const (
	TableInventory = "inventory"
	TableSales     = "sales"
	TablePartners  = "partners"
)

// Logical columns and the headers they are known by in shop exports.
var (
	productColumn = []string{"Nombre del producto", "product", "product_name", "Product"}
	dateColumn    = []string{"Día", "Dia", "date", "day", "Fecha"}
	unitsColumn   = []string{"Unidades de inventario finales", "ending_inventory_units", "units_on_hand", "units"}
	valueColumn   = []string{"Valor final del inventario", "ending_inventory_value", "inventory_value", "value"}
	soldColumn    = []string{"Artículos netos vendidos", "Articulos netos vendidos", "net_items_sold", "net_units_sold"}
)

// columnIndex returns the position of the first header matching one of the
// names, compared case-insensitively after trimming. It returns -1 if none match.
func columnIndex(header []string, names ...string) int {
	if len(names) == 0 {
		return -1
	}
	targets := make(map[string]struct{}, len(names))
	for _, n := range names {
		targets[normalizeHeader(n)] = struct{}{}
	}
	for i, h := range header {
		if _, ok := targets[normalizeHeader(h)]; ok {
			return i
		}
	}
	return -1
}

// requireColumn is columnIndex that fails with a DataFormatError naming the
// canonical header.
func requireColumn(table string, header []string, names ...string) (int, error) {
	idx := columnIndex(header, names...)
	if idx < 0 {
		return -1, &domain.DataFormatError{Table: table, Column: names[0]}
	}
	return idx, nil
}

func normalizeHeader(h string) string {
	// Excel exports often carry a UTF-8 BOM on the first header
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// cell returns the trimmed value at idx, or "" if the record is short.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
