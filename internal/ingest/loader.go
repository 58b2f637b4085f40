package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/rs/zerolog/log"
)

// Paths locates the three exports a run consumes.
type Paths struct {
	Inventory string
	Sales     string
	Partners  string
}

// ResolvePaths joins relative file names onto dataDir.
func ResolvePaths(dataDir, inventory, sales, partners string) Paths {
	join := func(name string) string {
		if name == "" || filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dataDir, name)
	}
	return Paths{
		Inventory: join(inventory),
		Sales:     join(sales),
		Partners:  join(partners),
	}
}

// Match maps a remote export name onto the configured path it feeds. Names
// are compared by stem, case-insensitively, so "Inventory_Summary.xlsx" feeds
// inventory_summary.csv.
func (p Paths) Match(name string) (string, bool) {
	stem := fileStem(name)
	if stem == "" {
		return "", false
	}
	for _, target := range []string{p.Inventory, p.Sales, p.Partners} {
		if target != "" && fileStem(target) == stem {
			return target, true
		}
	}
	return "", false
}

func fileStem(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Dataset holds every typed record of a run.
type Dataset struct {
	Inventory []domain.InventoryObservation
	Sales     []domain.SalesRecord
	Partners  []domain.PartnerRecord
	Warnings  []error
}

// Loader reads the shop exports into typed records.
type Loader struct{}

// NewLoader creates a new Loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadAll loads the inventory table, which is required, and the sales and
// partner tables, which degrade to empty with a warning when absent.
func (l *Loader) LoadAll(ctx context.Context, paths Paths) (*Dataset, error) {
	ds := &Dataset{}

	inventory, err := l.LoadInventory(paths.Inventory)
	if err != nil {
		return nil, err
	}
	ds.Inventory = inventory

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sales, err := l.LoadSales(paths.Sales)
	if err != nil {
		var warn *domain.EmptyDataWarning
		if !errors.As(err, &warn) {
			return nil, err
		}
		ds.Warnings = append(ds.Warnings, err)
	}
	ds.Sales = sales

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	partners, err := l.LoadPartners(paths.Partners)
	if err != nil {
		var warn *domain.EmptyDataWarning
		if !errors.As(err, &warn) {
			return nil, err
		}
		ds.Warnings = append(ds.Warnings, err)
	}
	ds.Partners = partners

	for _, w := range ds.Warnings {
		log.Warn().Err(w).Msg("optional input degraded to empty")
	}

	return ds, nil
}

// LoadInventory loads the inventory export. A missing or empty file is a
// MissingInputError.
func (l *Loader) LoadInventory(path string) ([]domain.InventoryObservation, error) {
	t, err := openRequired(TableInventory, path)
	if err != nil {
		return nil, err
	}

	productIdx, err := requireColumn(TableInventory, t.header, productColumn...)
	if err != nil {
		return nil, err
	}
	dateIdx, err := requireColumn(TableInventory, t.header, dateColumn...)
	if err != nil {
		return nil, err
	}
	unitsIdx, err := requireColumn(TableInventory, t.header, unitsColumn...)
	if err != nil {
		return nil, err
	}
	valueIdx, err := requireColumn(TableInventory, t.header, valueColumn...)
	if err != nil {
		return nil, err
	}

	observations := make([]domain.InventoryObservation, 0, len(t.records))
	for i, record := range t.records {
		row := t.line(i)

		product := cell(record, productIdx)
		if product == "" {
			return nil, formatErr(TableInventory, row, productColumn[0], product, errEmptyCell)
		}
		date, err := parseDate(cell(record, dateIdx))
		if err != nil {
			return nil, formatErr(TableInventory, row, dateColumn[0], cell(record, dateIdx), err)
		}
		units, err := parseUnits(cell(record, unitsIdx))
		if err != nil {
			return nil, formatErr(TableInventory, row, unitsColumn[0], cell(record, unitsIdx), err)
		}
		value, err := parseMoney(cell(record, valueIdx))
		if err != nil {
			return nil, formatErr(TableInventory, row, valueColumn[0], cell(record, valueIdx), err)
		}

		observations = append(observations, domain.InventoryObservation{
			Product:        product,
			Date:           date,
			UnitsOnHand:    units,
			InventoryValue: value,
		})
	}

	log.Info().Str("table", TableInventory).Str("path", path).Int("rows", len(observations)).Msg("loaded table")
	return observations, nil
}

// LoadSales loads the sales export. A missing or empty file yields an
// EmptyDataWarning and no records.
func (l *Loader) LoadSales(path string) ([]domain.SalesRecord, error) {
	t, err := openOptional(TableSales, path)
	if err != nil {
		return nil, err
	}

	productIdx, err := requireColumn(TableSales, t.header, productColumn...)
	if err != nil {
		return nil, err
	}
	dateIdx, err := requireColumn(TableSales, t.header, dateColumn...)
	if err != nil {
		return nil, err
	}
	soldIdx, err := requireColumn(TableSales, t.header, soldColumn...)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(t.records))
	for i, record := range t.records {
		row := t.line(i)

		product := cell(record, productIdx)
		if product == "" {
			return nil, formatErr(TableSales, row, productColumn[0], product, errEmptyCell)
		}
		date, err := parseDate(cell(record, dateIdx))
		if err != nil {
			return nil, formatErr(TableSales, row, dateColumn[0], cell(record, dateIdx), err)
		}
		sold, err := parseQuantity(cell(record, soldIdx))
		if err != nil {
			return nil, formatErr(TableSales, row, soldColumn[0], cell(record, soldIdx), err)
		}

		records = append(records, domain.SalesRecord{
			Product:      product,
			Date:         date,
			NetUnitsSold: sold,
		})
	}

	log.Info().Str("table", TableSales).Str("path", path).Int("rows", len(records)).Msg("loaded table")
	return records, nil
}

// LoadPartners loads the partner export without interpreting its columns.
func (l *Loader) LoadPartners(path string) ([]domain.PartnerRecord, error) {
	t, err := openOptional(TablePartners, path)
	if err != nil {
		return nil, err
	}

	header := make([]string, len(t.header))
	for i, h := range t.header {
		header[i] = normalizeHeaderCase(h)
	}

	partners := make([]domain.PartnerRecord, 0, len(t.records))
	for _, record := range t.records {
		values := make([]string, len(header))
		copy(values, record)
		partners = append(partners, domain.PartnerRecord{Columns: header, Values: values})
	}

	log.Info().Str("table", TablePartners).Str("path", path).Int("rows", len(partners)).Msg("loaded table")
	return partners, nil
}

func openRequired(name, path string) (*table, error) {
	if path == "" {
		return nil, &domain.MissingInputError{Table: name, Path: "(not configured)"}
	}
	t, err := readTable(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.MissingInputError{Table: name, Path: path}
		}
		return nil, fmt.Errorf("failed to read %s table %s: %w", name, path, err)
	}
	if len(t.records) == 0 {
		return nil, &domain.MissingInputError{Table: name, Path: path}
	}
	return t, nil
}

func openOptional(name, path string) (*table, error) {
	if path == "" {
		return nil, &domain.EmptyDataWarning{Table: name, Path: "(not configured)"}
	}
	t, err := readTable(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.EmptyDataWarning{Table: name, Path: path}
		}
		return nil, fmt.Errorf("failed to read %s table %s: %w", name, path, err)
	}
	if len(t.records) == 0 {
		return nil, &domain.EmptyDataWarning{Table: name, Path: path}
	}
	return t, nil
}

func formatErr(table string, row int, column, value string, err error) error {
	return &domain.DataFormatError{Table: table, Row: row, Column: column, Value: value, Err: err}
}

// normalizeHeaderCase trims a partner header and drops a leading BOM while
// keeping its original case for the dashboard.
func normalizeHeaderCase(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}
