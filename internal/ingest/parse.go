package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var errEmptyCell = errors.New("value is empty")

// dateLayouts are tried in order; the first one that parses wins. Slash
// dates read month first and fall back to day first when the month is out of
// range, as pandas does.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errEmptyCell
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format")
}

// parseUnits accepts whole numbers, including "12.0" as written by
// spreadsheet exports, and rejects fractional unit counts.
func parseUnits(value string) (int, error) {
	if value == "" {
		return 0, errEmptyCell
	}
	cleaned := cleanNumber(value)
	if n, err := strconv.Atoi(cleaned); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("unit count must be a whole number")
	}
	return int(f), nil
}

func parseQuantity(value string) (float64, error) {
	if value == "" {
		return 0, errEmptyCell
	}
	f, err := strconv.ParseFloat(cleanNumber(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number")
	}
	return f, nil
}

func parseMoney(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, errEmptyCell
	}
	d, err := decimal.NewFromString(cleanNumber(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a decimal amount")
	}
	return d, nil
}

// cleanNumber strips currency symbols and thousands separators. A comma is
// treated as a thousands separator only when a dot is also present.
func cleanNumber(value string) string {
	v := strings.TrimSpace(value)
	v = strings.TrimPrefix(v, "$")
	v = strings.ReplaceAll(v, " ", "")
	if strings.Contains(v, ".") {
		v = strings.ReplaceAll(v, ",", "")
	}
	return v
}
