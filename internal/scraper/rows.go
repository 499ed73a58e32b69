package scraper

import (
	"strconv"
	"strings"

	"dealersync-backend/internal/inventory/domain"
)

// ColumnSpec binds one grid column, by position, to a vehicle field. The
// index is a contract with the DMS grid's current layout; when the vendor
// reorders columns only the schema definition changes.
type ColumnSpec struct {
	Name  string
	Index int
	Apply func(v *domain.Vehicle, text string)
}

// RowSchema is the ordered extractor list for one grid layout
type RowSchema struct {
	MinCells int
	Columns  []ColumnSpec
}

// DefaultRowSchema matches the inventory grid as currently rendered:
// stock number in the second cell, a combined "year make" cell, then
// model, trim and VIN.
func DefaultRowSchema() RowSchema {
	return RowSchema{
		MinCells: 8,
		Columns: []ColumnSpec{
			{Name: "stock_number", Index: 1, Apply: func(v *domain.Vehicle, s string) { v.StockNumber = s }},
			{Name: "year_make", Index: 4, Apply: applyYearMake},
			{Name: "model", Index: 5, Apply: func(v *domain.Vehicle, s string) { v.Model = s }},
			{Name: "trim", Index: 6, Apply: func(v *domain.Vehicle, s string) { v.Trim = s }},
			{Name: "vin", Index: 7, Apply: func(v *domain.Vehicle, s string) { v.VIN = s }},
		},
	}
}

// Parse converts one row of cell texts into a vehicle. Rows that are too
// short or produce no stock number are decorative (headers, footers, group
// separators) and are skipped, not errors.
func (s RowSchema) Parse(cells []string) (*domain.Vehicle, bool) {
	if len(cells) < s.MinCells {
		return nil, false
	}

	v := &domain.Vehicle{Status: domain.StatusAvailable}
	for _, col := range s.Columns {
		if col.Index < len(cells) {
			col.Apply(v, strings.TrimSpace(cells[col.Index]))
		}
	}

	if v.StockNumber == "" {
		return nil, false
	}
	return v, true
}

// ParseAll runs Parse over every scraped row and keeps the qualifying ones
func (s RowSchema) ParseAll(rows [][]string) []*domain.Vehicle {
	vehicles := make([]*domain.Vehicle, 0, len(rows))
	for _, cells := range rows {
		if v, ok := s.Parse(cells); ok {
			vehicles = append(vehicles, v)
		}
	}
	return vehicles
}

// applyYearMake splits the combined "24 Chevrolet" cell: first token is the
// year, the rest joined is the make. An unparseable year leaves Year absent
// rather than discarding the row.
func applyYearMake(v *domain.Vehicle, text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}
	if year, err := strconv.Atoi(fields[0]); err == nil {
		normalized := normalizeYear(year)
		v.Year = &normalized
	}
	v.Make = strings.Join(fields[1:], " ")
}

// normalizeYear widens two-digit model years; "24" means 2024 on this grid.
// Values of 100 and up pass through as already four-digit.
func normalizeYear(year int) int {
	if year < 100 {
		return year + 2000
	}
	return year
}
