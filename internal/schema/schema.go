// Package schema resolves the configured header names of a point-of-sale
// export into column indexes once per load. After resolution, row cells are
// addressed through typed logical fields instead of header-name lookups.
package schema

import (
	"strings"

	"fkondo/pos-receipts/internal/parsererror"
)

// Field identifies a logical column of the export.
type Field int

const (
	FieldMember Field = iota
	FieldDate
	FieldTime
	FieldReceiptID
	FieldStore
	FieldItem
	FieldAmount
	FieldQuantity
	FieldMaker
	FieldCategory1
	FieldCategory2
	FieldCategory3
	FieldProductCode
)

// ColumnNames maps logical fields to the literal header strings of the
// export. Member, Date, Store, Item and Amount are always required; Time is
// required unless the header carries the configured ReceiptID column.
// The remaining names are optional and may be empty.
type ColumnNames struct {
	Member      string
	Date        string
	Time        string
	ReceiptID   string
	Store       string
	Item        string
	Amount      string
	Quantity    string
	Maker       string
	Category1   string
	Category2   string
	Category3   string
	ProductCode string
}

// Schema is the resolved mapping from logical fields to column indexes for
// one specific header row.
type Schema struct {
	Names ColumnNames

	// NaturalKey is true when the header carries the configured receipt-id
	// column, in which case transaction keys are taken from it instead of
	// being derived.
	NaturalKey bool

	index map[Field]int
}

// Resolve matches the configured column names against a header row.
// Header cells are trimmed before matching. All missing required columns are
// reported together in a single SchemaError; nothing is loaded partially.
func Resolve(header []string, names ColumnNames) (*Schema, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}

	s := &Schema{
		Names: names,
		index: make(map[Field]int),
	}

	optional := map[Field]string{
		FieldQuantity:    names.Quantity,
		FieldMaker:       names.Maker,
		FieldCategory1:   names.Category1,
		FieldCategory2:   names.Category2,
		FieldCategory3:   names.Category3,
		FieldProductCode: names.ProductCode,
	}
	for f, name := range optional {
		if name == "" {
			continue
		}
		if i, ok := byName[name]; ok {
			s.index[f] = i
		}
	}

	if names.ReceiptID != "" {
		if i, ok := byName[names.ReceiptID]; ok {
			s.index[FieldReceiptID] = i
			s.NaturalKey = true
		}
	}

	required := []struct {
		field Field
		name  string
	}{
		{FieldMember, names.Member},
		{FieldDate, names.Date},
		{FieldStore, names.Store},
		{FieldItem, names.Item},
		{FieldAmount, names.Amount},
	}
	if !s.NaturalKey {
		required = append(required, struct {
			field Field
			name  string
		}{FieldTime, names.Time})
	} else if i, ok := byName[names.Time]; ok {
		// Time stays optional alongside a natural receipt id.
		s.index[FieldTime] = i
	}

	var missing []string
	for _, r := range required {
		i, ok := byName[r.name]
		if !ok {
			missing = append(missing, r.name)
			continue
		}
		s.index[r.field] = i
	}
	if len(missing) > 0 {
		return nil, &parsererror.SchemaError{MissingColumns: missing}
	}

	return s, nil
}

// Index returns the column index of a logical field and whether the field is
// present in this schema.
func (s *Schema) Index(f Field) (int, bool) {
	i, ok := s.index[f]
	return i, ok
}

// Has reports whether a logical field is present in this schema.
func (s *Schema) Has(f Field) bool {
	_, ok := s.index[f]
	return ok
}

// Cell returns the trimmed value of a logical field within a row, or the
// empty string when the field is absent or the row is short.
func (s *Schema) Cell(row []string, f Field) string {
	i, ok := s.index[f]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
