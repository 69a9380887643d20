// Package recordbuilder converts tokenized CSV rows into typed line items.
// It owns schema resolution, field normalization and transaction-key
// assignment. A build either succeeds completely or fails without producing
// anything; callers keep their previous dataset on failure.
package recordbuilder

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fkondo/pos-receipts/internal/amountutils"
	"fkondo/pos-receipts/internal/dateutils"
	"fkondo/pos-receipts/internal/logging"
	"fkondo/pos-receipts/internal/models"
	"fkondo/pos-receipts/internal/parsererror"
	"fkondo/pos-receipts/internal/schema"
)

var errUnparsableTime = errors.New("time does not normalize to HH:MM:SS")

// Builder turns a tokenized grid into a Dataset.
type Builder struct {
	names  schema.ColumnNames
	logger logging.Logger
}

// New creates a Builder for the given column configuration.
func New(names schema.ColumnNames, logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Builder{names: names, logger: logger}
}

// Build converts a tokenized grid into a Dataset.
//
// The first row is the header; it must contain every required column or the
// build fails with a SchemaError listing all missing names. Fewer than two
// rows fail with an EmptyInputError. Data rows that are entirely blank are
// skipped. In synthetic-key mode a row whose time value does not normalize
// fails the build with a ParseError; with a natural receipt id the time is
// tolerated since the id already disambiguates transactions.
func (b *Builder) Build(grid [][]string) (*models.Dataset, error) {
	if len(grid) < 2 {
		return nil, &parsererror.EmptyInputError{RowCount: len(grid)}
	}

	s, err := schema.Resolve(grid[0], b.names)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("Resolved schema",
		logging.Field{Key: "naturalKey", Value: s.NaturalKey})

	lines := make([]models.LineItem, 0, len(grid)-1)
	for rowNum, row := range grid[1:] {
		if blankRow(row) {
			continue
		}

		li, err := b.buildLine(s, row, rowNum+2)
		if err != nil {
			return nil, err
		}
		lines = append(lines, li)
	}

	ds := &models.Dataset{
		ID:      uuid.New(),
		Header:  grid[0],
		Lines:   lines,
		Members: distinct(lines, func(li models.LineItem) string { return li.Member }),
		Stores:  distinct(lines, func(li models.LineItem) string { return li.Store }),
	}

	b.logger.Info("Loaded dataset",
		logging.Field{Key: "dataset", Value: ds.ID.String()},
		logging.Field{Key: "rows", Value: len(ds.Lines)},
		logging.Field{Key: "members", Value: len(ds.Members)},
		logging.Field{Key: "stores", Value: len(ds.Stores)})

	return ds, nil
}

// buildLine maps one data row to a LineItem. rowNum is 1-based including the
// header, matching what a user sees in a spreadsheet.
func (b *Builder) buildLine(s *schema.Schema, row []string, rowNum int) (models.LineItem, error) {
	rawTime := s.Cell(row, schema.FieldTime)
	timeOfDay := dateutils.NormalizeTime(rawTime)
	if timeOfDay == "" && !s.NaturalKey {
		return models.LineItem{}, &parsererror.ParseError{
			Column: s.Names.Time,
			Value:  rawTime,
			Row:    rowNum,
			Err:    errUnparsableTime,
		}
	}

	li := models.LineItem{
		Member:      s.Cell(row, schema.FieldMember),
		DateKey:     dateutils.ToDateKey(s.Cell(row, schema.FieldDate)),
		Time:        timeOfDay,
		Store:       s.Cell(row, schema.FieldStore),
		Item:        s.Cell(row, schema.FieldItem),
		Amount:      amountutils.ParseAmount(s.Cell(row, schema.FieldAmount)),
		Maker:       s.Cell(row, schema.FieldMaker),
		Category1:   s.Cell(row, schema.FieldCategory1),
		Category2:   s.Cell(row, schema.FieldCategory2),
		Category3:   s.Cell(row, schema.FieldCategory3),
		ProductCode: s.Cell(row, schema.FieldProductCode),
	}

	if s.Has(schema.FieldQuantity) {
		li.Quantity = amountutils.ParseAmount(s.Cell(row, schema.FieldQuantity))
	} else {
		li.Quantity = decimal.NewFromInt(1)
	}

	li.TransactionKey = b.transactionKey(s, row, li)
	li.DateTimeKey = dateutils.DateTimeKey(li.DateKey, li.Time)

	return li, nil
}

// transactionKey prefers the natural receipt id when the schema carries one;
// a blank id cell falls back to the synthetic derivation so those rows still
// group by purchase event instead of collapsing into one bucket.
func (b *Builder) transactionKey(s *schema.Schema, row []string, li models.LineItem) string {
	if s.NaturalKey {
		if id := s.Cell(row, schema.FieldReceiptID); id != "" {
			return id
		}
	}
	return DeriveTransactionKey(li.Member, li.Store, li.DateKey, li.Time)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func distinct(lines []models.LineItem, key func(models.LineItem) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, li := range lines {
		v := key(li)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
