// Package session holds the explicit application state of one browsing
// session: the loaded dataset, the receipts of the current query, the live
// timeline search and the cursor. There is no hidden global state; a view
// layer owns exactly one Session and drives it with discrete actions.
package session

import (
	"strings"

	"github.com/google/uuid"

	"fkondo/pos-receipts/internal/aggregator"
	"fkondo/pos-receipts/internal/logging"
	"fkondo/pos-receipts/internal/models"
	"fkondo/pos-receipts/internal/query"
	"fkondo/pos-receipts/internal/recordbuilder"
	"fkondo/pos-receipts/internal/schema"
	"fkondo/pos-receipts/internal/tokenizer"
)

// LoadStats summarizes a successful load for the status line.
type LoadStats struct {
	DatasetID uuid.UUID
	Rows      int
	Members   int
	Stores    int
}

// ViewModel is the plain derived data a renderer consumes: KPIs over the
// visible receipts, the visible receipt list, the cursor into it and the
// visible/total counts shown after a timeline search.
type ViewModel struct {
	Summary      models.MemberSummary
	Receipts     []models.Receipt
	Cursor       int
	VisibleCount int
	TotalCount   int
}

// Session is the application state. All methods are synchronous; a new load
// replaces prior state atomically and a failed load leaves it untouched.
type Session struct {
	builder *recordbuilder.Builder
	engine  *query.Engine
	logger  logging.Logger

	dataset  *models.Dataset
	params   query.Params
	receipts []models.Receipt // current query result
	visible  []models.Receipt // after timeline search
	search   string
	cursor   int
}

// New creates an empty session for the given column configuration.
func New(names schema.ColumnNames, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Session{
		builder: recordbuilder.New(names, logger),
		engine:  query.New(logger),
		logger:  logger,
	}
}

// Load parses raw CSV text into a fresh dataset. The previous dataset and
// query state are replaced only after the parse succeeds; on failure the
// session keeps whatever it was displaying.
func (s *Session) Load(text string) (LoadStats, error) {
	ds, err := s.builder.Build(tokenizer.Parse(text))
	if err != nil {
		s.logger.WithError(err).Error("Load failed, prior state retained")
		return LoadStats{}, err
	}

	s.dataset = ds
	s.params = query.Params{}
	s.receipts = nil
	s.visible = nil
	s.search = ""
	s.cursor = 0

	return LoadStats{
		DatasetID: ds.ID,
		Rows:      len(ds.Lines),
		Members:   len(ds.Members),
		Stores:    len(ds.Stores),
	}, nil
}

// Loaded reports whether a dataset is present.
func (s *Session) Loaded() bool {
	return s.dataset != nil
}

// Members returns the distinct member ids, narrowed by an optional substring.
func (s *Session) Members(filter string) []string {
	if s.dataset == nil {
		return nil
	}
	return narrow(s.dataset.Members, filter)
}

// Stores returns the distinct store names, narrowed by an optional substring.
func (s *Session) Stores(filter string) []string {
	if s.dataset == nil {
		return nil
	}
	return narrow(s.dataset.Stores, filter)
}

// Apply runs a query over the full line-item set and replaces the current
// receipt list. The timeline search is re-applied on top of the new list and
// the cursor resets to the first receipt. Returns query.ErrNoMemberSelected
// when no member id is given; the session state is left unchanged in that
// case.
func (s *Session) Apply(p query.Params) error {
	if s.dataset == nil {
		return query.ErrNoMemberSelected
	}

	receipts, err := s.engine.Query(s.dataset.Lines, p)
	if err != nil {
		return err
	}

	s.params = p
	s.receipts = receipts
	s.cursor = 0
	s.applySearch()
	return nil
}

// SetTimelineSearch narrows the visible receipt list live, without
// rebuilding the underlying receipts. When the currently selected receipt
// survives the narrowing the cursor follows it; otherwise it snaps to 0.
func (s *Session) SetTimelineSearch(q string) {
	var currentKey string
	if s.cursor < len(s.visible) {
		currentKey = s.visible[s.cursor].Key
	}

	s.search = q
	s.applySearch()

	s.cursor = 0
	if currentKey != "" {
		for i, r := range s.visible {
			if r.Key == currentKey {
				s.cursor = i
				break
			}
		}
	}
}

// Next moves the cursor one receipt forward.
func (s *Session) Next() {
	if s.cursor < len(s.visible)-1 {
		s.cursor++
	}
}

// Prev moves the cursor one receipt back.
func (s *Session) Prev() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// Select places the cursor on a specific visible index, clamped into range.
func (s *Session) Select(i int) {
	if len(s.visible) == 0 {
		s.cursor = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(s.visible)-1 {
		i = len(s.visible) - 1
	}
	s.cursor = i
}

// Current returns the receipt under the cursor.
func (s *Session) Current() (models.Receipt, bool) {
	if s.cursor >= len(s.visible) {
		return models.Receipt{}, false
	}
	return s.visible[s.cursor], true
}

// ViewModel derives the renderer's input from the current state. The KPI
// summary reduces over the visible receipts, so a timeline search changes
// the numbers the way the displayed list changes.
func (s *Session) ViewModel() ViewModel {
	return ViewModel{
		Summary:      aggregator.Summarize(s.visible),
		Receipts:     s.visible,
		Cursor:       s.cursor,
		VisibleCount: len(s.visible),
		TotalCount:   len(s.receipts),
	}
}

func (s *Session) applySearch() {
	s.visible = query.TimelineSearch(s.receipts, s.search)
}

func narrow(values []string, filter string) []string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return values
	}
	var out []string
	for _, v := range values {
		if strings.Contains(v, filter) {
			out = append(out, v)
		}
	}
	return out
}
