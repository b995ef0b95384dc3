package service

import (
	"context"
	"time"

	"github.com/stocksuperhero/dashboard/internal/filter"
	"github.com/stocksuperhero/dashboard/internal/model"
	"github.com/stocksuperhero/dashboard/internal/session"

	"go.uber.org/zap"
)

// Dimension names one of the three selectors
type Dimension string

// Selector dimensions
const (
	DimensionSectors            Dimension = "sectors"
	DimensionIndustries         Dimension = "industries"
	DimensionClassificationTags Dimension = "classification-tags"
)

// FilterSnapshot is the session's filters with the options and view size they produce
type FilterSnapshot struct {
	Filters   model.FilterState `json:"filters"`
	Options   filter.Options    `json:"options"`
	ViewCount int               `json:"view_count"`
}

// FilterService applies selector changes to a session's FilterState
type FilterService struct {
	sessions  session.Store
	companies *CompanyService
	logger    *zap.Logger
}

// NewFilterService creates a new filter service
func NewFilterService(sessions session.Store, companies *CompanyService, logger *zap.Logger) *FilterService {
	return &FilterService{
		sessions:  sessions,
		companies: companies,
		logger:    logger,
	}
}

func (s *FilterService) load(ctx context.Context, sessionID string) (*model.Session, []model.CompanyRecord, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess == nil {
		return nil, nil, ErrSessionNotFound
	}

	records, err := s.companies.Records(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sess, records, nil
}

func snapshot(records []model.CompanyRecord, state model.FilterState) *FilterSnapshot {
	return &FilterSnapshot{
		Filters:   state,
		Options:   filter.AvailableOptions(records, state),
		ViewCount: len(filter.DerivedView(records, state)),
	}
}

// State returns the session's current filters and options
func (s *FilterService) State(ctx context.Context, sessionID string) (*FilterSnapshot, error) {
	sess, records, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(records, sess.Filters), nil
}

// View returns the session's DerivedView along with the session
func (s *FilterService) View(ctx context.Context, sessionID string) ([]model.CompanyRecord, *model.Session, error) {
	sess, records, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return filter.DerivedView(records, sess.Filters), sess, nil
}

// Set replaces one dimension wholesale. Changing sectors prunes industries the
// new sector selection no longer offers.
func (s *FilterService) Set(ctx context.Context, sessionID string, dim Dimension, values []string) (*FilterSnapshot, error) {
	sess, records, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state := sess.Filters
	switch dim {
	case DimensionSectors:
		state = filter.Prune(records, state.WithSectors(values))
	case DimensionIndustries:
		state = state.WithIndustries(values)
	case DimensionClassificationTags:
		state = state.WithClassificationTags(values)
	default:
		return nil, ErrUnknownDimension
	}

	if err := s.save(ctx, sess, records, state); err != nil {
		return nil, err
	}

	s.logger.Debug("filters updated",
		zap.String("session_id", sessionID),
		zap.String("dimension", string(dim)),
		zap.Strings("values", values))

	return snapshot(records, state), nil
}

// Clear resets all three dimensions, which is equivalent to a fresh session
func (s *FilterService) Clear(ctx context.Context, sessionID string) (*FilterSnapshot, error) {
	sess, records, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state := model.NewFilterState(nil, nil, nil)
	if err := s.save(ctx, sess, records, state); err != nil {
		return nil, err
	}
	return snapshot(records, state), nil
}

// SelectSymbol remembers the symbol chosen in the detail selector. The symbol
// must be in the session's DerivedView; an empty symbol clears the selection.
func (s *FilterService) SelectSymbol(ctx context.Context, sessionID, symbol string) error {
	sess, records, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if symbol != "" && !inView(filter.DerivedView(records, sess.Filters), symbol) {
		return ErrSymbolNotFound
	}
	if sess.SelectedSymbol == symbol {
		return nil
	}
	sess.SelectedSymbol = symbol
	sess.UpdatedAt = time.Now().UTC()
	return s.sessions.Save(ctx, sess)
}

// save stores state and drops a selected symbol that left the view
func (s *FilterService) save(ctx context.Context, sess *model.Session, records []model.CompanyRecord, state model.FilterState) error {
	selected := sess.SelectedSymbol
	if selected != "" && !inView(filter.DerivedView(records, state), selected) {
		s.logger.Debug("selected symbol left the view",
			zap.String("session_id", sess.ID),
			zap.String("symbol", selected))
		selected = ""
	}
	if sess.Filters.Equal(state) && sess.SelectedSymbol == selected {
		return nil
	}
	sess.Filters = state
	sess.SelectedSymbol = selected
	sess.UpdatedAt = time.Now().UTC()
	return s.sessions.Save(ctx, sess)
}

func inView(view []model.CompanyRecord, symbol string) bool {
	for _, r := range view {
		if r.Symbol == symbol {
			return true
		}
	}
	return false
}
