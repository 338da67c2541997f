package sales

import (
	"context"
	"log/slog"
	"time"
)

// Service coordinates warehouse fetches with the cache layer and bounds every
// upstream call with the configured query timeout.
type Service struct {
	repo         Repository
	cache        *Cache
	queryTimeout time.Duration
	logger       *slog.Logger
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache, queryTimeout time.Duration, logger *slog.Logger) *Service {
	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}
	return &Service{repo: repo, cache: cache, queryTimeout: queryTimeout, logger: logger}
}

// UnitProfile is everything the unit sales page renders for one window.
type UnitProfile struct {
	Window     MonthWindow
	Total      int
	Daily      []DayCount
	BySeries   *Breakdown
	BySegment  *Breakdown
	ByUnitType *Breakdown
	Salesforce *Matrix
}

// CustomerProfile is everything the customer analytics page renders.
type CustomerProfile struct {
	Window        MonthWindow
	Total         int
	Daily         []DayCount
	ByPaymentType *Breakdown
	ByLeasing     *Breakdown
}

// Facts returns the normalized sales fact events, cache-aware.
func (s *Service) Facts(ctx context.Context) ([]Event, error) {
	return s.fetch(ctx, keyFacts(), s.repo.SaleEvents)
}

// CustomerFacts returns the normalized contract-joined events, cache-aware.
func (s *Service) CustomerFacts(ctx context.Context) ([]Event, error) {
	return s.fetch(ctx, keyCustomer(), s.repo.CustomerEvents)
}

// UnitProfile aggregates the fact events for one month window: the daily
// totals plus one dense breakdown per unit dimension and the salesforce
// cross tab.
func (s *Service) UnitProfile(ctx context.Context, w MonthWindow) (*UnitProfile, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	events, err := s.Facts(ctx)
	if err != nil {
		return nil, err
	}
	month := FilterDays(FilterMonth(events, w.Year, w.Month), w.StartDay, w.EndDay)

	daily, err := DailyTotals(month, w)
	if err != nil {
		return nil, err
	}
	profile := &UnitProfile{Window: w, Daily: daily}
	for _, dc := range daily {
		profile.Total += dc.Count
	}
	if profile.BySeries, err = DailyBreakdown(month, w, DimSeries); err != nil {
		return nil, err
	}
	if profile.BySegment, err = DailyBreakdown(month, w, DimSegment); err != nil {
		return nil, err
	}
	if profile.ByUnitType, err = DailyBreakdown(month, w, DimUnitType); err != nil {
		return nil, err
	}
	profile.Salesforce = Heatmap(month, DimSalesforce, DimSeries)
	return profile, nil
}

// CustomerProfile aggregates the contract-joined events for one month window.
func (s *Service) CustomerProfile(ctx context.Context, w MonthWindow) (*CustomerProfile, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	events, err := s.CustomerFacts(ctx)
	if err != nil {
		return nil, err
	}
	month := FilterDays(FilterMonth(events, w.Year, w.Month), w.StartDay, w.EndDay)

	daily, err := DailyTotals(month, w)
	if err != nil {
		return nil, err
	}
	profile := &CustomerProfile{Window: w, Daily: daily}
	for _, dc := range daily {
		profile.Total += dc.Count
	}
	if profile.ByPaymentType, err = DailyBreakdown(month, w, DimPaymentType); err != nil {
		return nil, err
	}
	if profile.ByLeasing, err = DailyBreakdown(month, w, DimLeasing); err != nil {
		return nil, err
	}
	return profile, nil
}

// Refresh retires every cached dataset.
func (s *Service) Refresh(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) fetch(ctx context.Context, keyBase string, load func(context.Context) ([]Event, error)) ([]Event, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
		return load(fetchCtx)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]Event), nil
	}

	key, err := s.cache.BuildKey(ctx, keyBase)
	if err != nil {
		return nil, err
	}
	var events []Event
	if err := s.cache.FetchJSON(ctx, key, &events, loader); err != nil {
		return nil, err
	}
	return events, nil
}
