package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal/storage"
	"github.com/2beens/activeweek/internal/telemetry/metrics"
	"github.com/2beens/activeweek/internal/telemetry/tracing"
	"github.com/2beens/activeweek/internal/workouts"
	"github.com/2beens/activeweek/internal/workouts/analytics"
	"github.com/2beens/activeweek/internal/workouts/calendar"
	"github.com/2beens/activeweek/internal/workouts/form"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type persister interface {
	Load(ctx context.Context) ([]workouts.Record, error)
	Save(ctx context.Context, records []workouts.Record) error
}

type Params struct {
	Persister      persister
	MetricsManager *metrics.Manager
	DebounceDelay  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	// IDFunc defaults to random uuids.
	IDFunc func() string
}

// Service is the workout journal: the in-memory store, its debounced
// persistence and every read model computed from it.
type Service struct {
	store          *workouts.Store
	writer         *storage.DebouncedWriter
	metricsManager *metrics.Manager
	now            func() time.Time
}

// New loads the persisted collection and wires store changes to the debounced writer.
func New(ctx context.Context, params Params) (*Service, error) {
	if params.Persister == nil {
		return nil, errors.New("persister not set")
	}
	if params.MetricsManager == nil {
		params.MetricsManager = metrics.NewTestManager()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.DebounceDelay <= 0 {
		params.DebounceDelay = storage.DefaultDebounceDelay
	}

	s := &Service{
		metricsManager: params.MetricsManager,
		now:            params.Now,
	}
	s.writer = storage.NewDebouncedWriter(
		params.Persister,
		storage.WithDelay(params.DebounceDelay),
		storage.WithWriteResult(func(took time.Duration, err error) {
			s.metricsManager.ObservePersist(took.Seconds(), err)
		}),
	)

	storeOpts := []workouts.StoreOption{
		workouts.WithOnChange(func(records []workouts.Record) {
			s.metricsManager.GaugeWorkouts.Set(float64(len(records)))
			s.writer.Schedule(records)
		}),
	}
	if params.IDFunc != nil {
		storeOpts = append(storeOpts, workouts.WithIDFunc(params.IDFunc))
	}
	s.store = workouts.NewStore(storeOpts...)

	records, err := params.Persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load workouts: %w", err)
	}
	s.store.Load(records)
	s.metricsManager.GaugeWorkouts.Set(float64(len(records)))
	log.Infof("loaded %d workouts", len(records))

	return s, nil
}

// Flush writes any pending collection snapshot now.
func (s *Service) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

// List returns the collection in insertion order.
func (s *Service) List() []workouts.Record {
	return s.store.All()
}

func (s *Service) Get(id string) (workouts.Record, error) {
	rec, ok := s.store.Get(id)
	if !ok {
		return workouts.Record{}, ErrWorkoutNotFound
	}
	return rec, nil
}

// Add validates the entry as the workout form does and appends the new record.
func (s *Service) Add(ctx context.Context, entry Entry) (_ workouts.Record, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "service.workouts.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	f := form.New()
	if err := entry.fill(f); err != nil {
		return workouts.Record{}, err
	}

	date := entry.Date
	if date.IsZero() {
		date = s.now()
	}
	rec, err := f.Submit(date)
	if err != nil {
		return workouts.Record{}, err
	}

	added := s.store.Add(rec)
	s.metricsManager.CounterWorkouts.WithLabelValues("add").Inc()
	log.Debugf("workout added: %s [%s]", added.ID, added.Title())
	return added, nil
}

// Update replaces every field of the workout with the entry. The date only
// changes when the entry carries one.
func (s *Service) Update(ctx context.Context, id string, entry Entry) (_ workouts.Record, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "service.workouts.update")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	existing, ok := s.store.Get(id)
	if !ok {
		return workouts.Record{}, ErrWorkoutNotFound
	}

	f := form.NewEditForm(existing)
	if err := entry.fill(f); err != nil {
		return workouts.Record{}, err
	}
	if !entry.Date.IsZero() {
		f.Retarget(entry.Date)
	}

	patch, err := f.Patch()
	if err != nil {
		return workouts.Record{}, err
	}

	updated, ok := s.store.Update(id, patch)
	if !ok {
		// deleted concurrently
		return workouts.Record{}, ErrWorkoutNotFound
	}
	s.metricsManager.CounterWorkouts.WithLabelValues("update").Inc()
	return updated, nil
}

// Delete removes the workout; unknown ids are a no-op.
func (s *Service) Delete(id string) bool {
	deleted := s.store.Delete(id)
	if deleted {
		s.metricsManager.CounterWorkouts.WithLabelValues("delete").Inc()
	}
	return deleted
}

// Clear removes every workout.
func (s *Service) Clear() int {
	count := s.store.Len()
	s.store.ReplaceAll(nil)
	s.metricsManager.CounterWorkouts.WithLabelValues("clear").Inc()
	log.Warnf("cleared %d workouts", count)
	return count
}

// Recent lists the n newest workouts, the sources for copy-from-recent.
func (s *Service) Recent(n int) []workouts.Record {
	return form.RecentRecords(s.store.All(), n)
}

// Analytics is the dashboard read model.
type Analytics struct {
	Summary      analytics.Summary         `json:"summary"`
	Totals       []analytics.ActivityTotal `json:"totals"`
	Distribution []analytics.Share         `json:"distribution"`
}

func (s *Service) Analytics() Analytics {
	return computeAnalytics(s.store.All())
}

// AnalyticsForRange computes the dashboard over workouts dated within [from, to].
func (s *Service) AnalyticsForRange(from, to time.Time) Analytics {
	return computeAnalytics(analytics.FilterRange(s.store.All(), from, to))
}

func computeAnalytics(records []workouts.Record) Analytics {
	return Analytics{
		Summary:      analytics.Summarize(records),
		Totals:       analytics.ActivityTotals(records),
		Distribution: analytics.Distribution(records),
	}
}

// Reports builds the weekly, monthly and yearly reports around anchor (now when zero).
func (s *Service) Reports(anchor time.Time) analytics.Reports {
	if anchor.IsZero() {
		anchor = s.now()
	}
	return analytics.BuildReports(s.store.All(), anchor)
}

func (s *Service) PeriodReport(period analytics.Period, anchor time.Time) analytics.PeriodReport {
	if anchor.IsZero() {
		anchor = s.now()
	}
	return analytics.Report(s.store.All(), period, anchor)
}

// ForRange returns workouts dated within [from, to], oldest first.
func (s *Service) ForRange(from, to time.Time) []workouts.Record {
	inRange := analytics.FilterRange(s.store.All(), from, to)
	return sortByDate(inRange)
}

// Calendar renders one calendar layout around date (now when zero).
func (s *Service) Calendar(view calendar.View, date time.Time) (any, error) {
	now := s.now()
	if date.IsZero() {
		date = now
	}
	records := s.store.All()

	switch view {
	case calendar.ViewMonth:
		return calendar.MonthGrid(date, records, now), nil
	case calendar.ViewWeek:
		return calendar.WeekStrip(date, records, now), nil
	case calendar.ViewList:
		return calendar.MonthList(date, records, now), nil
	default:
		return nil, fmt.Errorf("%w: %q", calendar.ErrUnknownView, view)
	}
}
