package backup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal/telemetry/metrics"
	"github.com/2beens/activeweek/internal/telemetry/tracing"
	"github.com/2beens/activeweek/internal/workouts/dataexchange"
	"github.com/2beens/activeweek/internal/workouts/service"
)

const fileNameLayout = "20060102-150405"

// FilePrefix starts every backup file name; destinations only manage files carrying it.
const FilePrefix = "workout-backup-"

var ErrBackupRunning = errors.New("backup already running")

//go:generate mockgen -source=$GOFILE -destination=backup_mocks_test.go -package=backup_test

type exporter interface {
	Export(ctx context.Context, format dataexchange.Format) (*service.ExportFile, error)
}

// Destination stores one backup file.
type Destination interface {
	Name() string
	Store(ctx context.Context, fileName string, payload []byte) error
}

type Params struct {
	Exporter       exporter
	Destination    Destination
	MetricsManager *metrics.Manager
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service writes JSON exports of the workout collection to a destination,
// on demand or on a cron schedule.
type Service struct {
	exporter       exporter
	destination    Destination
	metricsManager *metrics.Manager
	now            func() time.Time

	running sync.Mutex
	cron    *cron.Cron
}

func NewService(params Params) (*Service, error) {
	if params.Exporter == nil {
		return nil, errors.New("backup exporter is required")
	}
	if params.Destination == nil {
		return nil, errors.New("backup destination is required")
	}
	if params.MetricsManager == nil {
		params.MetricsManager = metrics.NewTestManager()
	}
	if params.Now == nil {
		params.Now = time.Now
	}

	return &Service{
		exporter:       params.Exporter,
		destination:    params.Destination,
		metricsManager: params.MetricsManager,
		now:            params.Now,
	}, nil
}

// RunOnce exports the collection and stores it, returning the stored file name.
// Overlapping runs are rejected with ErrBackupRunning.
func (s *Service) RunOnce(ctx context.Context) (_ string, err error) {
	ctx, span := tracing.GlobalBackupTracer.Start(ctx, "backup.run")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if !s.running.TryLock() {
		return "", ErrBackupRunning
	}
	defer s.running.Unlock()

	start := time.Now()
	defer func() {
		s.metricsManager.HistBackupDuration.Observe(time.Since(start).Seconds())
		result := "ok"
		if err != nil {
			result = "failed"
		}
		s.metricsManager.CounterBackups.WithLabelValues(s.destination.Name(), result).Inc()
	}()

	file, err := s.exporter.Export(ctx, dataexchange.FormatJSON)
	if err != nil {
		return "", fmt.Errorf("export workouts: %w", err)
	}

	fileName := fmt.Sprintf("%s%s.json", FilePrefix, s.now().UTC().Format(fileNameLayout))
	if err := s.destination.Store(ctx, fileName, file.Payload); err != nil {
		return "", fmt.Errorf("store %s to %s: %w", fileName, s.destination.Name(), err)
	}

	log.Debugf("backup %s stored to %s, %d bytes", fileName, s.destination.Name(), len(file.Payload))
	return fileName, nil
}

// Start schedules RunOnce with a standard cron spec (or a descriptor like @daily).
func (s *Service) Start(spec string) error {
	if s.cron != nil {
		return errors.New("backup schedule already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			log.Errorf("scheduled backup: %s", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c

	log.Printf("backups to %s scheduled: %s", s.destination.Name(), spec)
	return nil
}

// Stop removes the schedule and waits for a running backup to finish.
func (s *Service) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
}
