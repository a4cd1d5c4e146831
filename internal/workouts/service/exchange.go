package service

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal/telemetry/tracing"
	"github.com/2beens/activeweek/internal/workouts"
	"github.com/2beens/activeweek/internal/workouts/dataexchange"
)

type ExportFile struct {
	Name        string
	ContentType string
	Payload     []byte
}

// Export serializes the whole collection in the given format.
func (s *Service) Export(ctx context.Context, format dataexchange.Format) (_ *ExportFile, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "service.workouts.export")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	now := s.now()
	records := s.store.All()

	var payload []byte
	switch format {
	case dataexchange.FormatCSV:
		payload, err = dataexchange.ExportCSV(records)
	default:
		format = dataexchange.FormatJSON
		payload, err = dataexchange.ExportJSON(records, now)
	}
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Name:        dataexchange.FileName(format, now),
		ContentType: format.ContentType(),
		Payload:     payload,
	}, nil
}

type ImportOutcome struct {
	Format   dataexchange.Format `json:"format"`
	Mode     dataexchange.Mode   `json:"mode"`
	Accepted int                 `json:"accepted"`
	Skipped  int                 `json:"skipped"`
	Applied  bool                `json:"applied"`
	// Total is the collection size after the import was applied.
	Total   int               `json:"total,omitempty"`
	Preview []workouts.Record `json:"preview,omitempty"`
}

// Import parses the payload and, when confirmed, installs the accepted records
// in one mutation. Without confirmation the accepted records are only
// returned for preview.
func (s *Service) Import(
	ctx context.Context,
	payload []byte,
	mode dataexchange.Mode,
	confirm bool,
) (_ *ImportOutcome, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "service.workouts.import")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if mode == "" {
		mode = dataexchange.ModeReplace
	}

	result, err := dataexchange.Parse(payload)
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterImportedWorkouts.WithLabelValues("accepted").Add(float64(result.Accepted))
	s.metricsManager.CounterImportedWorkouts.WithLabelValues("skipped").Add(float64(result.Skipped))

	outcome := &ImportOutcome{
		Format:   result.Format,
		Mode:     mode,
		Accepted: result.Accepted,
		Skipped:  result.Skipped,
	}
	if result.Accepted == 0 {
		return outcome, dataexchange.ErrNoValidRecords
	}
	if !confirm {
		outcome.Preview = result.Records
		return outcome, nil
	}

	total, err := dataexchange.Apply(s.store, result, mode)
	if err != nil {
		return outcome, err
	}
	outcome.Applied = true
	outcome.Total = total
	s.metricsManager.CounterWorkouts.WithLabelValues("import").Inc()
	log.Infof("imported %d workouts (%s, %d skipped), collection now holds %d", result.Accepted, mode, result.Skipped, total)
	return outcome, nil
}

// IsImportRejected reports whether err means the payload itself was unusable.
func IsImportRejected(err error) bool {
	return errors.Is(err, dataexchange.ErrUnknownFormat) || errors.Is(err, dataexchange.ErrNoValidRecords)
}
