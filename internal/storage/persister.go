package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/2beens/activeweek/internal/telemetry/tracing"
	"github.com/2beens/activeweek/internal/workouts"
	"github.com/2beens/activeweek/internal/workouts/dataexchange"
)

// payloads left behind by earlier clients that mean "nothing stored"
var emptyPayloads = map[string]bool{
	"":          true,
	"null":      true,
	"undefined": true,
}

// Persister loads and saves the whole collection under one key.
type Persister struct {
	kv          KV
	key         string
	fallbackKey string
}

func NewPersister(kv KV, key, fallbackKey string) *Persister {
	if key == "" {
		key = DefaultKey
	}
	return &Persister{
		kv:          kv,
		key:         key,
		fallbackKey: fallbackKey,
	}
}

// Load reads the stored collection. Missing or empty payloads give an empty
// collection; unparsable payloads are deleted and also give an empty
// collection. Only backend failures are returned as errors. When the main
// key holds nothing the fallback key is tried.
func (p *Persister) Load(ctx context.Context) (_ []workouts.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.persister.load")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	records, found, err := p.loadKey(ctx, p.key)
	if err != nil || found || p.fallbackKey == "" {
		return records, err
	}

	records, found, err = p.loadKey(ctx, p.fallbackKey)
	if found {
		log.Warnf("loaded %d workouts from fallback key %s", len(records), p.fallbackKey)
	}
	return records, err
}

func (p *Persister) loadKey(ctx context.Context, key string) (_ []workouts.Record, found bool, err error) {
	payload, err := p.kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return []workouts.Record{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}

	if emptyPayloads[strings.TrimSpace(payload)] {
		return []workouts.Record{}, false, nil
	}

	result, err := dataexchange.Parse([]byte(payload))
	if err != nil || result.Format != dataexchange.FormatJSON {
		log.Errorf("stored workouts under %s are corrupted, discarding them", key)
		if delErr := p.kv.Delete(ctx, key); delErr != nil {
			log.Errorf("failed to delete corrupted key %s: %s", key, delErr)
		}
		return []workouts.Record{}, false, nil
	}

	if result.Skipped > 0 {
		log.Warnf("skipped %d invalid stored workouts under %s", result.Skipped, key)
	}
	return result.Records, true, nil
}

// Save overwrites the stored collection with a JSON array of records. A failed
// write is retried once against the fallback key; the error is returned only
// when that fails too.
func (p *Persister) Save(ctx context.Context, records []workouts.Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "storage.persister.save")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if records == nil {
		records = []workouts.Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal workouts: %w", err)
	}

	primaryErr := p.kv.Set(ctx, p.key, string(payload))
	if primaryErr == nil {
		return nil
	}
	log.Errorf("failed to persist %d workouts: %s", len(records), primaryErr)

	if p.fallbackKey == "" {
		return primaryErr
	}
	if fallbackErr := p.kv.Set(ctx, p.fallbackKey, string(payload)); fallbackErr != nil {
		log.Errorf("failed to persist workouts to fallback key: %s", fallbackErr)
		return multierr.Combine(primaryErr, fallbackErr)
	}

	log.Warnf("persisted %d workouts to fallback key %s", len(records), p.fallbackKey)
	return nil
}
