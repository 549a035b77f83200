// Package results writes accepted wins to the results store off the
// coordinator's critical path.
package results

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/bingohub/internal/core"
	"github.com/vovakirdan/bingohub/internal/store"
)

const (
	defaultQueueSize = 64
	writeTimeout     = 5 * time.Second
)

// Journal queues results from the hub and persists them in Run.
type Journal struct {
	queue chan core.Result
	store store.ResultStore
	log   *zerolog.Logger
}

var _ core.ResultSink = (*Journal)(nil)

// NewJournal creates a journal backed by st.
func NewJournal(st store.ResultStore, queueSize int, logger *zerolog.Logger) *Journal {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Journal{
		queue: make(chan core.Result, queueSize),
		store: st,
		log:   logger,
	}
}

// Record enqueues a result without blocking. A full queue drops the result.
func (j *Journal) Record(r core.Result) {
	select {
	case j.queue <- r:
	default:
		j.log.Warn().Str("room", r.Room).Str("winner", r.Winner).Msg("results queue full, result dropped")
	}
}

// Run persists queued results until ctx is cancelled, then flushes what is left.
func (j *Journal) Run(ctx context.Context) error {
	for {
		select {
		case r := <-j.queue:
			j.write(ctx, r)
		case <-ctx.Done():
			j.flush()
			return nil
		}
	}
}

// List returns stored results.
func (j *Journal) List(ctx context.Context, filter store.ResultFilter) ([]store.Result, error) {
	return j.store.ListResults(ctx, filter)
}

func (j *Journal) flush() {
	for {
		select {
		case r := <-j.queue:
			j.write(context.Background(), r)
		default:
			return
		}
	}
}

func (j *Journal) write(ctx context.Context, r core.Result) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	rec := toStored(r)
	if err := j.store.SaveResult(ctx, &rec); err != nil {
		j.log.Error().Err(err).Str("room", r.Room).Msg("failed to save result")
		return
	}
	j.log.Debug().Int64("result_id", rec.ID).Str("room", r.Room).Msg("result saved")
}

func toStored(r core.Result) store.Result {
	values := make([]store.Value, 0, len(r.WinningValues))
	for _, it := range r.WinningValues {
		values = append(values, store.Value{ID: it.ID, Numeric: it.Numeric})
	}
	return store.Result{
		Room:          r.Room,
		Winner:        r.Winner,
		WinningValues: values,
		EndedAt:       r.EndedAt,
	}
}
