// Package sweep deletes expired resources from the external host in paced
// batches and reconciles the expiry registry with the outcome.
package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/hay-kot/tempbox/internal/core/expiry"
)

const (
	// DefaultBatchSize is the number of ids sent per delete call.
	DefaultBatchSize = 5
	// DefaultBatchDelay is the pause between consecutive delete calls.
	DefaultBatchDelay = time.Second
)

// Deleter removes content from the external host. A call succeeds or fails
// as a whole. Deleting ids that are already gone must not fail.
type Deleter interface {
	DeleteContent(ctx context.Context, ids []string) error
}

// Registry is the subset of *expiry.Registry the sweeper needs.
type Registry interface {
	GetExpired(now time.Time) []expiry.Record
	RemoveMultiple(ids []string)
}

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sweeper runs sweeps. Concurrent calls to Run share one in-flight sweep.
type Sweeper struct {
	registry   Registry
	deleter    Deleter
	batchSize  int
	batchDelay time.Duration
	clock      func() time.Time
	sleep      SleepFunc
	logger     zerolog.Logger

	group singleflight.Group
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithBatchSize sets the ids per delete call. Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(s *Sweeper) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithBatchDelay sets the pause between delete calls.
func WithBatchDelay(d time.Duration) Option {
	return func(s *Sweeper) {
		s.batchDelay = d
	}
}

// WithClock sets the time source used when Run is given a zero now.
func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		s.clock = clock
	}
}

// WithSleep replaces the inter-batch pause implementation.
func WithSleep(fn SleepFunc) Option {
	return func(s *Sweeper) {
		s.sleep = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sweeper) {
		s.logger = l
	}
}

// New creates a Sweeper over registry that deletes through deleter.
func New(registry Registry, deleter Deleter, opts ...Option) *Sweeper {
	s := &Sweeper{
		registry:   registry,
		deleter:    deleter,
		batchSize:  DefaultBatchSize,
		batchDelay: DefaultBatchDelay,
		clock:      time.Now,
		sleep:      Sleep,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one sweep at now (the clock's time when now is zero).
//
// A failed batch is recorded in the result and its ids stay in the
// registry for the next sweep. Run returns an error only for failures
// outside batch handling, in which case no result is produced.
//
// A call made while another sweep is in flight waits for that sweep and
// returns its result with Joined set; its own now is not used.
func (s *Sweeper) Run(ctx context.Context, now time.Time) (Result, error) {
	led := false
	v, err, _ := s.group.Do("sweep", func() (any, error) {
		led = true
		return s.run(ctx, now)
	})
	if err != nil {
		return Result{}, err
	}

	res := v.(Result)
	if !led {
		res.Joined = true
		ev := s.logger.Debug()
		if !now.IsZero() {
			ev = s.logger.Warn().Time("requested_now", now)
		}
		ev.Msg("joined in-flight sweep")
	}
	return res, nil
}

func (s *Sweeper) run(ctx context.Context, now time.Time) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = fmt.Errorf("sweep: unexpected failure: %v", r)
		}
	}()

	if now.IsZero() {
		now = s.clock()
	}

	ids := expiry.IDs(s.registry.GetExpired(now))
	if len(ids) == 0 {
		s.logger.Debug().Msg("no expired records")
		return Result{}, nil
	}

	res.Attempted = len(ids)
	batches := Partition(ids, s.batchSize)

	s.logger.Info().
		Int("expired", len(ids)).
		Int("batches", len(batches)).
		Msg("starting sweep")

	for i, batch := range batches {
		start := i * s.batchSize

		if derr := s.deleteBatch(ctx, batch); derr != nil {
			res.Failed += len(batch)
			berr := BatchError{Start: start, End: start + s.batchSize, Err: derr}
			res.Errors = append(res.Errors, berr)
			s.logger.Error().Err(derr).
				Int("start", berr.Start).
				Int("end", berr.End).
				Msg("failed to delete batch")
		} else {
			res.Successful += len(batch)
			s.registry.RemoveMultiple(batch)
		}

		if i < len(batches)-1 {
			if serr := s.sleep(ctx, s.batchDelay); serr != nil {
				return Result{}, fmt.Errorf("sweep: pause after batch %d: %w", i, serr)
			}
		}
	}

	s.logger.Info().
		Int("successful", res.Successful).
		Int("failed", res.Failed).
		Msg("sweep complete")

	return res, nil
}

// deleteBatch calls the deleter, turning a panic into that batch's error.
func (s *Sweeper) deleteBatch(ctx context.Context, ids []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delete panicked: %v", r)
		}
	}()
	return s.deleter.DeleteContent(ctx, ids)
}

// Partition splits ids into consecutive chunks of at most size, in order.
func Partition(ids []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
