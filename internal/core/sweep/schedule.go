package sweep

import (
	"context"
	"time"
)

// Start runs a sweep every interval until ctx is cancelled. It blocks, so
// callers usually run it in its own goroutine. A non-positive interval
// returns immediately.
func Start(ctx context.Context, s *Sweeper, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.Run(ctx, time.Time{})
			if err != nil {
				s.logger.Error().Err(err).Msg("scheduled sweep failed")
				continue
			}
			if !res.Empty() {
				s.logger.Info().Msg(res.Message())
			}
		}
	}
}
