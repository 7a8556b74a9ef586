package comparator

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quantfold/sector-backtest/internal/types"
)

// DefaultBatchConcurrency bounds how many instruments a batch runs at once.
const DefaultBatchConcurrency = 4

// BatchResult pairs one instrument with its comparison, or with the error
// that stopped it. Units are independent: one failed instrument never
// corrupts another.
type BatchResult struct {
	Symbol     string
	Comparison *Comparison
	Err        error
}

// CompareBatch runs the comparison over many instruments concurrently.
// Concurrency <= 0 falls back to the default bound. Cancelling the context
// stops scheduling new units; units already running finish or observe the
// cancellation themselves. The returned slice is ordered like the input.
func (c *Comparator) CompareBatch(ctx context.Context, seriesList []*types.PriceSeries, cfg Config, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(seriesList))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex

	for i, series := range seriesList {
		i, series := i, series
		g.Go(func() error {
			comparison, err := c.Compare(ctx, series, cfg)

			mu.Lock()
			results[i] = BatchResult{
				Symbol:     symbolOf(series),
				Comparison: comparison,
				Err:        err,
			}
			mu.Unlock()

			if err != nil {
				c.logger.Warn("batch unit failed",
					zap.String("symbol", symbolOf(series)),
					zap.Error(err))
			}

			// Unit errors are recorded, not propagated; one bad
			// instrument must not cancel its siblings.
			return nil
		})
	}

	// The group only returns nil errors, so Wait cannot fail.
	_ = g.Wait()

	return results
}
