package absorption

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_absorbing_walk/internal/core/domain"
	"github.com/baditaflorin/go_absorbing_walk/internal/core/walk"
)

// maxJobQueueSize limits the number of pending trajectory batches.
const maxJobQueueSize = 32

// minWalksPerBatch is the smallest batch a worker should receive; tiny
// batches spend more time on channel traffic than on walking.
const minWalksPerBatch = 16

// walkJob is a contiguous range of trajectory indices to simulate.
type walkJob struct {
	firstSeed int64
	count     int
}

// walkJobResult is a partial tally from one batch.
type walkJobResult struct {
	tally domain.Tally
	err   error
}

// estimateParallel distributes the trajectories across a worker pool. Seeds
// are still the trajectory indices 0..Walks-1, and partial tallies are
// summed, so the result is identical to the sequential path regardless of
// scheduling order.
func (e *Estimator) estimateParallel(ctx context.Context, sim *walk.Simulator) (domain.Tally, error) {
	workers := e.config.Workers
	batch := e.config.Walks / (workers * 4)
	if batch < minWalksPerBatch {
		batch = minWalksPerBatch
	}

	jobs := make(chan walkJob, maxJobQueueSize)
	results := make(chan walkJobResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				tally, err := e.runBatch(ctx, sim, job)
				results <- walkJobResult{tally: tally, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for seed := 0; seed < e.config.Walks; seed += batch {
			count := batch
			if seed+count > e.config.Walks {
				count = e.config.Walks - seed
			}
			select {
			case jobs <- walkJob{firstSeed: int64(seed), count: count}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var tally domain.Tally
	var firstErr error
	for res := range results {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
			continue
		}
		tally.Lower += res.tally.Lower
		tally.Upper += res.tally.Upper
	}
	if firstErr != nil {
		return domain.Tally{}, firstErr
	}
	if err := ctx.Err(); err != nil {
		return domain.Tally{}, err
	}
	if tally.Total() != e.config.Walks {
		// Can only happen if the feeder stopped early on cancellation.
		return domain.Tally{}, context.Canceled
	}
	return tally, nil
}

// runBatch simulates one contiguous seed range and returns its tally.
func (e *Estimator) runBatch(ctx context.Context, sim *walk.Simulator, job walkJob) (domain.Tally, error) {
	var tally domain.Tally
	for i := 0; i < job.count; i++ {
		position, err := sim.Walk(ctx, job.firstSeed+int64(i))
		if err != nil {
			return domain.Tally{}, err
		}
		if position == e.config.LowerBound {
			tally.Lower++
		} else {
			tally.Upper++
		}
	}
	return tally, nil
}
