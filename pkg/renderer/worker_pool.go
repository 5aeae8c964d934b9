package renderer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// renderRows runs renderRow for every row in [0, height) with at most
// numWorkers rows in flight. Rows that have not started when ctx is cancelled
// are skipped and ctx.Err() is returned.
func renderRows(ctx context.Context, height, numWorkers int, renderRow func(row int)) error {
	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(numWorkers))

	for row := 0; row < height; row++ {
		row := row // https://golang.org/doc/faq#closures_and_goroutines

		if err := sem.Acquire(ctx, 1); err != nil {
			// Let in-flight rows finish before reporting
			eg.Wait()
			return err
		}

		eg.Go(func() error {
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				return err
			}
			renderRow(row)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("while rendering rows: %w", err)
	}
	return nil
}

// rowProgress logs roughly every tenth of the frame as rows complete
type rowProgress struct {
	mu     sync.Mutex
	total  int
	done   int
	step   int
	logger core.Logger
}

func newRowProgress(total int, logger core.Logger) *rowProgress {
	step := total / 10
	if step < 1 {
		step = 1
	}
	return &rowProgress{total: total, step: step, logger: logger}
}

func (p *rowProgress) rowDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.done%p.step == 0 || p.done == p.total {
		p.logger.Printf("Scanlines remaining: %d\n", p.total-p.done)
	}
}
