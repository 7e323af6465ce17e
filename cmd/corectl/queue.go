package main

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/corekit/containers/ptrqueue"
	"github.com/joshuapare/corekit/internal/logger"
	"github.com/joshuapare/corekit/internal/units"
)

var (
	queueCapacity  uint32
	queueProducers int
	queueConsumers int
	queueItems     int
	queueTimeout   time.Duration
)

func init() {
	cmd := newQueueCmd()
	cmd.Flags().Uint32Var(&queueCapacity, "capacity", 1024, "Queue capacity (rounded up to a power of two)")
	cmd.Flags().IntVar(&queueProducers, "producers", 4, "Number of producer goroutines")
	cmd.Flags().IntVar(&queueConsumers, "consumers", 4, "Number of consumer goroutines")
	cmd.Flags().IntVar(&queueItems, "items", 100000, "Values pushed per producer")
	cmd.Flags().DurationVar(&queueTimeout, "timeout", time.Minute, "Abort the run after this long")
	rootCmd.AddCommand(cmd)
}

func newQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Stress the lock-free pointer queue",
		Long: `The queue command runs producers and consumers against one pointer
queue and verifies conservation: every pushed value is popped exactly once.

Example:
  corectl queue --producers 8 --consumers 2
  corectl queue --capacity 4 --items 10000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueue(cmd.Context())
		},
	}
	return cmd
}

type token struct {
	id int
}

type queueReport struct {
	Capacity  uint32        `json:"capacity"`
	Producers int           `json:"producers"`
	Consumers int           `json:"consumers"`
	Pushed    int64         `json:"pushed"`
	Popped    int64         `json:"popped"`
	Elapsed   time.Duration `json:"elapsedNs"`
}

func runQueue(ctx context.Context) error {
	if queueProducers <= 0 || queueConsumers <= 0 {
		return errors.Newf("need at least one producer and one consumer, got %d/%d",
			queueProducers, queueConsumers)
	}
	if queueItems < 0 {
		return errors.Newf("--items must not be negative, got %d", queueItems)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, queueTimeout)
	defer cancel()

	q, err := ptrqueue.New[token](queueCapacity)
	if err != nil {
		return errors.Wrap(err, "create queue")
	}

	total := queueProducers * queueItems
	tokens := make([]token, total)
	for i := range tokens {
		tokens[i].id = i
	}
	seen := make([]atomic.Int32, total)

	var pushed, popped atomic.Int64
	var wg sync.WaitGroup
	errs := make(chan error, queueProducers+queueConsumers)

	start := time.Now()
	for p := range queueProducers {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := range queueItems {
				if err := q.Push(ctx, &tokens[base+i]); err != nil {
					errs <- errors.Wrapf(err, "producer %d", base/max(queueItems, 1))
					return
				}
				pushed.Add(1)
			}
		}(p * queueItems)
	}
	// drained releases consumers waiting in Pop once the last value is taken
	drained, stop := context.WithCancel(ctx)
	defer stop()
	if total == 0 {
		stop()
	}
	for c := range queueConsumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, err := q.Pop(drained)
				if err != nil {
					if popped.Load() < int64(total) {
						errs <- errors.Wrapf(err, "consumer %d", c)
					}
					return
				}
				seen[v.id].Add(1)
				if popped.Add(1) == int64(total) {
					stop()
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)
	close(errs)

	if err := <-errs; err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("queue stress timed out", "timeout", queueTimeout,
				"pushed", pushed.Load(), "popped", popped.Load())
		}
		return err
	}
	for id := range seen {
		if n := seen[id].Load(); n != 1 {
			return errors.AssertionFailedf("value %d delivered %d times", id, n)
		}
	}
	if pushed.Load() != popped.Load() {
		return errors.AssertionFailedf("pushed %d but popped %d", pushed.Load(), popped.Load())
	}
	logger.Info("queue stress done", "items", total, "elapsed", elapsed)

	report := queueReport{
		Capacity:  q.Capacity(),
		Producers: queueProducers,
		Consumers: queueConsumers,
		Pushed:    pushed.Load(),
		Popped:    popped.Load(),
		Elapsed:   elapsed,
	}
	if jsonOut {
		return printJSON(report)
	}

	printInfo("Pointer Queue Stress\n")
	printInfo("  Capacity:   %s\n", units.Count(report.Capacity))
	printInfo("  Producers:  %d\n", report.Producers)
	printInfo("  Consumers:  %d\n", report.Consumers)
	printInfo("  Transfers:  %s\n", units.Count(report.Popped))
	printInfo("  Elapsed:    %s\n", elapsed.Round(time.Microsecond))
	if secs := elapsed.Seconds(); secs > 0 {
		printInfo("  Throughput: %s\n", units.Rate(float64(report.Popped)/secs))
	}
	printInfo("  Conservation: OK\n")
	return nil
}
