package main

import (
	"cmp"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/corekit/containers/ringq"
	"github.com/joshuapare/corekit/internal/units"
)

var (
	ringItems  int
	ringSorted bool
	ringSeed   int64
)

func init() {
	cmd := newRingCmd()
	cmd.Flags().IntVar(&ringItems, "items", 1000000, "Number of values pushed then popped")
	cmd.Flags().BoolVar(&ringSorted, "sorted", false, "Use sorted insertion with random keys")
	cmd.Flags().Int64Var(&ringSeed, "seed", 1, "Random seed for --sorted keys")
	rootCmd.AddCommand(cmd)
}

func newRingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ring",
		Short: "Measure ring queue push/pop throughput",
		Long: `The ring command fills a growable ring queue and drains it again,
checking the pop order. With --sorted, values are inserted with PushSorted.

Example:
  corectl ring --items 5000000
  corectl ring --items 2000 --sorted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRing()
		},
	}
	return cmd
}

type ringReport struct {
	Items    int           `json:"items"`
	Sorted   bool          `json:"sorted"`
	Width    int           `json:"width"`
	PushTime time.Duration `json:"pushNs"`
	PopTime  time.Duration `json:"popNs"`
}

func runRing() error {
	if ringItems < 0 {
		return errors.Newf("--items must not be negative, got %d", ringItems)
	}

	var q ringq.Queue[int]
	rng := rand.New(rand.NewSource(ringSeed))

	start := time.Now()
	for i := range ringItems {
		if ringSorted {
			q.PushSorted(rng.Int(), cmp.Compare[int])
		} else {
			q.Push(i)
		}
	}
	pushTime := time.Since(start)
	width := q.Cap()

	start = time.Now()
	prev := -1
	for i := range ringItems {
		v := q.Pop()
		switch {
		case ringSorted && v < prev:
			return errors.AssertionFailedf("pop %d: %d after %d breaks sorted order", i, v, prev)
		case !ringSorted && v != i:
			return errors.AssertionFailedf("pop %d: got %d", i, v)
		}
		prev = v
	}
	popTime := time.Since(start)

	report := ringReport{
		Items:    ringItems,
		Sorted:   ringSorted,
		Width:    width,
		PushTime: pushTime,
		PopTime:  popTime,
	}
	if jsonOut {
		return printJSON(report)
	}

	printInfo("Ring Queue\n")
	printInfo("  Items:      %s\n", units.Count(report.Items))
	printInfo("  Sorted:     %t\n", report.Sorted)
	printInfo("  Peak width: %s\n", units.Count(report.Width))
	printInfo("  Push:       %s", pushTime.Round(time.Microsecond))
	if secs := pushTime.Seconds(); secs > 0 {
		printInfo(" (%s)", units.Rate(float64(ringItems)/secs))
	}
	printInfo("\n  Pop:        %s", popTime.Round(time.Microsecond))
	if secs := popTime.Seconds(); secs > 0 {
		printInfo(" (%s)", units.Rate(float64(ringItems)/secs))
	}
	printInfo("\n")
	return nil
}
