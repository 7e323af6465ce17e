package main

import (
	"encoding/json"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/corekit/containers/alloc"
	"github.com/joshuapare/corekit/internal/logger"
	"github.com/joshuapare/corekit/internal/units"
)

var (
	allocCapacity int32
	allocOps      int
	allocMaxSize  int32
	allocSeed     int64
)

func init() {
	cmd := newAllocCmd()
	cmd.Flags().Int32Var(&allocCapacity, "capacity", 1<<20, "Managed range in bytes")
	cmd.Flags().IntVar(&allocOps, "ops", 10000, "Number of alloc/free operations")
	cmd.Flags().Int32Var(&allocMaxSize, "max-size", 4096, "Largest single allocation")
	cmd.Flags().Int64Var(&allocSeed, "seed", 1, "Random seed")
	rootCmd.AddCommand(cmd)
}

func newAllocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc",
		Short: "Run a random allocator simulation",
		Long: `The alloc command drives a block allocator with a random mix of
allocations and frees, re-validating every free-list invariant after each step.
It reports allocator statistics and the final free-list layout.

Example:
  corectl alloc --capacity 65536 --ops 5000
  corectl alloc --seed 42 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlloc()
		},
	}
	return cmd
}

// allocReport is the outcome of one simulation.
type allocReport struct {
	Capacity  int32           `json:"capacity"`
	Ops       int             `json:"ops"`
	Seed      int64           `json:"seed"`
	Live      int             `json:"live"`
	Allocated int32           `json:"allocated"`
	Free      int32           `json:"free"`
	FreeCount int             `json:"freeRanges"`
	Stats     alloc.Stats     `json:"stats"`
	Map       json.RawMessage `json:"map"`
}

func runAlloc() error {
	if allocMaxSize <= 0 {
		return errors.Newf("--max-size must be positive, got %d", allocMaxSize)
	}
	if allocOps < 0 {
		return errors.Newf("--ops must not be negative, got %d", allocOps)
	}

	ba, err := alloc.New(allocCapacity, &alloc.Options{Name: "corectl", ValidateEveryOp: true})
	if err != nil {
		return errors.Wrap(err, "create allocator")
	}

	printVerbose("Simulating %s ops over %s\n", units.Count(allocOps), units.Bytes(int64(allocCapacity)))

	rng := rand.New(rand.NewSource(allocSeed))
	var live []alloc.HeapItem
	for i := range allocOps {
		if len(live) > 0 && rng.Intn(2) == 0 {
			j := rng.Intn(len(live))
			if err := ba.Free(live[j]); err != nil {
				return errors.Wrapf(err, "op %d", i)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}

		size := 1 + rng.Int31n(allocMaxSize)
		item, err := ba.Alloc(size)
		if errors.Is(err, alloc.ErrNoSpace) {
			if free := ba.SizeFree(); free >= size {
				logger.Warn("alloc simulation fragmented",
					"op", i, "size", size, "free", free, "largest", ba.LargestFree().Size)
			} else {
				logger.Debug("alloc simulation out of space", "op", i, "size", size)
			}
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "op %d", i)
		}
		live = append(live, item)
	}

	if err := ba.Validate(); err != nil {
		return errors.Wrap(err, "final validation")
	}

	detailed, err := ba.DetailedMap()
	if err != nil {
		return errors.Wrap(err, "detailed map")
	}

	report := allocReport{
		Capacity:  ba.Size(),
		Ops:       allocOps,
		Seed:      allocSeed,
		Live:      len(live),
		Allocated: ba.SizeAllocated(),
		Free:      ba.SizeFree(),
		FreeCount: ba.Len(),
		Stats:     ba.Stats(),
		Map:       detailed,
	}

	if jsonOut {
		return printJSON(report)
	}
	printAllocReport(report, ba.LargestFree())
	return nil
}

func printAllocReport(r allocReport, largest alloc.HeapItem) {
	printInfo("Allocator Simulation (seed %d)\n", r.Seed)
	printInfo("  Capacity:     %s\n", units.Bytes(int64(r.Capacity)))
	printInfo("  Operations:   %s\n", units.Count(r.Ops))
	printInfo("  Live blocks:  %s\n", units.Count(r.Live))
	printInfo("  Allocated:    %s bytes\n", units.Count(r.Allocated))
	printInfo("  Free:         %s bytes in %s ranges\n", units.Count(r.Free), units.Count(r.FreeCount))
	printInfo("  Largest free: %s\n\n", largest)

	printInfo("Statistics:\n")
	printInfo("  Alloc calls:       %s (%s failed)\n",
		units.Count(r.Stats.AllocCalls), units.Count(r.Stats.AllocFailures))
	printInfo("  Free calls:        %s\n", units.Count(r.Stats.FreeCalls))
	printInfo("  Splits:            %s\n", units.Count(r.Stats.SplitCount))
	printInfo("  Coalesce forward:  %s\n", units.Count(r.Stats.CoalesceForward))
	printInfo("  Coalesce backward: %s\n", units.Count(r.Stats.CoalesceBackward))
}
