package main

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestAllocCommand_Text(t *testing.T) {
	withFlags(t, func() {
		jsonOut = false
		allocCapacity, allocOps, allocMaxSize, allocSeed = 4096, 500, 256, 7
	})

	out, err := captureOutput(t, runAlloc)
	require.NoError(t, err)
	require.Contains(t, out, "Allocator Simulation (seed 7)")
	require.Contains(t, out, "Capacity:     4.0 KiB")
	require.Contains(t, out, "Coalesce backward:")
}

func TestAllocCommand_JSON(t *testing.T) {
	withFlags(t, func() {
		jsonOut = true
		allocCapacity, allocOps, allocMaxSize, allocSeed = 1<<16, 2000, 1024, 42
	})

	out, err := captureOutput(t, runAlloc)
	require.NoError(t, err)

	var report struct {
		Capacity  int32 `json:"capacity"`
		Allocated int32 `json:"allocated"`
		Free      int32 `json:"free"`
		Map       struct {
			Name       string `json:"name"`
			FreeRanges []struct {
				Offset int32 `json:"offset"`
				Size   int32 `json:"size"`
			} `json:"freeRanges"`
		} `json:"map"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	require.Equal(t, int32(1<<16), report.Capacity)
	require.Equal(t, report.Capacity, report.Allocated+report.Free)
	require.Equal(t, "corectl", report.Map.Name)

	var sum int32
	for _, r := range report.Map.FreeRanges {
		sum += r.Size
	}
	require.Equal(t, report.Free, sum)
}

func TestAllocCommand_RejectsBadFlags(t *testing.T) {
	withFlags(t, func() { allocMaxSize = 0 })
	require.Error(t, runAlloc())

	withFlags(t, func() { allocMaxSize, allocCapacity = 16, 0 })
	require.Error(t, runAlloc())
}

func TestQueueCommand(t *testing.T) {
	withFlags(t, func() {
		jsonOut = true
		queueCapacity, queueProducers, queueConsumers, queueItems = 8, 3, 2, 2000
	})

	out, err := captureOutput(t, func() error { return runQueue(context.Background()) })
	require.NoError(t, err)

	var report queueReport
	require.NoError(t, json.Unmarshal([]byte(out), &report), out)
	require.Equal(t, uint32(8), report.Capacity)
	require.Equal(t, int64(6000), report.Pushed)
	require.Equal(t, report.Pushed, report.Popped)
}

func TestQueueCommand_Cancelled(t *testing.T) {
	withFlags(t, func() {
		quiet = true
		queueCapacity, queueProducers, queueConsumers, queueItems = 4, 1, 1, 1000
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runQueue(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestQueueCommand_RejectsBadFlags(t *testing.T) {
	withFlags(t, func() { queueConsumers = 0 })
	require.Error(t, runQueue(context.Background()))

	withFlags(t, func() { queueConsumers, queueCapacity = 1, 0 })
	require.Error(t, runQueue(context.Background()))
}

func TestRingCommand(t *testing.T) {
	for _, sorted := range []bool{false, true} {
		withFlags(t, func() {
			jsonOut = true
			ringItems, ringSorted = 3000, sorted
		})

		out, err := captureOutput(t, runRing)
		require.NoError(t, err)

		var report ringReport
		require.NoError(t, json.Unmarshal([]byte(out), &report), out)
		require.Equal(t, 3000, report.Items)
		require.Equal(t, sorted, report.Sorted)
		require.Equal(t, 4096, report.Width)
		require.GreaterOrEqual(t, report.PushTime, time.Duration(0))
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := captureOutput(t, func() error {
		rootCmd.SetArgs([]string{"--help"})
		defer rootCmd.SetArgs(nil)
		return rootCmd.Execute()
	})
	require.NoError(t, err)
	for _, sub := range []string{"alloc", "queue", "ring", "version"} {
		require.Contains(t, out, sub)
	}
}

func TestReadBuildInfo(t *testing.T) {
	bi := readBuildInfo()
	require.NotEmpty(t, bi.Version)
	require.NotEqual(t, "(devel)", bi.Version)
	// test binaries embed module data, so the toolchain version is known
	require.NotEqual(t, "unknown", bi.GoVersion)
	require.Equal(t, bi.Version, rootCmd.Version)
}

func TestVersionCommand_JSON(t *testing.T) {
	withFlags(t, func() { jsonOut = true })

	out, err := captureOutput(t, func() error {
		return versionCmd.RunE(versionCmd, nil)
	})
	require.NoError(t, err)

	var bi buildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &bi), out)
	require.Equal(t, readBuildInfo(), bi)
}
