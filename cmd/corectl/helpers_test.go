package main

import (
	"bytes"
	"os"
	"testing"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Drain concurrently so large reports cannot fill the pipe
	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	out := <-done

	return string(out), fnErr
}

// withFlags sets global flag variables for one test and restores them afterwards.
func withFlags(t *testing.T, set func()) {
	t.Helper()
	v, q, j := verbose, quiet, jsonOut
	ac, am, ao, as := allocCapacity, allocMaxSize, allocOps, allocSeed
	qc, qp, qn, qi := queueCapacity, queueProducers, queueConsumers, queueItems
	ri, rs := ringItems, ringSorted
	t.Cleanup(func() {
		verbose, quiet, jsonOut = v, q, j
		allocCapacity, allocMaxSize, allocOps, allocSeed = ac, am, ao, as
		queueCapacity, queueProducers, queueConsumers, queueItems = qc, qp, qn, qi
		ringItems, ringSorted = ri, rs
	})
	set()
}
