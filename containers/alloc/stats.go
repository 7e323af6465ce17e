package alloc

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// Stats holds allocator call counters for testing and instrumentation.
type Stats struct {
	AllocCalls       int // Total Alloc() calls
	AllocFailures    int // Alloc() calls that returned ErrNoSpace
	FreeCalls        int // Total Free() calls
	SplitCount       int // Free ranges split by Alloc()
	CoalesceForward  int // Merges with the right neighbor
	CoalesceBackward int // Merges with the left neighbor
}

// Stats returns a snapshot of the call counters. Counters reset on Init.
func (ba *BlockAllocator) Stats() Stats { return ba.stats }

// WriteDetailedMap writes a JSON object describing the allocator:
//
//	{"name":"staging","capacity":100,"allocated":60,"free":40,
//	 "largestFree":30,"freeRanges":[{"offset":10,"size":10},{"offset":70,"size":30}]}
func (ba *BlockAllocator) WriteDetailedMap(w *jwriter.Writer) {
	obj := w.Object()
	obj.Maybe("name", ba.name != "").String(ba.name)
	obj.Name("capacity").Int(int(ba.capacity))
	obj.Name("allocated").Int(int(ba.SizeAllocated()))
	obj.Name("free").Int(int(ba.SizeFree()))
	obj.Name("largestFree").Int(int(ba.LargestFree().Size))

	ranges := obj.Name("freeRanges").Array()
	ba.VisitFree(func(it HeapItem) bool {
		r := ranges.Object()
		r.Name("offset").Int(int(it.Offset))
		r.Name("size").Int(int(it.Size))
		r.End()
		return true
	})
	ranges.End()
	obj.End()
}

// DetailedMap renders WriteDetailedMap into a byte slice.
func (ba *BlockAllocator) DetailedMap() ([]byte, error) {
	w := jwriter.NewWriter()
	ba.WriteDetailedMap(&w)
	if err := w.Error(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
