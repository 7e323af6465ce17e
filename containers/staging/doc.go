// Package staging binds allocator offsets to a real byte buffer.
//
// A Buffer owns a []byte of fixed capacity and an alloc.BlockAllocator over the same
// range. Callers sub-allocate Spans, fill them through Write or the aliased Bytes
// slice, and mark what they touched. Flush hands the touched bytes to a caller
// supplied sink in offset order, after aligning and merging the dirty ranges:
//
//	sb, _ := staging.New(64<<10, nil)
//	span, err := sb.Alloc(512)
//	if err != nil {
//	    return err
//	}
//	if err := sb.Write(span.Item, 0, payload); err != nil {
//	    return err
//	}
//	err = sb.Flush(ctx, func(off int64, p []byte) error {
//	    _, err := dst.WriteAt(p, off)
//	    return err
//	})
//
// A Buffer is NOT thread-safe. Hand finished spans to other goroutines through a
// ptrqueue.Queue, not the Buffer itself.
package staging
