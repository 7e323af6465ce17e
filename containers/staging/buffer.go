package staging

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/corekit/containers/alloc"
	"github.com/joshuapare/corekit/internal/buf"
	"github.com/joshuapare/corekit/internal/logger"
	"github.com/joshuapare/corekit/internal/pow2"
)

const (
	// DefaultFlushAlignment is the granularity dirty ranges are widened to at flush time.
	DefaultFlushAlignment = 256

	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64
)

// Options configures a Buffer. A nil *Options selects the defaults.
type Options struct {
	// Name labels the buffer and its allocator in logs.
	Name string

	// FlushAlignment must be a power of two. Zero means DefaultFlushAlignment.
	FlushAlignment int64

	// ValidateEveryOp is forwarded to the allocator.
	ValidateEveryOp bool
}

// Range is a dirty byte range in buffer offsets.
type Range struct {
	Off int64
	Len int64
}

// End returns the exclusive end offset.
func (r Range) End() int64 { return r.Off + r.Len }

// Span is an allocation together with the bytes it covers. Bytes aliases the
// buffer and is capped at the span's end.
type Span struct {
	Item  alloc.HeapItem
	Bytes []byte
}

// Buffer is a fixed-size byte region managed by a first-fit allocator, with
// dirty-range tracking for flushing.
type Buffer struct {
	name   string
	data   []byte
	heap   *alloc.BlockAllocator
	ranges []Range // raw, coalesced at flush time
	align  int64
}

// New creates a buffer of capacity bytes, all free.
func New(capacity int32, opts *Options) (*Buffer, error) {
	if opts == nil {
		opts = &Options{}
	}
	align := opts.FlushAlignment
	if align == 0 {
		align = DefaultFlushAlignment
	}
	if align < 0 || align > 1<<30 || !pow2.Is(uint32(align)) {
		return nil, precondition(ErrBadOptions, "staging: flush alignment %d is not a power of two", align)
	}

	heap, err := alloc.New(capacity, &alloc.Options{
		Name:            opts.Name,
		ValidateEveryOp: opts.ValidateEveryOp,
	})
	if err != nil {
		return nil, errors.Wrap(err, "staging: new")
	}

	return &Buffer{
		name:   opts.Name,
		data:   make([]byte, capacity),
		heap:   heap,
		ranges: make([]Range, 0, defaultRangeCapacity),
		align:  align,
	}, nil
}

// Capacity returns the buffer size in bytes.
func (b *Buffer) Capacity() int32 { return int32(len(b.data)) }

// Allocator exposes the underlying allocator for inspection.
func (b *Buffer) Allocator() *alloc.BlockAllocator { return b.heap }

// Alloc reserves size bytes. The returned bytes keep whatever a previous owner of
// the range left there.
func (b *Buffer) Alloc(size int32) (Span, error) {
	item, err := b.heap.Alloc(size)
	if err != nil {
		if errors.Is(err, alloc.ErrNoSpace) {
			return Span{Item: alloc.NoItem}, errors.Wrapf(ErrNoSpace, "staging: alloc %d bytes", size)
		}
		return Span{Item: alloc.NoItem}, err
	}
	return Span{Item: item, Bytes: b.bytes(item)}, nil
}

// Free returns the span's range to the allocator. Dirty ranges already recorded
// for it are still flushed.
func (b *Buffer) Free(span Span) error {
	return b.heap.Free(span.Item)
}

// Bytes returns the slice covering item, or nil if item is outside the buffer.
func (b *Buffer) Bytes(item alloc.HeapItem) []byte {
	if _, err := buf.CheckRange(b.Capacity(), item.Offset, item.Size); err != nil {
		return nil
	}
	return b.bytes(item)
}

func (b *Buffer) bytes(item alloc.HeapItem) []byte {
	p, _ := buf.Slice(b.data, int(item.Offset), int(item.Size))
	return p
}

// MarkDirty records the whole of item as needing a flush.
func (b *Buffer) MarkDirty(item alloc.HeapItem) error {
	if _, err := buf.CheckRange(b.Capacity(), item.Offset, item.Size); err != nil {
		return precondition(ErrBadRange, "staging: mark %s: %v", item, err)
	}
	b.add(int64(item.Offset), int64(item.Size))
	return nil
}

// Write copies p into item at off and marks the written bytes dirty. The write
// must stay inside the item. An empty p is a no-op.
func (b *Buffer) Write(item alloc.HeapItem, off int32, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if _, err := buf.CheckRange(b.Capacity(), item.Offset, item.Size); err != nil {
		return precondition(ErrBadRange, "staging: write to %s: %v", item, err)
	}
	if len(p) > int(item.Size) {
		return precondition(ErrBadRange, "staging: write of %d bytes to %s", len(p), item)
	}
	if _, err := buf.CheckRange(item.Size, off, int32(len(p))); err != nil {
		return precondition(ErrBadRange, "staging: write at %d to %s: %v", off, item, err)
	}
	start := int(item.Offset + off)
	copy(b.data[start:start+len(p)], p)
	b.add(int64(start), int64(len(p)))
	return nil
}

func (b *Buffer) add(off, length int64) {
	b.ranges = append(b.ranges, Range{Off: off, Len: length})
}

// Flush hands every dirty range to fn in ascending offset order, after widening
// each to the flush alignment and merging overlaps. p aliases the buffer and is
// only valid during the call.
//
// The context is checked before each range. On cancellation or an fn error the
// dirty set is kept, so a later Flush retries every range.
func (b *Buffer) Flush(ctx context.Context, fn func(off int64, p []byte) error) error {
	if len(b.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	merged := b.coalesce()
	for _, r := range merged {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r.Off, b.data[r.Off:r.End()]); err != nil {
			return errors.Wrapf(err, "staging: flush [%d, %d)", r.Off, r.End())
		}
	}

	logger.Debug("staging flush", "buffer", b.name, "raw", len(b.ranges), "merged", len(merged))
	b.ranges = b.ranges[:0]
	return nil
}

// Discard forgets all dirty ranges without flushing them.
func (b *Buffer) Discard() {
	b.ranges = b.ranges[:0]
}

// DirtyRanges returns a copy of the raw, uncoalesced dirty ranges.
func (b *Buffer) DirtyRanges() []Range {
	result := make([]Range, len(b.ranges))
	copy(result, b.ranges)
	return result
}

// CoalescedRanges returns the ranges the next Flush would hand out.
func (b *Buffer) CoalescedRanges() []Range {
	return b.coalesce()
}
