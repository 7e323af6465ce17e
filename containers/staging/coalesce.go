package staging

import "sort"

// coalesce aligns all ranges, sorts them, and merges overlapping or adjacent ones.
// Aligned ends are clamped to the buffer size.
func (b *Buffer) coalesce() []Range {
	if len(b.ranges) == 0 {
		return nil
	}

	limit := int64(len(b.data))
	aligned := make([]Range, len(b.ranges))
	for i, r := range b.ranges {
		start := r.Off &^ (b.align - 1)
		end := min((r.End()+b.align-1)&^(b.align-1), limit)
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.End() {
			current.Len = max(current.End(), next.End()) - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
