package upload

// BatchSize is the number of records sent in one upsert.
const BatchSize = 50

// Chunk splits items into contiguous batches of at most size elements,
// preserving order. The batches share the backing array of items.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = BatchSize
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end:end])
	}
	return batches
}
