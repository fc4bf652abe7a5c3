package digestcodec

import (
	"math"
	"sort"
)

type mapWriter interface {
	Write(p []byte) (n int, err error)
}

// WriteSortedFloatMap emits a deterministic key-sorted encoding of a flat
// float record.
func WriteSortedFloatMap(w mapWriter, tmp *[8]byte, m map[string]float64) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		WriteString(w, k)
		WriteU64(w, tmp, math.Float64bits(m[k]))
	}
}
