package digestcodec

import (
	"bytes"
	"testing"
)

func TestWriteSortedFloatMapIsOrderIndependent(t *testing.T) {
	var a, b bytes.Buffer
	var tmp [8]byte
	WriteSortedFloatMap(&a, &tmp, map[string]float64{"x": 1, "y": 0.5, "a": 2})
	WriteSortedFloatMap(&b, &tmp, map[string]float64{"a": 2, "y": 0.5, "x": 1})
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("encoding depends on map order")
	}
}

func TestWriteStringIsLengthPrefixed(t *testing.T) {
	var a, b bytes.Buffer
	WriteString(&a, "ab")
	WriteString(&a, "c")
	WriteString(&b, "a")
	WriteString(&b, "bc")
	if bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("adjacent strings collided")
	}
}
