package snapshotcodec

import (
	"math"
	"testing"
)

func TestFiniteRecord(t *testing.T) {
	got := FiniteRecord(map[string]float64{
		"organicMaterial": 0.5,
		"bad":             math.NaN(),
		"inf":             math.Inf(1),
		"":                1,
	})
	if len(got) != 1 || got["organicMaterial"] != 0.5 {
		t.Fatalf("FiniteRecord = %v", got)
	}
	if FiniteRecord(nil) != nil {
		t.Fatalf("nil record should stay nil")
	}
}
