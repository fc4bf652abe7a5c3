package nitrebed

import (
	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/tuning"
)

// HintStack is one example stack shown in interaction help. Liquids are
// presented inside Container.
type HintStack struct {
	Item      string  `json:"item"`
	Count     int     `json:"count"`
	Container string  `json:"container,omitempty"`
	Litres    float64 `json:"litres,omitempty"`
}

func buildHints(cats *catalogs.Catalogs, m *Materials, tune tuning.NitreBed) []HintStack {
	container := ""
	if d, ok := cats.Item(tune.HintContainer); ok && d.IsContainer() {
		container = d.ID
	} else {
		for _, d := range cats.SortedItems() {
			if d.IsContainer() {
				container = d.ID
				break
			}
		}
	}

	var out []HintStack
	for _, d := range cats.SortedItems() {
		if d.IsLiquid() {
			if m.FillAmountPerLitre(d.ID) <= 0 || d.FillAmount <= 0 {
				continue
			}
			if container == "" {
				out = append(out, HintStack{Item: d.ID, Count: 1})
				continue
			}
			out = append(out, HintStack{Item: d.ID, Count: 1, Container: container, Litres: tune.HintContainerLitres})
			continue
		}
		if d.FillAmount > 0 {
			out = append(out, HintStack{Item: d.ID, Count: 1})
		}
	}
	return out
}

// Hints lists the materials a bed accepts.
func (r *Registry) Hints() []HintStack {
	return append([]HintStack(nil), r.hints...)
}

// SourceHints lists the same materials with the item counts needed to
// convert src into a bed.
func (r *Registry) SourceHints(src *SourceParams) []HintStack {
	out := r.Hints()
	for i := range out {
		if out[i].Container != "" {
			continue
		}
		if n := RequiredUnits(src.MaterialRequired, r.Materials.FillAmount(out[i].Item)); n > 0 {
			out[i].Count = n
		}
	}
	return out
}
