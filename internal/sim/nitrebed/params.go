package nitrebed

import (
	"io"
	"log"

	"saltpeter.ai/internal/sim/catalogs"
	"saltpeter.ai/internal/sim/tuning"
)

const (
	DefaultHoursPerGrowth    = 72.0
	DefaultMaterialPerGrowth = 0.3
	DefaultDepletedBlock     = "SOIL_LOW_BARE"
	DefaultMaterialRequired  = 0.5
	DefaultItemsPerLitre     = 100.0
)

// Params is the tuning of one bed block type, resolved once at load.
type Params struct {
	Block             BlockID
	HoursPerGrowth    float64
	MaterialPerGrowth float64
	Depleted          BlockID
	Moist             BlockID
	Dry               BlockID
	Stages            Stages
}

// Variant returns the visual variant matching whether material is stored.
func (p *Params) Variant(hasMaterial bool) BlockID {
	if hasMaterial {
		return p.Moist
	}
	return p.Dry
}

// SourceParams describes a block that converts into a bed.
type SourceParams struct {
	Block            BlockID
	Bed              BlockID
	MaterialRequired float64
}

// Registry holds every resolved bed and source block type.
type Registry struct {
	log     *log.Logger
	cats    *catalogs.Catalogs
	tune    tuning.NitreBed
	stages  Stages
	beds    map[BlockID]*Params
	sources map[BlockID]*SourceParams

	Materials *Materials

	hints []HintStack
}

func NewRegistry(cats *catalogs.Catalogs, tune tuning.NitreBed, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Registry{
		log:       logger,
		cats:      cats,
		tune:      tune,
		beds:      map[BlockID]*Params{},
		sources:   map[BlockID]*SourceParams{},
		Materials: NewMaterials(cats, tune),
	}
	r.stages = r.resolveStages()

	// Palette order keeps warnings deterministic.
	for i, name := range cats.Blocks.Palette {
		def := cats.Blocks.Defs[name]
		if def.NitreBed != nil {
			r.beds[BlockID(i)] = r.resolveBed(BlockID(i), def)
		}
	}
	for i, name := range cats.Blocks.Palette {
		def := cats.Blocks.Defs[name]
		if def.NitreBedSource != nil {
			if sp, ok := r.resolveSource(BlockID(i), def); ok {
				r.sources[BlockID(i)] = sp
			}
		}
	}
	r.hints = buildHints(cats, r.Materials, tune)
	return r
}

func (r *Registry) Stages() Stages { return r.stages }

func (r *Registry) Bed(b BlockID) (*Params, bool) {
	p, ok := r.beds[b]
	return p, ok
}

func (r *Registry) IsBed(b BlockID) bool {
	_, ok := r.beds[b]
	return ok
}

func (r *Registry) Source(b BlockID) (*SourceParams, bool) {
	sp, ok := r.sources[b]
	return sp, ok
}

func (r *Registry) resolveStages() Stages {
	s := Stages{Valid: true}
	if len(r.tune.Stages) != 2 {
		r.log.Printf("warning: expected 2 bud stages, got %d; growth disabled", len(r.tune.Stages))
		s.Valid = false
		return s
	}
	lookup := func(id string) BlockID {
		b, ok := r.cats.BlockID(id)
		if !ok {
			r.log.Printf("warning: stage block %q not found; growth disabled", id)
			s.Valid = false
		}
		return b
	}
	s.Air = lookup("AIR")
	s.Bud0 = lookup(r.tune.Stages[0])
	s.Bud1 = lookup(r.tune.Stages[1])
	s.Full = lookup(r.tune.FullStage)
	return s
}

func (r *Registry) resolveBed(b BlockID, def catalogs.BlockDef) *Params {
	nb := def.NitreBed
	p := &Params{
		Block:             b,
		HoursPerGrowth:    firstPositive(nb.HoursPerGrowth, r.tune.HoursPerGrowth, DefaultHoursPerGrowth),
		MaterialPerGrowth: firstPositive(nb.MaterialPerGrowth, r.tune.MaterialPerGrowth, DefaultMaterialPerGrowth),
		Stages:            r.stages,
	}
	p.Moist, _ = r.cats.BlockID(nb.Moist)
	p.Dry, _ = r.cats.BlockID(nb.Dry)
	p.Depleted = r.resolveWithFallback(def.ID+" depleted_block", nb.DepletedBlock, r.tune.DepletedBlock, DefaultDepletedBlock)
	return p
}

func (r *Registry) resolveSource(b BlockID, def catalogs.BlockDef) (*SourceParams, bool) {
	src := def.NitreBedSource
	if src.Bed == "" {
		r.log.Printf("warning: %s: nitre_bed_source has no bed; please check the block type", def.ID)
		return nil, false
	}
	bed, ok := r.cats.BlockID(src.Bed)
	if !ok || !r.IsBed(bed) {
		r.log.Printf("warning: %s: could not resolve nitre bed block %q; please check the block type", def.ID, src.Bed)
		return nil, false
	}
	if src.MaterialRequired == nil {
		r.log.Printf("warning: %s: nitre_bed_source has no material_required; using %.2f", def.ID, r.materialRequired())
	}
	return &SourceParams{
		Block:            b,
		Bed:              bed,
		MaterialRequired: firstPositive(src.MaterialRequired, r.materialRequired()),
	}, true
}

func (r *Registry) materialRequired() float64 {
	if r.tune.MaterialRequired > 0 {
		return r.tune.MaterialRequired
	}
	return DefaultMaterialRequired
}

// resolveWithFallback tries each identifier in order and warns for every miss.
// AIR is the last resort.
func (r *Registry) resolveWithFallback(what string, candidates ...string) BlockID {
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if b, ok := r.cats.BlockID(id); ok {
			return b
		}
		r.log.Printf("warning: %s: block %q not found, falling back", what, id)
	}
	r.log.Printf("warning: %s: no candidate resolved, using AIR", what)
	return 0
}

func firstPositive(override *float64, fallbacks ...float64) float64 {
	if override != nil && *override > 0 {
		return *override
	}
	for _, v := range fallbacks {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Materials answers how much organic value items and liquids carry.
type Materials struct {
	cats                 *catalogs.Catalogs
	defaultPerLitre      float64
	defaultItemsPerLitre float64
}

func NewMaterials(cats *catalogs.Catalogs, tune tuning.NitreBed) *Materials {
	ipl := tune.DefaultItemsPerLitre
	if ipl <= 0 {
		ipl = DefaultItemsPerLitre
	}
	return &Materials{
		cats:                 cats,
		defaultPerLitre:      tune.DefaultFillPerLitre,
		defaultItemsPerLitre: ipl,
	}
}

// FillAmount is the value of a single unit of item; zero for unknown items.
func (m *Materials) FillAmount(item string) float64 {
	d, ok := m.cats.Item(item)
	if !ok {
		return 0
	}
	return d.FillAmount
}

// FillAmountPerLitre is the value of one litre of substance.
func (m *Materials) FillAmountPerLitre(substance string) float64 {
	d, ok := m.cats.Item(substance)
	if !ok {
		return 0
	}
	if d.FillAmountPerLitre != nil {
		return *d.FillAmountPerLitre
	}
	return m.defaultPerLitre
}

func (m *Materials) ItemsPerLitre(substance string) float64 {
	if d, ok := m.cats.Item(substance); ok && d.ItemsPerLitre > 0 {
		return d.ItemsPerLitre
	}
	return m.defaultItemsPerLitre
}
