package nitrebed

import "math"

// HeldStack is the single stack an actor is holding.
type HeldStack interface {
	// Item is the id of the held item, or "" when the hand is empty.
	Item() string
	Count() int
	TakeUnits(n int) int

	// IsContainer reports whether the stack is a liquid container.
	IsContainer() bool
	// Content is the liquid inside a container; substance is "" when it is empty.
	Content() (substance string, litres float64)
	// TakeLitres removes up to litres of liquid and returns the number of
	// liquid items actually removed.
	TakeLitres(litres float64) int

	MarkChanged()
}

// Notifier receives the side effects of a fill.
type Notifier interface {
	LiquidMoved(substance string, items int)
	ItemTaken(item string, units int)
}

// CanAccept reports whether held can supply a strictly positive fill amount.
func CanAccept(held HeldStack, m *Materials) bool {
	if held == nil || held.Item() == "" {
		return false
	}
	var available float64
	if held.IsContainer() {
		sub, litres := held.Content()
		if sub == "" || litres <= 0 {
			return false
		}
		perLitre := m.FillAmountPerLitre(sub)
		if perLitre <= 0 {
			return false
		}
		available = perLitre * litres
	} else {
		available = m.FillAmount(held.Item()) * float64(held.Count())
	}
	return available > materialEpsilon
}

// Fill tops up bed from held. An item stack gives a single unit; a container
// pours what the bed can take, limited by what it holds. It returns false
// without side effects when held has nothing usable.
func Fill(bed *BedInstance, held HeldStack, m *Materials, n Notifier) bool {
	if held == nil || held.Item() == "" {
		return false
	}
	var gained float64
	if held.IsContainer() {
		sub, litres := held.Content()
		if sub == "" || litres <= 0 {
			return false
		}
		perLitre := m.FillAmountPerLitre(sub)
		if perLitre*litres <= materialEpsilon {
			return false
		}
		requested := bed.RemainingCapacity() / perLitre
		taken := held.TakeLitres(requested)
		gained = float64(taken) / m.ItemsPerLitre(sub) * perLitre
		if n != nil {
			n.LiquidMoved(sub, taken)
		}
	} else {
		fill := m.FillAmount(held.Item())
		if fill <= materialEpsilon || held.Count() <= 0 {
			return false
		}
		item := held.Item()
		held.TakeUnits(1)
		gained = fill
		if n != nil {
			n.ItemTaken(item, 1)
		}
	}
	bed.AddMaterial(gained)
	held.MarkChanged()
	return true
}

// RequiredUnits is how many units of value fill pay for required material.
func RequiredUnits(required, fill float64) int {
	if fill <= 0 {
		return 0
	}
	// Tolerance keeps 0.5/0.1 from rounding up to 6.
	return int(math.Ceil(required/fill - 1e-9))
}

// PayConversion consumes material worth required from held in one go, as when
// a source block is turned into a bed. Nothing is taken unless held covers the
// whole amount.
func PayConversion(held HeldStack, m *Materials, required float64, n Notifier) bool {
	if held == nil || held.Item() == "" {
		return false
	}
	if held.IsContainer() {
		sub, litres := held.Content()
		if sub == "" || litres <= 0 {
			return false
		}
		perLitre := m.FillAmountPerLitre(sub)
		if perLitre <= materialEpsilon {
			return false
		}
		requiredLitres := required / perLitre
		if requiredLitres > litres+1e-9 {
			return false
		}
		taken := held.TakeLitres(requiredLitres)
		if n != nil {
			n.LiquidMoved(sub, taken)
		}
	} else {
		fill := m.FillAmount(held.Item())
		if fill <= materialEpsilon {
			return false
		}
		units := RequiredUnits(required, fill)
		if units > held.Count() {
			return false
		}
		item := held.Item()
		held.TakeUnits(units)
		if n != nil {
			n.ItemTaken(item, units)
		}
	}
	held.MarkChanged()
	return true
}
