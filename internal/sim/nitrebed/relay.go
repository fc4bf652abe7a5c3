package nitrebed

// Interaction is the actor side of a block interaction.
type Interaction struct {
	// Ctrl is the modifier key that has to be held to apply material.
	Ctrl bool
	Held HeldStack
}

func (in Interaction) holding() bool {
	return in.Held != nil && in.Held.Item() != "" && in.Held.Count() > 0
}

// CanStartFill gates the start of an interaction with a bed.
func CanStartFill(bed BedInstance, in Interaction, m *Materials) bool {
	if !in.Ctrl || !in.holding() {
		return false
	}
	if bed.Full() {
		return false
	}
	return CanAccept(in.Held, m)
}

// CanStartConversion gates the start of an interaction with a source block.
func CanStartConversion(in Interaction, m *Materials) bool {
	if !in.Ctrl || !in.holding() {
		return false
	}
	return CanAccept(in.Held, m)
}
