package nuzlocke

// Party is the ordered set of party slots
type Party [MaxPartySize]Creature

// Size returns the number of slots
func (p *Party) Size() int {
	return len(p)
}

// SpeciesOrEgg reads the species of a slot; out-of-range slots read as empty
func (p *Party) SpeciesOrEgg(slot int) SpeciesID {
	if slot < 0 || slot >= len(p) {
		return SpeciesNone
	}
	return p[slot].SpeciesOrEgg()
}

// Zero clears a slot in place
func (p *Party) Zero(slot int) {
	if slot < 0 || slot >= len(p) {
		return
	}
	p[slot] = Creature{}
}

// Compact moves occupied slots to the front, keeping their relative order
func (p *Party) Compact() {
	next := 0
	for i := range p {
		if p[i].IsEmpty() {
			continue
		}
		if i != next {
			p[next] = p[i]
			p[i] = Creature{}
		}
		next++
	}
}

// Add places a creature in the first empty slot. It returns the slot, or -1
// when the party is full.
func (p *Party) Add(c Creature) int {
	for i := range p {
		if p[i].IsEmpty() {
			p[i] = c
			return i
		}
	}
	return -1
}

// Members returns the occupied slots in order
func (p *Party) Members() []Creature {
	out := make([]Creature, 0, len(p))
	for i := range p {
		if !p[i].IsEmpty() {
			out = append(out, p[i])
		}
	}
	return out
}
