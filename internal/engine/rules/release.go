package rules

import (
	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

// ReleaseQueue defers party releases until the battle is over. It is
// consumed by exactly one CommitReleases per battle and is always empty
// afterwards.
type ReleaseQueue struct {
	slots *nz.ReleaseQueue
}

// NewReleaseQueue drives the given slots. Nil starts from an empty queue.
func NewReleaseQueue(slots *nz.ReleaseQueue) *ReleaseQueue {
	if slots == nil {
		slots = &nz.ReleaseQueue{}
	}
	return &ReleaseQueue{slots: slots}
}

// ClearQueue unmarks every slot
func (q *ReleaseQueue) ClearQueue() {
	*q.slots = nz.ReleaseQueue{}
}

// EnqueueSlot marks a slot for release. Indexes outside the party are ignored.
func (q *ReleaseQueue) EnqueueSlot(index int) {
	if index < 0 || index >= nz.MaxPartySize {
		return
	}
	q.slots[index] = true
}

// Queued returns the marked slots in ascending order
func (q *ReleaseQueue) Queued() []int {
	var out []int
	for i, marked := range q.slots {
		if marked {
			out = append(out, i)
		}
	}
	return out
}

// CommitReleases applies the queued releases after a battle and returns how
// many occupied slots were released. Link battles and releases that would
// leave no creature in the party are declined. The queue is cleared on
// every path.
func (q *ReleaseQueue) CommitReleases(party Party, flags nz.BattleTypeFlags) int {
	defer q.ClearQueue()

	if flags.Has(nz.BattleTypeLink) {
		return 0
	}

	size := min(party.Size(), nz.MaxPartySize)
	if q.survivors(party, size) == 0 {
		return 0
	}

	released := 0
	for i := size - 1; i >= 0; i-- {
		if !q.slots[i] {
			continue
		}
		if party.SpeciesOrEgg(i) != nz.SpeciesNone {
			released++
		}
		party.Zero(i)
	}

	party.Compact()
	return released
}

// survivors counts the creatures, not eggs, that stay when the queue is applied
func (q *ReleaseQueue) survivors(party Party, size int) int {
	count := 0
	for i := 0; i < size; i++ {
		if party.SpeciesOrEgg(i).IsReal() && !q.slots[i] {
			count++
		}
	}
	return count
}
