package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/engine/rules"
)

func TestIsShiny_KnownValues(t *testing.T) {
	testCases := []struct {
		name        string
		personality uint32
		trainerID   uint32
		want        bool
	}{
		{"all zero", 0x00000000, 0x00000000, true},
		{"all ones personality", 0xFFFFFFFF, 0x00000000, true},
		{"value seven", 0x00000007, 0x00000000, true},
		{"value eight", 0x00000008, 0x00000000, false},
		{"trainer halves cancel", 0x00000000, 0x12341234, true},
		{"trainer cancels personality", 0xABCD0000, 0x0000ABCD, true},
		{"trainer off by eight", 0xABCD0000, 0x0000ABC5, false},
		{"high personality only", 0x00090000, 0x00000000, false},
		{"everything mixed", 0x12345678, 0x00000000, false},
		{"mixed halves cancel", 0x12345678, 0x9ABCDEF0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &nz.Creature{Species: 288, Personality: tc.personality, TrainerID: tc.trainerID}
			assert.Equal(t, tc.want, rules.IsShiny(c))
		})
	}
}

func TestIsShiny_Boundary(t *testing.T) {
	// With the high halves zero the shiny value is the low personality half,
	// so every 16-bit value is reachable.
	for v := uint32(0); v <= 0xFFFF; v++ {
		c := &nz.Creature{Personality: v}
		if got := rules.IsShiny(c); got != (v < 8) {
			t.Fatalf("shiny value %#x: got %v", v, got)
		}
	}
}

func TestIsShiny_Pure(t *testing.T) {
	c := &nz.Creature{Species: 290, Personality: 0xDEADBEEF, TrainerID: 0x0BADF00D}
	before := *c

	first := rules.IsShiny(c)
	second := rules.IsShiny(c)

	assert.Equal(t, first, second)
	assert.Equal(t, before, *c)
	assert.Equal(t, uint16(0xDEAD^0xBEEF^0x0BAD^0xF00D), rules.ShinyValue(c.Personality, c.TrainerID))
}

func TestIsShiny_NilCreature(t *testing.T) {
	assert.False(t, rules.IsShiny(nil))
}
