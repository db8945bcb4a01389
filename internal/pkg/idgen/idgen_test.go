package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("run")
	assert.Equal(t, "run_1", gen.Generate())
	assert.Equal(t, "run_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID("run")
	first := gen.Generate()
	second := gen.Generate()

	assert.True(t, strings.HasPrefix(first, "run_"))
	assert.Len(t, first, len("run_")+36)
	assert.NotEqual(t, first, second)
}
