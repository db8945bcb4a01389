// Package journal records every resolved wild encounter of a run
package journal

//go:generate mockgen -destination=mock/mock_repository.go -package=journalmock github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal Repository

import (
	"context"
	"time"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

// Entry is one resolved wild encounter
type Entry struct {
	ID            string
	RunID         string
	Area          nz.AreaID
	Species       nz.SpeciesID
	Personality   uint32
	CaughtSpecies nz.SpeciesID
	BattleFlags   nz.BattleTypeFlags
	Dupe          bool
	Shiny         bool
	// AreaMarked is true when this encounter used up the area
	AreaMarked bool
	// Released counts the party slots released when the battle ended
	Released  int
	CreatedAt time.Time
}

// Repository defines the interface for encounter history persistence
type Repository interface {
	// Append stores a new entry
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if an entry with the same ID exists
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns the entries of a run, oldest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// DeleteRun removes every entry of a run
	DeleteRun(ctx context.Context, input DeleteRunInput) (*DeleteRunOutput, error)
}

// AppendInput defines the input for appending an entry
type AppendInput struct {
	Entry *Entry
}

// AppendOutput defines the output for appending an entry
type AppendOutput struct {
	Entry *Entry
}

// ListInput defines the input for listing entries
type ListInput struct {
	RunID string
	// Limit caps the number of entries returned. Zero means no limit.
	Limit int
}

// ListOutput defines the output for listing entries
type ListOutput struct {
	Entries []*Entry
}

// DeleteRunInput defines the input for deleting the entries of a run
type DeleteRunInput struct {
	RunID string
}

// DeleteRunOutput defines the output for deleting the entries of a run
type DeleteRunOutput struct {
	Deleted int
}
