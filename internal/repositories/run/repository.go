// Package run provides the interface for Nuzlocke run persistence
package run

//go:generate mockgen -destination=mock/mock_repository.go -package=runmock github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/run Repository

import (
	"context"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

// Repository defines the interface for run persistence
type Repository interface {
	// Create stores a new run
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a run with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a run by ID
	// Returns errors.NotFound if the run doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing run
	// Returns errors.NotFound if the run doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a run
	// Returns errors.NotFound if the run doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a run
type CreateInput struct {
	Run *nz.Run
}

// CreateOutput defines the output for creating a run
type CreateOutput struct {
	Run *nz.Run
}

// GetInput defines the input for getting a run
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a run
type GetOutput struct {
	Run *nz.Run
}

// UpdateInput defines the input for updating a run
type UpdateInput struct {
	Run *nz.Run
}

// UpdateOutput defines the output for updating a run
type UpdateOutput struct {
	Run *nz.Run
}

// DeleteInput defines the input for deleting a run
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a run
type DeleteOutput struct{}
