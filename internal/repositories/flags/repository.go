// Package flags persists per-run bit flags: the encountered bit of every area
// and the caught bit of every national dex entry. Each namespace is one Redis
// bitmap per run; bits are only ever set, and Reset drops the whole bitmap.
package flags

//go:generate mockgen -destination=mock/mock_repository.go -package=flagsmock github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/flags Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/bitmap"
)

// Namespaces used by the service
const (
	NamespaceAreas     = "areas"
	NamespaceDexCaught = "dex_caught"
)

// Repository defines the interface for bit flag persistence
type Repository interface {
	// Get loads all flags of a run, sized to input.Size. A run without flags
	// reads as all clear.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// IsSet reads a single flag
	IsSet(ctx context.Context, input IsSetInput) (*IsSetOutput, error)

	// Set turns flags on. Offsets already set are left alone.
	Set(ctx context.Context, input SetInput) (*SetOutput, error)

	// Reset clears every flag of a run
	Reset(ctx context.Context, input ResetInput) (*ResetOutput, error)
}

// GetInput defines the input for loading flags
type GetInput struct {
	RunID string
	Size  int
}

// GetOutput defines the output for loading flags
type GetOutput struct {
	Flags *bitmap.Bitmap
}

// IsSetInput defines the input for reading one flag
type IsSetInput struct {
	RunID  string
	Offset int
}

// IsSetOutput defines the output for reading one flag
type IsSetOutput struct {
	Set bool
}

// SetInput defines the input for setting flags
type SetInput struct {
	RunID   string
	Offsets []int
}

// SetOutput defines the output for setting flags
type SetOutput struct {
	// Changed counts offsets that were clear before this call
	Changed int
}

// ResetInput defines the input for clearing flags
type ResetInput struct {
	RunID string
}

// ResetOutput defines the output for clearing flags
type ResetOutput struct{}
