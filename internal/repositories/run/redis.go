package run

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-nuzlocke/internal/redis"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

const (
	runKeyPrefix = "nuzlocke:run:"

	// Error messages
	errRunNil     = "run cannot be nil"
	errRunIDEmpty = "run ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis run repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed run repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateRun(input.Run); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	input.Run.CreatedAt = now
	input.Run.UpdatedAt = now

	data, err := json.Marshal(input.Run)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal run")
	}

	created, err := r.client.SetNX(ctx, runKey(input.Run.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create run")
	}
	if !created {
		return nil, errors.AlreadyExists("run already exists").WithMeta("run_id", input.Run.ID)
	}

	return &CreateOutput{Run: input.Run}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	result, err := r.client.Get(ctx, runKey(input.ID)).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("run %s not found", input.ID).WithMeta("run_id", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get run")
	}

	var run nz.Run
	if err := json.Unmarshal(result, &run); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal run")
	}

	return &GetOutput{Run: &run}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateRun(input.Run); err != nil {
		return nil, err
	}

	input.Run.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(input.Run)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal run")
	}

	updated, err := r.client.SetXX(ctx, runKey(input.Run.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to update run")
	}
	if !updated {
		return nil, errors.NotFoundf("run %s not found", input.Run.ID).WithMeta("run_id", input.Run.ID)
	}

	return &UpdateOutput{Run: input.Run}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	deleted, err := r.client.Del(ctx, runKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete run")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("run %s not found", input.ID).WithMeta("run_id", input.ID)
	}

	return &DeleteOutput{}, nil
}

func validateRun(run *nz.Run) error {
	if run == nil {
		return errors.InvalidArgument(errRunNil)
	}
	if run.ID == "" {
		return errors.InvalidArgument(errRunIDEmpty)
	}
	return nil
}

func runKey(id string) string {
	return runKeyPrefix + id
}
