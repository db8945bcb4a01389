package flags

import (
	"context"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/bitmap"
	redisclient "github.com/KirkDiggler/rpg-nuzlocke/internal/redis"
)

const (
	// Key pattern: nuzlocke:run:{run_id}:flags:{namespace}
	keyPrefix = "nuzlocke:run:"

	errRunIDEmpty   = "run ID cannot be empty"
	errNegativeSize = "size cannot be negative"
	errBadOffset    = "offset cannot be negative"
)

// RedisConfig contains configuration for the Redis flags repository
type RedisConfig struct {
	Client    redisclient.Client
	Namespace string
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	if cfg.Namespace == "" {
		return errors.InvalidArgument("namespace cannot be empty")
	}
	return nil
}

type redisRepository struct {
	client    redisclient.Client
	namespace string
}

// NewRedis creates a Redis bitmap repository for one namespace
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client:    cfg.Client,
		namespace: cfg.Namespace,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}
	if input.Size < 0 {
		return nil, errors.InvalidArgument(errNegativeSize)
	}

	raw, err := r.client.Get(ctx, r.key(input.RunID)).Bytes()
	if err != nil && err != redisclient.Nil {
		return nil, errors.Wrapf(err, "failed to get %s flags", r.namespace)
	}

	return &GetOutput{Flags: bitmap.FromBytes(raw, input.Size)}, nil
}

func (r *redisRepository) IsSet(ctx context.Context, input IsSetInput) (*IsSetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}
	if input.Offset < 0 {
		return nil, errors.InvalidArgument(errBadOffset)
	}

	bit, err := r.client.GetBit(ctx, r.key(input.RunID), int64(input.Offset)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s flag", r.namespace)
	}

	return &IsSetOutput{Set: bit == 1}, nil
}

func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}
	for _, offset := range input.Offsets {
		if offset < 0 {
			return nil, errors.InvalidArgument(errBadOffset)
		}
	}
	if len(input.Offsets) == 0 {
		return &SetOutput{}, nil
	}

	key := r.key(input.RunID)
	pipe := r.client.TxPipeline()
	previous := make([]*redis.IntCmd, len(input.Offsets))
	for i, offset := range input.Offsets {
		previous[i] = pipe.SetBit(ctx, key, int64(offset), 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to set %s flags", r.namespace)
	}

	changed := 0
	for _, cmd := range previous {
		if cmd.Val() == 0 {
			changed++
		}
	}

	slog.Debug("Flags set",
		"run_id", input.RunID,
		"namespace", r.namespace,
		"offsets", input.Offsets,
		"changed", changed,
	)

	return &SetOutput{Changed: changed}, nil
}

func (r *redisRepository) Reset(ctx context.Context, input ResetInput) (*ResetOutput, error) {
	if input.RunID == "" {
		return nil, errors.InvalidArgument(errRunIDEmpty)
	}

	if err := r.client.Del(ctx, r.key(input.RunID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to reset %s flags", r.namespace)
	}

	return &ResetOutput{}, nil
}

func (r *redisRepository) key(runID string) string {
	return keyPrefix + runID + ":flags:" + r.namespace
}
