package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the Redis surface the repositories use. Run state is stored as
// JSON strings; area and dex flags are stored as bitmaps (SETBIT/GETBIT).
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of a missing key
const Nil = redis.Nil
