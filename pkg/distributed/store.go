package distributed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/runstats/pkg/common/errors"
	"github.com/vnykmshr/runstats/pkg/common/validation"
	"github.com/vnykmshr/runstats/pkg/metrics"
	"github.com/vnykmshr/runstats/pkg/reduction/runstats"
)

// Store aggregates accumulator state across multiple application instances
// using Redis as the coordination backend. Each instance periodically
// publishes its local snapshot; any instance can fetch all published
// snapshots and merge them into the global statistic.
type Store interface {
	// Publish writes this instance's snapshot to Redis, replacing the
	// previous snapshot for the same instance ID.
	Publish(ctx context.Context, snapshot runstats.Snapshot) error

	// Fetch returns the most recent snapshot of every instance, keyed by
	// instance ID.
	Fetch(ctx context.Context) (map[string]runstats.Snapshot, error)

	// Combined fetches all published snapshots and merges them into a
	// single accumulator. It fails with ErrEmptyAccumulator when no
	// instance has published yet.
	Combined(ctx context.Context) (runstats.Accumulator, error)

	// Instances lists the instance IDs that have published snapshots.
	Instances(ctx context.Context) ([]string, error)

	// Clear removes all published snapshots (useful for testing).
	Clear(ctx context.Context) error

	// Close removes this instance's snapshot and releases resources.
	Close() error
}

// Config holds configuration for a distributed snapshot store.
type Config struct {
	// Redis client for coordination
	Redis redis.UniversalClient

	// Key is the Redis key prefix for this store
	Key string

	// InstanceID uniquely identifies this application instance
	InstanceID string

	// RedisTimeout is the timeout for Redis operations
	RedisTimeout time.Duration

	// KeyTTL is how long Redis keys should live (defaults to 1 hour)
	KeyTTL time.Duration
}

// DefaultConfig returns a default distributed store configuration.
func DefaultConfig() Config {
	return Config{
		InstanceID:   generateInstanceID(),
		RedisTimeout: 500 * time.Millisecond,
		KeyTTL:       time.Hour,
	}
}

// store implements Store.
type store struct {
	config Config
	keys   map[string]string

	registry *metrics.Registry
}

// New creates a distributed snapshot store.
func New(config Config) (Store, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	config = applyConfigDefaults(config)

	return &store{
		config: config,
		keys:   redisKeys(config.Key),
	}, nil
}

// NewWithMetrics creates a store that reports Redis traffic to Prometheus,
// labelled with the store's key and instance ID.
func NewWithMetrics(config Config, metricsConfig metrics.Config) (Store, error) {
	s, err := New(config)
	if err != nil {
		return nil, err
	}

	if metricsConfig.Enabled {
		registry := metrics.DefaultRegistry
		if metricsConfig.Registry != nil {
			registry = metrics.NewRegistry(metricsConfig.Registry)
		}
		s.(*store).registry = registry
	}

	return s, nil
}

// validateConfig validates the store configuration.
func validateConfig(config Config) error {
	if config.Redis == nil {
		return errors.NewValidationError("distributed", "redis", nil, "cannot be nil").
			WithHint("provide a redis.UniversalClient")
	}
	if err := validation.ValidateNotEmpty("distributed", "key", config.Key); err != nil {
		return err
	}
	return nil
}

// applyConfigDefaults sets default values for unspecified config fields.
func applyConfigDefaults(config Config) Config {
	if config.InstanceID == "" {
		config.InstanceID = generateInstanceID()
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = 500 * time.Millisecond
	}
	if config.KeyTTL == 0 {
		config.KeyTTL = time.Hour
	}
	return config
}

// Publish writes this instance's snapshot to Redis.
func (s *store) Publish(ctx context.Context, snapshot runstats.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.NewOperationError("distributed", "Publish", err).
			WithContext("encoding snapshot")
	}

	start := time.Now()
	pipe := s.config.Redis.Pipeline()
	pipe.HSet(ctx, s.keys["snapshots"], s.config.InstanceID, payload)
	pipe.Expire(ctx, s.keys["snapshots"], s.config.KeyTTL)
	_, err = pipe.Exec(ctx)
	if err != nil {
		s.countRedisError("publish")
		return &RedisError{"publish", err}
	}

	if s.registry != nil {
		s.registry.SnapshotPublishes.WithLabelValues(s.config.Key, s.config.InstanceID).Inc()
		s.registry.PublishDuration.WithLabelValues(s.config.Key).Observe(time.Since(start).Seconds())
	}
	return nil
}

// Fetch returns the most recent snapshot of every instance.
func (s *store) Fetch(ctx context.Context) (map[string]runstats.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	raw, err := s.config.Redis.HGetAll(ctx, s.keys["snapshots"]).Result()
	if err != nil {
		s.countRedisError("fetch")
		return nil, &RedisError{"fetch", err}
	}

	snapshots := make(map[string]runstats.Snapshot, len(raw))
	for instanceID, payload := range raw {
		var snapshot runstats.Snapshot
		if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
			return nil, errors.NewOperationError("distributed", "Fetch", err).
				WithContext("decoding snapshot for instance " + instanceID)
		}
		snapshots[instanceID] = snapshot
	}

	if s.registry != nil {
		s.registry.SnapshotFetches.WithLabelValues(s.config.Key, s.config.InstanceID).Inc()
	}
	return snapshots, nil
}

// Combined fetches all published snapshots and merges them.
func (s *store) Combined(ctx context.Context) (runstats.Accumulator, error) {
	snapshots, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, errors.NewOperationError("distributed", "Combined", errors.ErrEmptyAccumulator).
			WithContext("no instance has published a snapshot")
	}

	var combined runstats.Accumulator
	for instanceID, snapshot := range snapshots {
		if combined == nil {
			combined = runstats.NewWithConfig(runstats.Config{
				Channels:  snapshot.Channels(),
				Reduction: snapshot.Reduction,
			})
		}
		if err := combined.Merge(snapshot); err != nil {
			return nil, errors.NewOperationError("distributed", "Combined", err).
				WithContext("merging snapshot from instance " + instanceID)
		}
	}
	return combined, nil
}

// Instances lists the instance IDs that have published snapshots.
func (s *store) Instances(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	ids, err := s.config.Redis.HKeys(ctx, s.keys["snapshots"]).Result()
	if err != nil {
		s.countRedisError("instances")
		return nil, &RedisError{"instances", err}
	}
	return ids, nil
}

// Clear removes all published snapshots.
func (s *store) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.RedisTimeout)
	defer cancel()

	if err := s.config.Redis.Del(ctx, s.keys["snapshots"]).Err(); err != nil {
		s.countRedisError("clear")
		return &RedisError{"clear", err}
	}
	return nil
}

// Close removes this instance's snapshot.
func (s *store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.RedisTimeout)
	defer cancel()

	if err := s.config.Redis.HDel(ctx, s.keys["snapshots"], s.config.InstanceID).Err(); err != nil {
		s.countRedisError("close")
		return &RedisError{"close", err}
	}
	return nil
}

func (s *store) countRedisError(operation string) {
	if s.registry != nil {
		s.registry.RedisErrors.WithLabelValues(s.config.Key, operation).Inc()
	}
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}
