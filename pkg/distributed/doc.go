// Package distributed aggregates accumulator snapshots across multiple
// application instances using Redis as the coordination backend.
//
// Each instance keeps a local accumulator on its own hot path and
// periodically publishes a snapshot to a shared Redis hash. Any instance
// (or an external reader) can fetch every published snapshot and merge
// them into the global statistic. The merge is count-weighted and exact,
// so the combined result equals what a single accumulator would have
// produced over all instances' observations.
//
// # Quick Start
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//
//	store, err := distributed.New(distributed.Config{
//		Redis:      rdb,
//		Key:        "pipeline:latency",
//		InstanceID: "worker-1",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	// Publish this instance's state.
//	_ = store.Publish(ctx, acc.Snapshot())
//
//	// Read the global statistic.
//	global, err := store.Combined(ctx)
//	if err == nil {
//		fmt.Println(global.Result())
//	}
//
// # Consistency
//
// Snapshots are published whole and replace the previous snapshot for the
// same instance ID, so Combined always sees each instance's state at a
// single point in time. Different instances may have published at
// different moments; the combined result is a consistent merge of those
// moments, not a live view.
//
// Publishing is idempotent per instance: re-publishing the same snapshot
// leaves the combined result unchanged, because snapshots replace rather
// than add.
//
// # Error Handling
//
//	store, err := distributed.New(config)
//	if err != nil {
//		// ValidationError: missing Redis client or key
//	}
//
//	_, err = store.Combined(ctx)
//	switch {
//	case errors.IsEmptyAccumulator(err):
//		// no instance has published yet
//	default:
//		var redisErr *distributed.RedisError
//		if stderrors.As(err, &redisErr) {
//			// Redis operation failed
//		}
//	}
package distributed
