package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"anubis/internal/domain/entity"
	"anubis/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// StatsCache is the cache-aside layer in front of the stats aggregates.
// Entries expire on their own; the autograde worker also deletes them
// whenever a submission for the assignment finishes processing.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func assignmentKey(assignment string) string {
	return fmt.Sprintf("stats:%s", assignment)
}

func studentKey(assignment, netid string) string {
	return fmt.Sprintf("stats:%s:%s", assignment, netid)
}

func (c *StatsCache) GetAssignment(ctx context.Context, assignment string) (entity.AssignmentStats, bool, error) {
	var stats entity.AssignmentStats
	ok, err := c.get(ctx, assignmentKey(assignment), &stats)
	return stats, ok, err
}

func (c *StatsCache) SetAssignment(ctx context.Context, stats entity.AssignmentStats) error {
	return c.set(ctx, assignmentKey(stats.AssignmentName), stats)
}

func (c *StatsCache) GetStudent(ctx context.Context, assignment, netid string) (entity.StudentAssignmentStat, bool, error) {
	var stat entity.StudentAssignmentStat
	ok, err := c.get(ctx, studentKey(assignment, netid), &stat)
	return stat, ok, err
}

func (c *StatsCache) SetStudent(ctx context.Context, stat entity.StudentAssignmentStat) error {
	return c.set(ctx, studentKey(stat.AssignmentName, stat.NetID), stat)
}

// Invalidate drops the aggregate entry and every per-student entry for the
// assignment.
func (c *StatsCache) Invalidate(ctx context.Context, assignment string) error {
	if err := c.rdb.Del(ctx, assignmentKey(assignment)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	iter := c.rdb.Scan(ctx, 0, studentKey(assignment, "*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	return nil
}

func (c *StatsCache) get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		// A stale or truncated entry should not fail the read path.
		logger(ctx).Warn("dropping undecodable stats cache entry", "key", key, "error", err)
		return false, nil
	}

	return true, nil
}

func (c *StatsCache) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}
