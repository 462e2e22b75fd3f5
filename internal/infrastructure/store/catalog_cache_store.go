package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

const statsKey = "courses:stats"

type CatalogCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
	statsTTL  time.Duration
}

func NewCatalogCacheStore(rdb *redis.Client) *CatalogCacheStore {
	return &CatalogCacheStore{
		rdb:       rdb,
		detailTTL: 60 * time.Minute, // 60 minutes
		listTTL:   30 * time.Minute, // 30 minutes
		statsTTL:  10 * time.Minute, // 10 minutes
	}
}

// check if CatalogCacheStore implements the ICatalogCache
var _ contract.ICatalogCache = (*CatalogCacheStore)(nil)

func courseDetailKey(id string) string { return fmt.Sprintf("courses:id:%s", id) }

func (c *CatalogCacheStore) GetCourseByID(ctx context.Context, id string) (*entity.Course, bool, error) {
	b, err := c.rdb.Get(ctx, courseDetailKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var course entity.Course
	if err := json.Unmarshal(b, &course); err != nil {
		return nil, false, nil
	}
	return &course, true, nil
}

func (c *CatalogCacheStore) SetCourseByID(ctx context.Context, id string, course *entity.Course) error {
	data, err := json.Marshal(course)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, courseDetailKey(id), data, c.detailTTL).Err()
}

func (c *CatalogCacheStore) InvalidateCourseByID(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, courseDetailKey(id)).Err()
}

func (c *CatalogCacheStore) GetCourseList(ctx context.Context, key string) (*contract.CachedCourseList, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var list contract.CachedCourseList
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, false, nil
	}
	return &list, true, nil
}

func (c *CatalogCacheStore) SetCourseList(ctx context.Context, key string, list *contract.CachedCourseList) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.listTTL).Err()
}

func (c *CatalogCacheStore) InvalidateCourseLists(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, "courses:list:*", 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	_, _ = pipe.Exec(ctx)
	return nil
}

func (c *CatalogCacheStore) GetStats(ctx context.Context) (*entity.CourseStats, bool, error) {
	b, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var stats entity.CourseStats
	if err := json.Unmarshal(b, &stats); err != nil {
		return nil, false, nil
	}
	return &stats, true, nil
}

func (c *CatalogCacheStore) SetStats(ctx context.Context, stats *entity.CourseStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, data, c.statsTTL).Err()
}

func (c *CatalogCacheStore) InvalidateStats(ctx context.Context) error {
	return c.rdb.Del(ctx, statsKey).Err()
}
