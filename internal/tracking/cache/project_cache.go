package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/domain"
)

// Key prefix for cached projects: hc:project:{project_id}
const projectKeyPrefix = "hc:project:"

// ProjectCache is a best-effort read cache for projects. Redis failures are
// logged and treated as misses; they never fail the request.
type ProjectCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProjectCache(client *redis.Client, ttl time.Duration) *ProjectCache {
	return &ProjectCache{client: client, ttl: ttl}
}

func (c *ProjectCache) Get(ctx context.Context, id string) (*domain.Project, bool) {
	data, err := c.client.Get(ctx, projectKey(id)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] get %s: %v", id, err)
		return nil, false
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		log.Printf("[cache] decode %s: %v", id, err)
		return nil, false
	}
	return &p, true
}

func (c *ProjectCache) Set(ctx context.Context, p *domain.Project) {
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("[cache] encode %s: %v", p.ID, err)
		return
	}
	if err := c.client.Set(ctx, projectKey(p.ID), data, c.ttl).Err(); err != nil {
		log.Printf("[cache] set %s: %v", p.ID, err)
	}
}

func (c *ProjectCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, projectKey(id)).Err(); err != nil {
		log.Printf("[cache] invalidate %s: %v", id, err)
	}
}

func projectKey(id string) string {
	return projectKeyPrefix + id
}
