package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"people-service/domain/models"
	"people-service/domain/repositories"
)

const (
	peopleListKey       = "people:all"
	peopleGenerationKey = "people:all:generation"
)

// PeopleListCache stores the full people list as one JSON value. The
// generation key has no TTL and only ever grows.
type PeopleListCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewPeopleListCache(client *RedisClient, ttl time.Duration) repositories.PersonListCache {
	return &PeopleListCache{client: client.Client(), ttl: ttl}
}

func (c *PeopleListCache) GetAll(ctx context.Context) ([]models.Person, bool, error) {
	raw, err := c.client.Get(ctx, peopleListKey).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var people []models.Person
	if err := json.Unmarshal(raw, &people); err != nil {
		return nil, false, fmt.Errorf("decode cached people: %w", err)
	}
	return people, true, nil
}

func (c *PeopleListCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, peopleGenerationKey).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return 0, err
	}
	return gen, nil
}

// SetAll stores people under WATCH on the generation key, so an Invalidate
// between the check and the write aborts the transaction.
func (c *PeopleListCache) SetAll(ctx context.Context, generation int64, people []models.Person) (bool, error) {
	raw, err := json.Marshal(people)
	if err != nil {
		return false, fmt.Errorf("encode people: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, peopleGenerationKey).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, peopleListKey, raw, c.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, peopleGenerationKey)

	if errors.Is(err, goredis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored, nil
}

func (c *PeopleListCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, peopleGenerationKey)
		pipe.Del(ctx, peopleListKey)
		return nil
	})
	return err
}
