package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"goodVibes/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	keyTodoList = "goodvibes:todos:"
	keyTodoGen  = "goodvibes:todos:gen:"
)

// TodoCache хранит в Redis список задач каждого пользователя.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// GetList возвращает nil без ошибки при промахе.
func (c *TodoCache) GetList(ctx context.Context, userID string) ([]*models.Todo, error) {
	b, err := c.rdb.Get(ctx, keyTodoList+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := []*models.Todo{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Generation возвращает счётчик инвалидаций пользователя. Его нужно прочитать
// до обращения к хранилищу и передать в SetList.
func (c *TodoCache) Generation(ctx context.Context, userID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyTodoGen+userID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// SetList сохраняет список, только если после чтения gen не было инвалидаций.
// Устаревший список молча отбрасывается.
func (c *TodoCache) SetList(ctx context.Context, userID string, gen int64, list []*models.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	genKey := keyTodoGen + userID

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keyTodoList+userID, b, c.ttl)
			return nil
		})
		return err
	}, genKey)
	// ключ поколения изменился между WATCH и EXEC
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *TodoCache) Invalidate(ctx context.Context, userID string) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, keyTodoGen+userID)
		pipe.Del(ctx, keyTodoList+userID)
		return nil
	})
	return err
}
