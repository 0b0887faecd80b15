package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"orders-backend/internal/app/config"
	"orders-backend/internal/app/ds"
)

const userKeyPrefix = "user:"

// Client кэш разрешённых пользователей поверх Redis. Снимает повторное
// сканирование всех клиентских вкладок мастер-книги на каждый запрос:
// запись живёт не дольше TTL, после чего пользователь разрешается заново.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:    cfg.User,
		Password:    cfg.Password,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{client: client, ttl: ttl}, nil
}

// SetUserInfo кладёт пользователя в кэш с TTL
func (c *Client) SetUserInfo(ctx context.Context, user *ds.UserInfo) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userKeyPrefix+user.Username, data, c.ttl).Err()
}

// GetUserInfo возвращает пользователя из кэша; промах — (nil, nil)
func (c *Client) GetUserInfo(ctx context.Context, username string) (*ds.UserInfo, error) {
	data, err := c.client.Get(ctx, userKeyPrefix+username).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user ds.UserInfo
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUserInfo инвалидирует запись кэша (например, после правки вкладки клиента)
func (c *Client) DeleteUserInfo(ctx context.Context, username string) error {
	return c.client.Del(ctx, userKeyPrefix+username).Err()
}
