package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// ViewCounter считает просмотры товаров в redis. Счетчик вспомогательный:
// основное значение хранится в базе, redis дает дешевый горячий счетчик
// без записи в postgres на каждый показ.
type ViewCounter struct {
	client *redis.Client
}

func NewViewCounter(ctx context.Context, addr string) (*ViewCounter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}
	return &ViewCounter{client: client}, nil
}

func viewsKey(productID int64) string {
	return fmt.Sprintf("product:%d:views", productID)
}

// Increment увеличивает счетчик просмотров товара и возвращает новое значение.
func (v *ViewCounter) Increment(ctx context.Context, productID int64) (int64, error) {
	total, err := v.client.Incr(ctx, viewsKey(productID)).Result()
	if err != nil {
		return 0, errors.Wrap(err, "incr product views")
	}
	return total, nil
}

func (v *ViewCounter) Close() error {
	if err := v.client.Close(); err != nil {
		return errors.Wrap(err, "close redis client")
	}
	return nil
}
