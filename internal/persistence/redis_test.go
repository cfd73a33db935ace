package persistence

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCounter(t *testing.T) {
	var missing *Redis
	assert.Nil(t, missing.Counter())
	require.Error(t, missing.Ping(context.Background()))

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	r := &Redis{Client: client}
	assert.Same(t, client, r.Counter())
}
