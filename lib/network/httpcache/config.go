package httpcache

import (
	"fmt"
)

const (
	MemoryAdapterName = "mem"
	RedisAdapterName  = "redis"
)

// NewAdapter builds a cache adapter from a name. `redisAddrs` maps ring shard
// names to addresses and is only used by the redis adapter.
func NewAdapter(name string, poolSize int, redisAddrs map[string]string) (Adapter, error) {
	switch name {
	case MemoryAdapterName:
		return NewMemCacheAdapter(poolSize), nil
	case RedisAdapterName:
		opt := RedisRingOptions{Addrs: redisAddrs}
		return NewRedisCacheAdapter(&opt), nil
	default:
		return nil, fmt.Errorf("http cache adapter not found: %s", name)
	}
}
