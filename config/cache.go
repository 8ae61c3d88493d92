package config

import "errors"

var _ Defaults = (*CacheConfig)(nil)
var _ Validator = (*CacheConfig)(nil)

type CacheMode string

const (
	CacheModeMemory CacheMode = "memory"
	CacheModeRedis  CacheMode = "redis"
	CacheModeNone   CacheMode = "none"
)

type CacheConfig struct {
	Mode  CacheMode   `mapstructure:"mode"`
	Redis RedisConfig `mapstructure:"redis"`
}

func (c CacheConfig) Defaults() map[string]any {
	return map[string]any{
		"mode": string(CacheModeNone),
	}
}

func (c CacheConfig) Validate() error {
	switch c.Mode {
	case CacheModeRedis, CacheModeMemory, CacheModeNone, CacheMode(""):
		return nil
	}

	return errors.New("core.db.cache.mode must be one of: memory, redis, none")
}
