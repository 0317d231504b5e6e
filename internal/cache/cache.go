// Package cache provides the small caching layer used to memoize built
// family chains. Many targets share the same leaf family, so repeated
// batch rows hit the cache instead of re-walking the hierarchy.
package cache

import "time"

// Cache defines the interface for value caching.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	Clear()
}

// ChainKey generates the cache key for a family chain.
func ChainKey(familyID string) string {
	return "chain:v1:" + familyID
}
