package core

import (
	"fmt"
	"sort"
	"sync"
)

// BucketInfo describes a named dashboard dataset.
type BucketInfo struct {
	Key         string `json:"key"`         // Unique identifier: "fc_receive"
	Group       string `json:"group"`       // Dashboard card: "FC", "Bin Check"
	Label       string `json:"label"`       // Display name: "FC Receive"
	Description string `json:"description"` // Drill-down dialog subtitle
	Order       int    `json:"order"`       // Dashboard position
}

// SelectFunc picks one dataset out of an analysis.
type SelectFunc func(AnalysisResult) Bucket

// BucketDefinition binds a bucket's metadata to its selector.
type BucketDefinition struct {
	Info   BucketInfo
	Select SelectFunc
}

var (
	registry   = make(map[string]BucketDefinition)
	registryMu sync.RWMutex
)

// Register adds a bucket definition to the registry.
// Panics if a bucket with the same key is already registered.
func Register(def BucketDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("bucket already registered: %s", def.Info.Key))
	}
	if def.Select == nil {
		panic(fmt.Sprintf("bucket %s has no selector", def.Info.Key))
	}

	registry[def.Info.Key] = def
}

// Get returns a bucket definition by key.
// Returns false if not found.
func Get(key string) (BucketDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// Lookup is Get with an error wrapping ErrUnknownBucket.
func Lookup(key string) (BucketDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return BucketDefinition{}, fmt.Errorf("%w: %s", ErrUnknownBucket, key)
	}
	return def, nil
}

// All returns all registered bucket definitions in dashboard order.
func All() []BucketDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]BucketDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Order != result[j].Info.Order {
			return result[i].Info.Order < result[j].Info.Order
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ByGroup returns all bucket definitions for one dashboard card.
func ByGroup(group string) []BucketDefinition {
	var result []BucketDefinition
	for _, def := range All() {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}
	return result
}

// BucketCount returns the number of registered buckets.
func BucketCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
