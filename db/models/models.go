package models

import "sync"

var (
	registry   []any
	registryMu sync.Mutex
)

func registerModel(model any) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry = append(registry, model)
}

// GetModels returns every model that needs migrating.
func GetModels() []any {
	registryMu.Lock()
	defer registryMu.Unlock()

	return append([]any(nil), registry...)
}
