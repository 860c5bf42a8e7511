package core

import (
	"fmt"
	"sort"
	"sync"
)

// ViewInfo describes a named aggregate view.
type ViewInfo struct {
	Key         string `json:"key"`
	Group       string `json:"group"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Dimension   string `json:"dimension"`
	Measure     string `json:"measure"`
	Stat        Stat   `json:"stat"`
}

// ViewDefinition pairs a view's metadata with the function that builds it.
type ViewDefinition struct {
	Info  ViewInfo
	Build func(*CleanTable) ([]Group, error)
}

// ViewResult is a built view.
type ViewResult struct {
	Info   ViewInfo `json:"info"`
	Groups []Group  `json:"groups"`
}

var (
	registry   = make(map[string]ViewDefinition)
	registryMu sync.RWMutex
)

// RegisterView adds a view definition to the registry.
// Panics if a view with the same key is already registered or Build is nil.
func RegisterView(def ViewDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if def.Build == nil {
		panic(fmt.Sprintf("view has no build function: %s", def.Info.Key))
	}
	if _, exists := registry[def.Info.Key]; exists {
		panic(fmt.Sprintf("view already registered: %s", def.Info.Key))
	}
	registry[def.Info.Key] = def
}

// GetView returns a view definition by key.
// Returns false if not found.
func GetView(key string) (ViewDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := registry[key]
	return def, ok
}

// AllViews returns all registered view definitions.
// Sorted by group then by key for consistent ordering.
func AllViews() []ViewDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]ViewDefinition, 0, len(registry))
	for _, def := range registry {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Group != result[j].Info.Group {
			return result[i].Info.Group < result[j].Info.Group
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ViewsByGroup returns all view definitions for a specific group, sorted by key.
func ViewsByGroup(group string) []ViewDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []ViewDefinition
	for _, def := range registry {
		if def.Info.Group == group {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ViewGroups returns all unique group names, sorted.
func ViewGroups() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	seen := make(map[string]bool)
	for _, def := range registry {
		seen[def.Info.Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// ViewCount returns the number of registered views.
func ViewCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// BuildView builds a registered view over t.
func BuildView(key string, t *CleanTable) (ViewResult, error) {
	def, ok := GetView(key)
	if !ok {
		return ViewResult{}, fmt.Errorf("view not found: %s", key)
	}
	groups, err := def.Build(t)
	if err != nil {
		return ViewResult{}, fmt.Errorf("build view %s: %w", key, err)
	}
	return ViewResult{Info: def.Info, Groups: groups}, nil
}

// BuildAllViews builds every registered view over t, in AllViews order.
func BuildAllViews(t *CleanTable) ([]ViewResult, error) {
	defs := AllViews()
	results := make([]ViewResult, 0, len(defs))
	for _, def := range defs {
		groups, err := def.Build(t)
		if err != nil {
			return nil, fmt.Errorf("build view %s: %w", def.Info.Key, err)
		}
		results = append(results, ViewResult{Info: def.Info, Groups: groups})
	}
	return results, nil
}
