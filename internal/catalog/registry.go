package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/datadonation/dds/internal/common"
)

// Descriptor declares one provider type and its ordered categories. Provider
// packages build a Descriptor and hand it to Register at startup.
type Descriptor struct {
	Type       string
	Label      string
	Categories []Category
}

var registry = struct {
	providers map[string]Descriptor
	mu        sync.RWMutex
}{
	providers: make(map[string]Descriptor),
}

// Register adds a provider descriptor to the process-wide registry. It is
// called once per provider during startup, before any catalog build or
// resolution; the registry is read-only afterwards.
func Register(d Descriptor) error {
	if d.Type == "" {
		return common.NewConfigError("provider descriptor is missing a type", nil)
	}
	if len(d.Categories) == 0 {
		return common.NewConfigError(
			fmt.Sprintf("provider %q declares no data categories", d.Type), nil)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.providers[d.Type]; exists {
		return fmt.Errorf("provider %q: %w", d.Type, common.ErrDuplicateEntry)
	}
	registry.providers[d.Type] = d
	return nil
}

// Provider looks up a registered provider descriptor by type.
func Provider(providerType string) (Descriptor, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	d, ok := registry.providers[providerType]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", common.ErrUnknownProvider, providerType)
	}
	return d, nil
}

// Providers returns all registered descriptors sorted by provider type.
func Providers() []Descriptor {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	all := make([]Descriptor, 0, len(registry.providers))
	for _, d := range registry.providers {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Type < all[j].Type })
	return all
}

// CategoryFor resolves a category by provider type and category name.
func CategoryFor(providerType, category string) (*Category, error) {
	d, err := Provider(providerType)
	if err != nil {
		return nil, err
	}
	for i := range d.Categories {
		if d.Categories[i].Name == category {
			return &d.Categories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q for provider %q", common.ErrUnknownCategory, category, providerType)
}
