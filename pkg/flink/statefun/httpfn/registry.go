package httpfn

import (
	"fmt"
	"sort"

	"github.com/sjwiesman/statefun-go/pkg/flink/statefun"
)

// Registry maps each FunctionType to the HttpFunctionSpec used to reach it.
// It is built once and never modified afterwards, so it may be read
// from any number of goroutines without synchronization.
type Registry struct {
	specs map[statefun.FunctionType]HttpFunctionSpec
}

// NewRegistry builds a Registry from a copy of specs. Every spec must be
// valid and registered under its own FunctionType. A nil or empty map
// yields an empty registry for which every lookup fails.
func NewRegistry(specs map[statefun.FunctionType]HttpFunctionSpec) (*Registry, error) {
	registry := &Registry{
		specs: make(map[statefun.FunctionType]HttpFunctionSpec, len(specs)),
	}

	for funcType, spec := range specs {
		if spec.FunctionType != funcType {
			return nil, fmt.Errorf("spec for %s is registered under %s", spec.FunctionType, funcType)
		}

		if err := spec.Validate(); err != nil {
			return nil, err
		}

		registry.specs[funcType] = spec.frozen()
	}

	return registry, nil
}

// NewRegistryFromSpecs builds a Registry keyed by each spec's FunctionType.
// Every spec must be valid and each FunctionType may appear only once.
func NewRegistryFromSpecs(specs ...HttpFunctionSpec) (*Registry, error) {
	module := make(map[statefun.FunctionType]HttpFunctionSpec, len(specs))
	for _, spec := range specs {
		if _, exists := module[spec.FunctionType]; exists {
			return nil, fmt.Errorf("function %s is registered more than once", spec.FunctionType)
		}

		module[spec.FunctionType] = spec
	}

	return NewRegistry(module)
}

func emptyRegistry() *Registry {
	return &Registry{specs: map[statefun.FunctionType]HttpFunctionSpec{}}
}

// Lookup returns the spec registered for funcType.
func (registry *Registry) Lookup(funcType statefun.FunctionType) (HttpFunctionSpec, bool) {
	spec, exists := registry.specs[funcType]
	if !exists {
		return HttpFunctionSpec{}, false
	}

	return spec.frozen(), true
}

// Len returns the number of registered function types.
func (registry *Registry) Len() int {
	return len(registry.specs)
}

// FunctionTypes returns the registered types in lexical order.
func (registry *Registry) FunctionTypes() []statefun.FunctionType {
	types := make([]statefun.FunctionType, 0, len(registry.specs))
	for funcType := range registry.specs {
		types = append(types, funcType)
	}

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})

	return types
}
