// Package httpfn dispatches invocations to stateful functions that are
// deployed behind HTTP endpoints.
//
// A FunctionProvider owns one pooled transport and a Registry mapping each
// FunctionType to an HttpFunctionSpec. FunctionOfType binds a spec to that
// transport, so every HttpFunction shares the same connections and timeouts.
//
//	registry, err := httpfn.NewRegistry(map[statefun.FunctionType]httpfn.HttpFunctionSpec{
//		greeterType: greeterSpec,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	provider, err := httpfn.NewFunctionProvider(registry, httpfn.DefaultTransportConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer provider.Close()
//
//	function, err := provider.FunctionOfType(greeterType)
package httpfn

import (
	"log"
	"sync"

	"github.com/sjwiesman/statefun-go/pkg/flink/statefun"
)

// FunctionProvider hands out HttpFunctions for registered function types.
// It is safe for concurrent use.
type FunctionProvider struct {
	registry  *Registry
	transport *sharedTransport
	closeOnce sync.Once
}

// NewFunctionProvider validates config and builds the transport shared
// by every function the provider returns. A nil registry is treated
// as empty.
func NewFunctionProvider(registry *Registry, config TransportConfig) (*FunctionProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if registry == nil {
		registry = emptyRegistry()
	}

	log.Printf("creating http function provider: connect=%v read=%v write=%v call=%v max-conns=%d",
		config.ConnectTimeout(), config.ReadTimeout(), config.WriteTimeout(), config.CallTimeout(), config.MaxConns)
	for _, funcType := range registry.FunctionTypes() {
		spec, _ := registry.Lookup(funcType)
		log.Printf("> registering remote function %s at %s", funcType, spec.Endpoint)
	}

	return &FunctionProvider{
		registry:  registry,
		transport: newSharedTransport(config),
	}, nil
}

// FunctionOfType returns a new HttpFunction bound to the endpoint registered
// for funcType. It performs no I/O. Unregistered types fail with an
// *UnsupportedFunctionTypeError.
func (provider *FunctionProvider) FunctionOfType(funcType statefun.FunctionType) (*HttpFunction, error) {
	spec, exists := provider.registry.Lookup(funcType)
	if !exists {
		return nil, &UnsupportedFunctionTypeError{FunctionType: funcType}
	}

	return &HttpFunction{
		spec:      spec,
		transport: provider.transport,
	}, nil
}

// Registry returns the registry the provider looks function types up in.
func (provider *FunctionProvider) Registry() *Registry {
	return provider.registry
}

// Config returns the configuration the shared transport was built with.
func (provider *FunctionProvider) Config() TransportConfig {
	return provider.transport.config
}

// Close releases the idle connections held by the shared pool.
// Functions already handed out remain usable and will dial again.
func (provider *FunctionProvider) Close() error {
	provider.closeOnce.Do(provider.transport.close)
	return nil
}
