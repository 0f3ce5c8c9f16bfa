package httpfn

import (
	"fmt"
	"net/url"
	"time"

	"github.com/sjwiesman/statefun-go/pkg/flink/statefun"
)

// HttpFunctionSpec describes how to reach one remote function.
type HttpFunctionSpec struct {
	FunctionType statefun.FunctionType

	// Endpoint is the URL invocation requests are POSTed to.
	Endpoint *url.URL

	// Timeout optionally bounds a single call to this function.
	// Zero means the provider wide call timeout applies. It can only
	// tighten the shared call timeout, never extend it.
	Timeout time.Duration
}

// NewHttpFunctionSpec parses endpoint and returns a validated spec.
func NewHttpFunctionSpec(funcType statefun.FunctionType, endpoint string) (HttpFunctionSpec, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return HttpFunctionSpec{}, fmt.Errorf("invalid endpoint for %s: %w", funcType, err)
	}

	spec := HttpFunctionSpec{FunctionType: funcType, Endpoint: parsed}
	if err := spec.Validate(); err != nil {
		return HttpFunctionSpec{}, err
	}

	return spec, nil
}

func (spec HttpFunctionSpec) Validate() error {
	if spec.Endpoint == nil {
		return fmt.Errorf("missing endpoint for %s", spec.FunctionType)
	}

	if spec.Endpoint.Scheme != "http" && spec.Endpoint.Scheme != "https" {
		return fmt.Errorf("endpoint %s for %s must use http or https", spec.Endpoint, spec.FunctionType)
	}

	if spec.Endpoint.Host == "" {
		return fmt.Errorf("endpoint %s for %s has no host", spec.Endpoint, spec.FunctionType)
	}

	if spec.Timeout < 0 {
		return fmt.Errorf("timeout for %s cannot be negative", spec.FunctionType)
	}

	return nil
}

// frozen returns a copy that shares no mutable state with spec.
func (spec HttpFunctionSpec) frozen() HttpFunctionSpec {
	if spec.Endpoint != nil {
		endpoint := *spec.Endpoint
		if spec.Endpoint.User != nil {
			user := *spec.Endpoint.User
			endpoint.User = &user
		}
		spec.Endpoint = &endpoint
	}

	return spec
}
