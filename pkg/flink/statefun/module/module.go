// Package module loads remote function endpoints from HCL module files.
//
// A module file declares one block per remote function, labelled with
// the function's type:
//
//	function "example/greeter" {
//	  endpoint = "http://${env.GREETER_HOST}/statefun"
//	  timeout  = "10s"
//	}
//
// Environment variables are available to expressions under env.
package module

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/sjwiesman/statefun-go/pkg/flink/statefun"
	"github.com/sjwiesman/statefun-go/pkg/flink/statefun/httpfn"
	"github.com/zclconf/go-cty/cty"
)

type hclModuleFile struct {
	Functions []*hclFunction `hcl:"function,block"`
}

type hclFunction struct {
	Type     string `hcl:"type,label"`
	Endpoint string `hcl:"endpoint"`
	Timeout  string `hcl:"timeout,optional"`
}

// Load parses the module file at path into a Registry.
func Load(path string) (*httpfn.Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse module file %s: %w", path, diags)
	}

	return decode(file, path)
}

// Parse parses module source into a Registry. filename is only
// used in diagnostics.
func Parse(src []byte, filename string) (*httpfn.Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse module file %s: %w", filename, diags)
	}

	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (*httpfn.Registry, error) {
	var parsed hclModuleFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode module file %s: %w", filename, diags)
	}

	specs := make([]httpfn.HttpFunctionSpec, 0, len(parsed.Functions))
	for _, function := range parsed.Functions {
		spec, err := function.toSpec()
		if err != nil {
			return nil, fmt.Errorf("invalid function in %s: %w", filename, err)
		}
		specs = append(specs, spec)
	}

	return httpfn.NewRegistryFromSpecs(specs...)
}

func (function *hclFunction) toSpec() (httpfn.HttpFunctionSpec, error) {
	funcType, err := statefun.ParseFunctionType(function.Type)
	if err != nil {
		return httpfn.HttpFunctionSpec{}, err
	}

	spec, err := httpfn.NewHttpFunctionSpec(funcType, function.Endpoint)
	if err != nil {
		return httpfn.HttpFunctionSpec{}, err
	}

	if function.Timeout != "" {
		timeout, err := time.ParseDuration(function.Timeout)
		if err != nil {
			return httpfn.HttpFunctionSpec{}, fmt.Errorf("invalid timeout for %s: %w", funcType, err)
		}

		spec.Timeout = timeout
		if err := spec.Validate(); err != nil {
			return httpfn.HttpFunctionSpec{}, err
		}
	}

	return spec, nil
}

func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			env[pair[0]] = cty.StringVal(pair[1])
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
