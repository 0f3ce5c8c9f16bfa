package module

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/sjwiesman/statefun-go/pkg/flink/statefun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moduleSource = `
function "example/greeter" {
  endpoint = "http://greeter:8000/statefun"
  timeout  = "10s"
}

function "example/counter" {
  endpoint = "https://${env.COUNTER_HOST}/statefun"
}
`

func TestParse(t *testing.T) {
	t.Setenv("COUNTER_HOST", "counter.internal")

	registry, err := Parse([]byte(moduleSource), "module.hcl")
	require.NoError(t, err)
	assert.Equal(t, 2, registry.Len())

	greeter, exists := registry.Lookup(statefun.FunctionType{Namespace: "example", Type: "greeter"})
	require.True(t, exists)
	assert.Equal(t, "http://greeter:8000/statefun", greeter.Endpoint.String())
	assert.Equal(t, 10*time.Second, greeter.Timeout)

	counter, exists := registry.Lookup(statefun.FunctionType{Namespace: "example", Type: "counter"})
	require.True(t, exists)
	assert.Equal(t, "https://counter.internal/statefun", counter.Endpoint.String())
	assert.Equal(t, time.Duration(0), counter.Timeout, "timeout should default to the provider's")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.hcl")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
function "example/greeter" {
  endpoint = "http://greeter:8000/statefun"
}
`), 0o644))

	registry, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []statefun.FunctionType{{Namespace: "example", Type: "greeter"}}, registry.FunctionTypes())
}

func TestEmptyModule(t *testing.T) {
	registry, err := Parse([]byte(""), "empty.hcl")
	require.NoError(t, err)
	assert.Equal(t, 0, registry.Len())
}

func TestInvalidModules(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: `function "example/greeter" {`},
		{name: "missing endpoint", src: `function "example/greeter" {}`},
		{name: "bad type", src: `function "greeter" { endpoint = "http://greeter" }`},
		{name: "bad scheme", src: `function "example/greeter" { endpoint = "ftp://greeter" }`},
		{name: "unknown env", src: `function "example/greeter" { endpoint = "http://${env.STATEFUN_UNSET_HOST_VARIABLE}" }`},
		{name: "bad timeout", src: `
function "example/greeter" {
  endpoint = "http://greeter"
  timeout  = "soon"
}`},
		{name: "negative timeout", src: `
function "example/greeter" {
  endpoint = "http://greeter"
  timeout  = "-1s"
}`},
		{name: "duplicate", src: `
function "example/greeter" { endpoint = "http://a" }
function "example/greeter" { endpoint = "http://b" }
`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.src), c.name+".hcl")
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
