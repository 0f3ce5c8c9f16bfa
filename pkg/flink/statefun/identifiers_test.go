package statefun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionTypeString(t *testing.T) {
	funcType := FunctionType{Namespace: "example", Type: "greeter"}
	assert.Equal(t, "example/greeter", funcType.String())

	address := Address{FunctionType: funcType, Id: "bob"}
	assert.Equal(t, "example/greeter/bob", address.String())
}

func TestFunctionTypeAsMapKey(t *testing.T) {
	specs := map[FunctionType]string{
		{Namespace: "example", Type: "greeter"}: "a",
	}

	value, exists := specs[FunctionType{Namespace: "example", Type: "greeter"}]
	assert.True(t, exists, "structurally equal types should hash to the same key")
	assert.Equal(t, "a", value)

	_, exists = specs[FunctionType{Namespace: "example", Type: "other"}]
	assert.False(t, exists)
}

func TestParseFunctionType(t *testing.T) {
	funcType, err := ParseFunctionType("org.foo/greeter")
	assert.NoError(t, err)
	assert.Equal(t, FunctionType{Namespace: "org.foo", Type: "greeter"}, funcType)

	funcType, err = ParseFunctionType("org/foo/greeter")
	assert.NoError(t, err)
	assert.Equal(t, FunctionType{Namespace: "org/foo", Type: "greeter"}, funcType)
}

func TestParseFunctionTypeErrors(t *testing.T) {
	for _, value := range []string{"", "greeter", "/greeter", "example/"} {
		_, err := ParseFunctionType(value)
		assert.Error(t, err, "expected %q to be rejected", value)
	}
}
