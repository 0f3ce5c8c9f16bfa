package statefun

import (
	"errors"
	"fmt"
	"strings"
)

// A reference to a stateful function, consisting of a namespace and a name.
// A function's type is part of a function's Address and serves as integral
// part of an individual function's identity. FunctionType values are
// comparable and are used directly as map keys.
type FunctionType struct {
	Namespace string
	Type      string
}

func (functionType FunctionType) String() string {
	return fmt.Sprintf("%s/%s", functionType.Namespace, functionType.Type)
}

// ParseFunctionType creates a FunctionType from its canonical
// string form `<namespace>/<type>`. The last '/' separates the
// namespace from the type, so namespaces may themselves contain '/'.
func ParseFunctionType(value string) (FunctionType, error) {
	position := strings.LastIndex(value, "/")
	if position < 0 {
		return FunctionType{}, fmt.Errorf("%q does not conform to the <namespace>/<type> format", value)
	}

	namespace := value[:position]
	name := value[position+1:]

	if len(namespace) == 0 {
		return FunctionType{}, errors.New("namespace cannot be empty")
	}

	if len(name) == 0 {
		return FunctionType{}, errors.New("type cannot be empty")
	}

	return FunctionType{Namespace: namespace, Type: name}, nil
}

// An Address is the unique identity of an individual stateful function, containing
// of the function's FunctionType and an unique identifier within the type. The function's
// type denotes the class of function to invoke, while the unique identifier addresses the
// invocation to a specific function instance.
type Address struct {
	FunctionType FunctionType
	Id           string
}

func (address Address) String() string {
	return fmt.Sprintf("%s/%s", address.FunctionType.String(), address.Id)
}
