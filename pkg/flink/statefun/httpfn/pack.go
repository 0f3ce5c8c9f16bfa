package httpfn

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// validMessage reports whether m is neither nil nor a typed nil pointer.
func validMessage(m proto.Message) bool {
	return m != nil && m.ProtoReflect().IsValid()
}

// pack wraps value in an Any unless it already is one.
func pack(value proto.Message) (*anypb.Any, error) {
	if !validMessage(value) {
		return nil, errors.New("cannot invoke a function with a nil argument")
	}

	switch record := value.(type) {
	case *anypb.Any:
		return record, nil
	default:
		packed, err := anypb.New(record)
		if err != nil {
			return nil, fmt.Errorf("failed to marshall value into any: %w", err)
		}
		return packed, nil
	}
}

// unpack copies value into receiver, unwrapping it unless the
// receiver is itself an Any.
func unpack(value *anypb.Any, receiver proto.Message) error {
	if !validMessage(receiver) {
		return errors.New("cannot unmarshall into nil receiver")
	}

	switch unmarshalled := receiver.(type) {
	case *anypb.Any:
		unmarshalled.TypeUrl = value.TypeUrl
		unmarshalled.Value = value.Value
		return nil
	default:
		return value.UnmarshalTo(receiver)
	}
}
