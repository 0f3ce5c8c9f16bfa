package httpfn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	sferrors "github.com/sjwiesman/statefun-go/internal/errors"
	"github.com/valyala/bytebufferpool"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

const contentType = "application/octet-stream"

// HttpFunction invokes one remote function through its provider's shared
// transport. It holds no connections of its own and is cheap to create;
// any number of HttpFunctions may invoke concurrently.
type HttpFunction struct {
	spec      HttpFunctionSpec
	transport *sharedTransport
}

func (function *HttpFunction) Spec() HttpFunctionSpec {
	return function.spec.frozen()
}

// Timeouts returns the timeouts applied to calls of this function.
func (function *HttpFunction) Timeouts() Timeouts {
	timeouts := function.transport.config.timeouts()
	if function.spec.Timeout > 0 && function.spec.Timeout < timeouts.Call {
		timeouts.Call = function.spec.Timeout
	}

	return timeouts
}

// Invoke sends argument to the remote function and decodes its reply
// into receiver. Both travel packed in an Any; an argument or receiver
// that already is an *anypb.Any is used as is. Failures are reported
// as *InvocationError.
func (function *HttpFunction) Invoke(ctx context.Context, argument proto.Message, receiver proto.Message) error {
	if err := function.invoke(ctx, argument, receiver); err != nil {
		return &InvocationError{
			FunctionType: function.spec.FunctionType,
			Endpoint:     function.spec.Endpoint.String(),
			Err:          err,
		}
	}

	return nil
}

func (function *HttpFunction) invoke(ctx context.Context, argument proto.Message, receiver proto.Message) error {
	if !validMessage(receiver) {
		return errors.New("cannot unmarshall into nil receiver")
	}

	packed, err := pack(argument)
	if err != nil {
		return err
	}

	payload, err := proto.Marshal(packed)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	if function.spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, function.spec.Timeout)
		defer cancel()
	}

	release, err := function.transport.acquire(ctx)
	if err != nil {
		return fmt.Errorf("no connection slot available: %w", err)
	}
	defer release()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, function.spec.Endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := function.transport.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	buffer := bytebufferpool.Get()
	defer bytebufferpool.Put(buffer)

	if _, err := buffer.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return sferrors.New(resp.StatusCode, "endpoint replied %s: %s", resp.Status, bytes.TrimSpace(buffer.Bytes()))
	}

	var reply anypb.Any
	if err := proto.Unmarshal(buffer.Bytes(), &reply); err != nil {
		return sferrors.New(resp.StatusCode, "failed to unmarshal response: %w", err)
	}

	if err := unpack(&reply, receiver); err != nil {
		return sferrors.New(resp.StatusCode, "unexpected response %s: %w", reply.TypeUrl, err)
	}

	return nil
}
