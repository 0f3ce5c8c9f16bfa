// Command statefun-invoke sends a single string argument to a remote
// stateful function declared in an HCL module file and prints the reply.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/golang/protobuf/ptypes"
	"github.com/sjwiesman/statefun-go/pkg/flink/statefun"
	"github.com/sjwiesman/statefun-go/pkg/flink/statefun/httpfn"
	"github.com/sjwiesman/statefun-go/pkg/flink/statefun/module"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const usage = `Usage: statefun-invoke -module <file.hcl> -type <namespace/type> [-payload <text>]

Environment:
  STATEFUN_HTTP_TIMEOUT                   base timeout for connect, read and write (default 30s, calls get twice that)
  STATEFUN_HTTP_MAX_IDLE_CONNS_PER_HOST   idle connections kept per endpoint (default 0, unbounded)
  STATEFUN_HTTP_MAX_CONNS                 calls in flight across all functions (default 0, unbounded)
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("statefun-invoke", flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprint(flags.Output(), usage) }

	modulePath := flags.String("module", "", "HCL module file declaring remote functions")
	typeName := flags.String("type", "", "function type to invoke, as namespace/type")
	payload := flags.String("payload", "", "string argument sent to the function")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *modulePath == "" || *typeName == "" {
		flags.Usage()
		return fmt.Errorf("-module and -type are required")
	}

	funcType, err := statefun.ParseFunctionType(*typeName)
	if err != nil {
		return err
	}

	config, err := httpfn.LoadTransportConfig()
	if err != nil {
		return err
	}

	registry, err := module.Load(*modulePath)
	if err != nil {
		return err
	}

	provider, err := httpfn.NewFunctionProvider(registry, config)
	if err != nil {
		return err
	}
	defer provider.Close()

	function, err := provider.FunctionOfType(funcType)
	if err != nil {
		return err
	}

	var reply anypb.Any
	if err := function.Invoke(ctx, wrapperspb.String(*payload), &reply); err != nil {
		return err
	}

	var text wrapperspb.StringValue
	if ptypes.Is(&reply, &text) {
		if err := ptypes.UnmarshalAny(&reply, &text); err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, text.Value)
		return err
	}

	_, err = fmt.Fprintf(out, "%s (%d bytes)\n", reply.TypeUrl, len(reply.Value))
	return err
}
