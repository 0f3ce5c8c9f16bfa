// Package statefun holds the identifiers shared by the Stateful Functions
// runtime and the remote functions it invokes.
//
// The runtime reaches functions deployed behind HTTP endpoints through the
// httpfn package: each FunctionType is mapped to an endpoint, and every
// invocation of every function travels over one pooled transport.
package statefun
