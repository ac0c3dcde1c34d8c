// Package client is the network channel of the StaffKeeper client.
//
// # Overview
//
// Every backend call is described by a Call: a logical operation (Op), its
// path parameters, the request payload and a pointer the response is decoded
// into. A Transport carries calls over the wire; two are provided:
//
//   - HTTPTransport speaks JSON over HTTP to the REST API.
//   - GRPCTransport speaks to the gRPC service using structpb messages.
//
// A Channel wraps a transport with a chain of Interceptors and exposes typed
// operations (Login, Register, Ping and the employee calls). Interceptors see
// every call regardless of which component issued it, which is where request
// ids, bearer credentials, timeouts, logging and error handling are attached.
//
// # Errors
//
// Failed calls return *StatusError carrying an HTTP-style status. It unwraps
// to a class sentinel from internal/common (ErrUnauthorized, ErrForbidden,
// ErrUnavailable or ErrRequestFailed) and to the transport cause, so callers
// match with errors.Is. Status 0 means no response was received.
package client
