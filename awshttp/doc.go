// Package awshttp builds, signs and dispatches authenticated HTTP requests
// to AWS and AWS-compatible backends.
//
// A Service describes the per-service knobs (endpoint prefix, protocol
// dialect, signing scheme, host resolution), a Request carries one
// operation's method, path, body and decoder, and Send runs the SigV4
// pipeline: shape the request, capture a timestamp, canonicalize, derive
// the signing key, attach the Authorization header, issue the call and
// decode the response into a typed value or a transport error.
//
// Service descriptors and Credentials are immutable values and safe to
// share across goroutines. The HTTP transport is pluggable via SendOver;
// retry, credential refresh and response streaming are deliberately left
// to callers.
package awshttp
