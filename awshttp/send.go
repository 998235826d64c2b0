package awshttp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http2"
)

// Doer is the pluggable HTTP transport. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultClient is the transport used by Send and SendUnsigned. No client
// timeout: deadlines come from the caller's context.
var DefaultClient Doer = newDefaultClient()

func newDefaultClient() *http.Client {
	transport := &http.Transport{}
	// HTTP/2 when the server negotiates it
	_ = http2.ConfigureTransport(transport)
	return &http.Client{Transport: transport}
}

var tracer = otel.Tracer("github.com/danthegoodman1/awsbase/awshttp")

// Send signs req with SigV4 and issues it over DefaultClient. Nothing
// happens until it is called: the timestamp is captured here, immediately
// before signing.
func Send[T any](ctx context.Context, service Service, creds Credentials, req *Request[T]) (T, error) {
	return SendOver(ctx, DefaultClient, service, &creds, req)
}

// SendUnsigned shapes and issues req without authentication headers.
func SendUnsigned[T any](ctx context.Context, service Service, req *Request[T]) (T, error) {
	return SendOver(ctx, DefaultClient, service, nil, req)
}

// SendOver is the full form: a caller-supplied transport, and nil creds for
// an unsigned send. The request is considered consumed after this call.
func SendOver[T any](ctx context.Context, client Doer, service Service, creds *Credentials, req *Request[T]) (T, error) {
	var zero T

	if creds != nil && service.Signer == SignS3 {
		return zero, &BadBodyError{Message: "TODO: S3 Signing Scheme not implemented."}
	}

	if req.Decoder == nil {
		return zero, &BadBodyError{Message: "request has no decoder"}
	}

	plan, err := req.plan()
	if err != nil {
		return zero, &BadBodyError{Message: err.Error()}
	}

	if service.Protocol == ProtocolJSON {
		plan.headers = append([]Pair{{Name: "x-amz-target", Value: service.TargetPrefix + "." + plan.name}}, plan.headers...)
	}

	// Cancelled before the timestamp is captured means no I/O at all
	if err := ctx.Err(); err != nil {
		return zero, &NetworkError{Err: err}
	}

	var wire SignedRequest
	if creds != nil {
		wire = sign(service, *creds, time.Now(), plan)
	} else {
		wire = prepare(service, time.Now(), plan)
	}
	wire.Headers = append(wire.Headers, Pair{Name: "amz-sdk-invocation-id", Value: uuid.NewString()})

	logger.Debug().
		Str("operation", plan.name).
		Str("method", wire.Method).
		Str("host", service.Host()).
		Bool("signed", creds != nil).
		Msg("sending request")

	httpReq, err := http.NewRequestWithContext(ctx, wire.Method, wire.URL, bytes.NewReader(plan.payload))
	if err != nil {
		return zero, &BadURLError{URL: wire.URL}
	}
	for _, h := range wire.Headers {
		httpReq.Header.Add(h.Name, h.Value)
	}

	ctx, span := tracer.Start(ctx, "awshttp.send", trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(
		attribute.String("aws.service", service.EndpointPrefix),
		attribute.String("aws.operation", plan.name),
		attribute.String("http.method", wire.Method),
		attribute.String("net.peer.name", service.Host()),
	))
	defer span.End()
	httpReq = httpReq.WithContext(ctx)

	res, err := client.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return zero, classifyTransportError(err)
	}
	defer res.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))

	body, err := io.ReadAll(res.Body)
	if err != nil {
		// Aborted mid-body: the partial read is discarded
		span.RecordError(err)
		return zero, classifyTransportError(err)
	}

	meta := Metadata{
		URL:        wire.URL,
		StatusCode: res.StatusCode,
		StatusText: http.StatusText(res.StatusCode),
		Headers:    res.Header,
	}
	class := lo.Ternary(res.StatusCode >= 200 && res.StatusCode < 300, GoodStatus, BadStatus)

	return req.Decoder(class, meta, string(body))
}

// classifyTransportError maps transport failures onto the public union.
// These bypass the decoder entirely.
func classifyTransportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &TimeoutError{}
		}
		if strings.Contains(urlErr.Err.Error(), "unsupported protocol scheme") || strings.Contains(urlErr.Err.Error(), "invalid URL") {
			return &BadURLError{URL: urlErr.URL}
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{}
	}
	return &NetworkError{Err: err}
}
