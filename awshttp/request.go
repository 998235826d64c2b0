package awshttp

import (
	"encoding/json"
	"fmt"
)

type bodyKind int

const (
	bodyEmpty bodyKind = iota
	bodyString
	bodyJSON
)

// Body is the request payload. Empty bodies hash as the empty string,
// String bodies carry their own MIME type, JSON bodies are compactly
// serialized.
type Body struct {
	kind bodyKind
	mime string
	text string
	json any
}

func EmptyBody() Body {
	return Body{kind: bodyEmpty}
}

func StringBody(mime, text string) Body {
	return Body{kind: bodyString, mime: mime, text: text}
}

func JSONBody(v any) Body {
	return Body{kind: bodyJSON, json: v}
}

// payload returns the bytes that are hashed and sent.
func (b Body) payload() ([]byte, error) {
	switch b.kind {
	case bodyString:
		return []byte(b.text), nil
	case bodyJSON:
		out, err := json.Marshal(b.json)
		if err != nil {
			return nil, fmt.Errorf("error in json.Marshal of request body: %w", err)
		}
		return out, nil
	default:
		return nil, nil
	}
}

// mimeType returns the body's own content type, if it declares one.
func (b Body) mimeType() (string, bool) {
	if b.kind == bodyString {
		return b.mime, true
	}
	return "", false
}

// Request is an unsigned request: what to call, where, and how to read the
// answer. It carries no credentials and no clock; those arrive at send time.
type Request[T any] struct {
	// Name is the operation name, e.g. ListCertificates. JSON-protocol
	// services see it in the x-amz-target header.
	Name    string
	Method  string
	Path    string
	Body    Body
	Decoder Decoder[T]

	headers []Pair
	query   []Pair
}

// NewRequest builds an unsigned request with empty header and query lists.
// path must begin with "/" and be unencoded; the library owns all
// percent-encoding.
func NewRequest[T any](name, method, path string, body Body, decoder Decoder[T]) *Request[T] {
	return &Request[T]{
		Name:    name,
		Method:  method,
		Path:    path,
		Body:    body,
		Decoder: decoder,
	}
}

// AddHeaders appends pairs to the header list, preserving order. Duplicate
// names are allowed.
func (r *Request[T]) AddHeaders(pairs ...Pair) *Request[T] {
	r.headers = append(r.headers, pairs...)
	return r
}

// AddQuery appends pairs to the query list, preserving order. Values are
// logical, not pre-encoded.
func (r *Request[T]) AddQuery(pairs ...Pair) *Request[T] {
	r.query = append(r.query, pairs...)
	return r
}

// requestPlan is the non-generic view of a request that shaping and signing
// operate on, with the body already serialized.
type requestPlan struct {
	name    string
	method  string
	path    string
	headers []Pair
	query   []Pair
	payload []byte
	// mime is the body's own content type, when the body declares one
	mime    string
	hasMIME bool
}

func (r *Request[T]) plan() (requestPlan, error) {
	payload, err := r.Body.payload()
	if err != nil {
		return requestPlan{}, err
	}
	mime, hasMIME := r.Body.mimeType()
	return requestPlan{
		name:    r.Name,
		method:  r.Method,
		path:    r.Path,
		headers: append([]Pair(nil), r.headers...),
		query:   append([]Pair(nil), r.query...),
		payload: payload,
		mime:    mime,
		hasMIME: hasMIME,
	}, nil
}
