package server

import (
	"fmt"
	"strconv"
)

const responseProto = "HTTP/1.1"

// Response is built by exactly one handler and written once.
type Response struct {
	Version string
	Status  StatusCode
	Header  Header
	Body    []byte
}

// NewResponse returns an empty HTTP/1.1 response with the given status.
func NewResponse(status StatusCode) *Response {
	return &Response{
		Version: responseProto,
		Status:  status,
	}
}

// SetBody sets the body along with matching Content-Type and Content-Length
// headers.
func (r *Response) SetBody(contentType string, body []byte) {
	r.Header.Set("Content-Type", contentType)
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
	r.Body = body
}

// FramingError reports a response whose Content-Length does not describe its
// body. It is raised with panic since only a broken handler can produce one.
type FramingError struct {
	ContentLength string
	BodyLen       int
}

func (e *FramingError) Error() string {
	if e.ContentLength == "" {
		return fmt.Sprintf("response has %d body bytes but no Content-Length", e.BodyLen)
	}
	return fmt.Sprintf("response Content-Length %q does not match %d body bytes", e.ContentLength, e.BodyLen)
}

// checkFraming panics with a *FramingError unless Content-Length equals the
// body length, or is absent and the body is empty.
func (r *Response) checkFraming() {
	cl, ok := r.Header.Lookup("Content-Length")
	if !ok {
		if len(r.Body) != 0 {
			panic(&FramingError{BodyLen: len(r.Body)})
		}
		return
	}
	n, err := strconv.Atoi(cl)
	if err != nil || n != len(r.Body) {
		panic(&FramingError{ContentLength: cl, BodyLen: len(r.Body)})
	}
}
