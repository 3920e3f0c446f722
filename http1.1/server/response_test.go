package server

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteResponse(t *testing.T) {
	tests := []struct {
		name string
		res  func() *Response
		want string
	}{
		{
			name: "text body",
			res: func() *Response {
				res := NewResponse(StatusOK)
				res.SetBody(textPlain, []byte("abc"))
				return res
			},
			want: "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc",
		},
		{
			name: "created",
			res:  func() *Response { return NewResponse(StatusCreated) },
			want: "HTTP/1.1 201 Created\r\n\r\n",
		},
		{
			name: "not found",
			res:  func() *Response { return NewResponse(StatusNotFound) },
			want: "HTTP/1.1 404 Not Found\r\n\r\n",
		},
		{
			name: "bad request",
			res:  func() *Response { return NewResponse(StatusBadRequest) },
			want: "HTTP/1.1 400 Bad Request\r\n\r\n",
		},
		{
			name: "explicit zero length",
			res: func() *Response {
				res := NewResponse(StatusOK)
				res.Header.Set("Content-Length", "0")
				return res
			},
			want: "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeResponse(&buf, tt.res()); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteResponseFramingViolation(t *testing.T) {
	tests := []struct {
		name string
		res  *Response
	}{
		{"body without length", &Response{Version: responseProto, Status: StatusOK, Body: []byte("x")}},
		{"length mismatch", func() *Response {
			res := NewResponse(StatusOK)
			res.SetBody(textPlain, []byte("abc"))
			res.Body = []byte("ab")
			return res
		}()},
		{"unparsable length", func() *Response {
			res := NewResponse(StatusOK)
			res.Header.Set("Content-Length", "three")
			return res
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			defer func() {
				r := recover()
				err, ok := r.(error)
				var fe *FramingError
				if !ok || !errors.As(err, &fe) {
					t.Fatalf("recovered %v, want *FramingError", r)
				}
				if buf.Len() != 0 {
					t.Errorf("wrote %q before detecting the violation", buf.String())
				}
			}()
			writeResponse(&buf, tt.res)
		})
	}
}

func TestStatusCode(t *testing.T) {
	if StatusNotFound.Code() != 404 || StatusNotFound.Reason() != "Not Found" {
		t.Errorf("got %d %q", StatusNotFound.Code(), StatusNotFound.Reason())
	}
	if StatusCreated.String() != "201 Created" {
		t.Errorf("got %q", StatusCreated.String())
	}
}
