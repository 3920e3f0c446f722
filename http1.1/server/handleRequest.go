package server

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// maxHeaderBytes bounds the request line plus headers.
const maxHeaderBytes = 1 * 1024 * 1024

var (
	ErrMalformedRequestLine = errors.New("malformed request line")
	ErrMalformedHeader      = errors.New("malformed header")
	ErrInvalidContentLength = errors.New("invalid Content-Length")
	ErrHeaderTooLarge       = errors.New("request header too large")
)

// readRequest parses one request off r. The body is read only when
// Content-Length is present.
func readRequest(r io.Reader) (*Request, error) {
	// Limit headers to 1MB
	limitReader := &io.LimitedReader{R: r, N: maxHeaderBytes}
	reader := newStreamReader(limitReader)

	readLine := func() (string, error) {
		line, err := reader.readUntil(crlf)
		if err != nil {
			if limitReader.N <= 0 {
				return "", ErrHeaderTooLarge
			}
			return "", err
		}
		return string(trimDelim(line, crlf)), nil
	}

	reqLine, err := readLine()
	if err != nil {
		return nil, fmt.Errorf("read request line error: %w", err)
	}

	parts := strings.Split(reqLine, " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, reqLine)
	}

	req := new(Request)
	if req.Method, err = ParseMethod(parts[0]); err != nil {
		return nil, err
	}
	req.Target = parts[1]
	req.Version = parts[2]

	for {
		line, err := readLine()
		if err != nil {
			return nil, fmt.Errorf("read header error: %w", err)
		}
		if len(line) == 0 {
			break
		}

		k, v, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		req.Header.Set(k, v)
	}

	// Unbound the limit after we've read the headers since the body can be any size
	limitReader.N = math.MaxInt64

	contentLength, ok, err := parseContentLength(&req.Header)
	if err != nil {
		return nil, err
	}
	if !ok {
		return req, nil
	}

	if req.Body, err = reader.readExact(contentLength); err != nil {
		return nil, fmt.Errorf("read body error: %w", err)
	}
	return req, nil
}

func parseContentLength(h *Header) (int, bool, error) {
	headerval, ok := h.Lookup("Content-Length")
	if !ok {
		return 0, false, nil
	}

	n, err := strconv.ParseUint(headerval, 10, 62)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidContentLength, headerval)
	}
	return int(n), true, nil
}
