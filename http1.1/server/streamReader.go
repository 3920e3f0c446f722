package server

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"syscall"
)

var crlf = [2]byte{'\r', '\n'}

const readChunkSize = 64 * 1024

// streamReader is a buffered reader over a connection that hands out
// delimiter-terminated lines and fixed-size blocks.
type streamReader struct {
	reader *bufio.Reader
}

func newStreamReader(r io.Reader) *streamReader {
	return &streamReader{reader: bufio.NewReader(r)}
}

// readUntil blocks until delim has been read and returns everything up to and
// including it. A delimiter spanning two underlying reads is still matched.
// It returns io.EOF if the stream closed before any byte was read and
// io.ErrUnexpectedEOF if it closed in the middle of a line.
func (r *streamReader) readUntil(delim [2]byte) ([]byte, error) {
	var line []byte
	for {
		chunk, err := r.reader.ReadSlice(delim[1])
		line = append(line, chunk...)
		switch {
		case err == nil:
			if len(line) >= 2 && line[len(line)-2] == delim[0] {
				return line, nil
			}
		case errors.Is(err, bufio.ErrBufferFull):
		case retryable(err):
		case errors.Is(err, io.EOF):
			if len(line) == 0 {
				return nil, io.EOF
			}
			return line, io.ErrUnexpectedEOF
		default:
			return line, err
		}
	}
}

// readExact blocks until exactly n bytes have been read. The buffer grows
// with the data received, not with n.
func (r *streamReader) readExact(n int) ([]byte, error) {
	buf := make([]byte, 0, min(n, readChunkSize))
	for len(buf) < n {
		if len(buf) == cap(buf) {
			buf = append(buf, make([]byte, min(n-len(buf), readChunkSize))...)[:len(buf)]
		}
		m, err := r.reader.Read(buf[len(buf):min(n, cap(buf))])
		buf = buf[:len(buf)+m]
		if err == nil || retryable(err) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return buf, io.ErrUnexpectedEOF
		}
		return buf, err
	}
	return buf, nil
}

func retryable(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}

func trimDelim(line []byte, delim [2]byte) []byte {
	return bytes.TrimSuffix(line, delim[:])
}
