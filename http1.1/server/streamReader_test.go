package server

import (
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"
)

// flakyReader fails every other Read with EINTR.
type flakyReader struct {
	r    io.Reader
	fail bool
}

func (f *flakyReader) Read(p []byte) (int, error) {
	f.fail = !f.fail
	if f.fail {
		return 0, syscall.EINTR
	}
	return f.r.Read(p)
}

func TestReadUntilAcrossReads(t *testing.T) {
	r := newStreamReader(iotest.OneByteReader(strings.NewReader("Host: x\r\nUser-Agent: y\r\n")))

	for _, want := range []string{"Host: x\r\n", "User-Agent: y\r\n"} {
		line, err := r.readUntil(crlf)
		if err != nil {
			t.Fatalf("readUntil: %v", err)
		}
		if string(line) != want {
			t.Errorf("got %q, want %q", line, want)
		}
	}
	if _, err := r.readUntil(crlf); err != io.EOF {
		t.Errorf("got err %v at end of stream, want io.EOF", err)
	}
}

func TestReadUntilIgnoresBareLF(t *testing.T) {
	r := newStreamReader(strings.NewReader("a\nb\r\n"))
	line, err := r.readUntil(crlf)
	if err != nil {
		t.Fatal(err)
	}
	if string(line) != "a\nb\r\n" {
		t.Errorf("got %q", line)
	}
}

func TestReadUntilTruncated(t *testing.T) {
	r := newStreamReader(strings.NewReader("GET / HTTP/1.1"))
	if _, err := r.readUntil(crlf); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("got err %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReadUntilLongLine(t *testing.T) {
	long := strings.Repeat("a", 10000) + "\r\n"
	r := newStreamReader(strings.NewReader(long))
	line, err := r.readUntil(crlf)
	if err != nil {
		t.Fatal(err)
	}
	if string(line) != long {
		t.Errorf("got %d bytes, want %d", len(line), len(long))
	}
}

func TestReadRetriesInterrupted(t *testing.T) {
	r := newStreamReader(&flakyReader{r: iotest.HalfReader(strings.NewReader("line\r\nbody"))})
	line, err := r.readUntil(crlf)
	if err != nil {
		t.Fatalf("readUntil: %v", err)
	}
	if string(line) != "line\r\n" {
		t.Errorf("got %q", line)
	}
	body, err := r.readExact(4)
	if err != nil {
		t.Fatalf("readExact: %v", err)
	}
	if string(body) != "body" {
		t.Errorf("got %q", body)
	}
}

func TestReadExact(t *testing.T) {
	payload := strings.Repeat("0123456789", 20000)
	r := newStreamReader(iotest.HalfReader(strings.NewReader(payload + "rest")))
	got, err := r.readExact(len(payload))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != payload {
		t.Errorf("got %d bytes, want %d", len(got), len(payload))
	}

	zero, err := r.readExact(0)
	if err != nil || len(zero) != 0 {
		t.Errorf("readExact(0) = %q, %v", zero, err)
	}
}

func TestReadExactShort(t *testing.T) {
	r := newStreamReader(strings.NewReader("abc"))
	got, err := r.readExact(5)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("got err %v, want io.ErrUnexpectedEOF", err)
	}
	if string(got) != "abc" {
		t.Errorf("got %q", got)
	}
}
