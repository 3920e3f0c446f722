package server

import (
	"errors"
	"fmt"
)

var ErrUnknownMethod = errors.New("unknown method")

// Method is the request method. Only GET and POST are understood.
type Method int

const (
	MethodGet Method = iota + 1
	MethodPost
)

func ParseMethod(s string) (Method, error) {
	switch s {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

type headerField struct {
	name  string
	value string
}

// Header is an ordered set of header fields. Names keep the spelling they were
// first set with; lookups ignore ASCII case.
type Header struct {
	fields []headerField
	byName map[string]int // folded name -> index into fields
}

// foldName lower-cases the ASCII letters of a header name.
func foldName(name string) string {
	for i := 0; i < len(name); i++ {
		if c := name[i]; 'A' <= c && c <= 'Z' {
			b := []byte(name)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return name
}

func (h *Header) index(name string) int {
	if i, ok := h.byName[foldName(name)]; ok {
		return i
	}
	return -1
}

// Get returns the value of name, or "" if it is not set.
func (h *Header) Get(name string) string {
	v, _ := h.Lookup(name)
	return v
}

func (h *Header) Lookup(name string) (string, bool) {
	if i := h.index(name); i >= 0 {
		return h.fields[i].value, true
	}
	return "", false
}

func (h *Header) Has(name string) bool {
	return h.index(name) >= 0
}

// Set replaces the value of name in place, or appends it if it is new.
func (h *Header) Set(name, value string) {
	if i := h.index(name); i >= 0 {
		h.fields[i].value = value
		return
	}
	if h.byName == nil {
		h.byName = make(map[string]int)
	}
	h.byName[foldName(name)] = len(h.fields)
	h.fields = append(h.fields, headerField{name: name, value: value})
}

func (h *Header) Del(name string) {
	i := h.index(name)
	if i < 0 {
		return
	}
	h.fields = append(h.fields[:i], h.fields[i+1:]...)
	delete(h.byName, foldName(name))
	for j := i; j < len(h.fields); j++ {
		h.byName[foldName(h.fields[j].name)] = j
	}
}

func (h *Header) Len() int {
	return len(h.fields)
}

// Each calls fn for every field in insertion order.
func (h *Header) Each(fn func(name, value string)) {
	for _, f := range h.fields {
		fn(f.name, f.value)
	}
}

// Request is a parsed HTTP request. It is not modified after parsing.
type Request struct {
	Method  Method
	Target  string // raw request target, not decoded
	Version string
	Header  Header
	Body    []byte

	RemoteAddr string
}
