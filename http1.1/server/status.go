package server

import "strconv"

// StatusCode is a response status together with its reason phrase.
type StatusCode int

const (
	StatusOK         StatusCode = 200
	StatusCreated    StatusCode = 201
	StatusBadRequest StatusCode = 400
	StatusNotFound   StatusCode = 404
)

var reasonPhrases = map[StatusCode]string{
	StatusOK:         "OK",
	StatusCreated:    "Created",
	StatusBadRequest: "Bad Request",
	StatusNotFound:   "Not Found",
}

func (s StatusCode) Code() int {
	return int(s)
}

// Reason returns the canonical reason phrase, or "" for an unknown status.
func (s StatusCode) Reason() string {
	return reasonPhrases[s]
}

func (s StatusCode) String() string {
	return strconv.Itoa(int(s)) + " " + s.Reason()
}
