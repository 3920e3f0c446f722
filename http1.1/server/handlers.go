package server

import "strings"

const textPlain = "text/plain"

func rootHandler(*Request) *Response {
	return NewResponse(StatusOK)
}

// echoHandler replies with whatever follows /echo/ in the target, undecoded.
func echoHandler(req *Request) *Response {
	res := NewResponse(StatusOK)
	res.SetBody(textPlain, []byte(strings.TrimPrefix(req.Target, echoPrefix)))
	return res
}

func userAgentHandler(req *Request) *Response {
	ua, ok := req.Header.Lookup("User-Agent")
	if !ok {
		return NewResponse(StatusBadRequest)
	}
	res := NewResponse(StatusOK)
	res.SetBody(textPlain, []byte(ua))
	return res
}
