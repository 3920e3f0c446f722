package server

import "strings"

// Handler produces the response for a request.
type Handler interface {
	ServeRequest(req *Request) *Response
}

type HandlerFunc func(req *Request) *Response

func (f HandlerFunc) ServeRequest(req *Request) *Response {
	return f(req)
}

// NotFound answers every request with 404 and an empty body.
var NotFound Handler = HandlerFunc(func(*Request) *Response {
	return NewResponse(StatusNotFound)
})

type routeKey struct {
	method Method
	path   string
}

type prefixRoute struct {
	method  Method
	prefix  string
	handler Handler
}

// Router maps a method and request target to a Handler. Exact routes are
// consulted first, then prefix routes in the order they were registered.
type Router struct {
	exact    map[routeKey]Handler
	prefixes []prefixRoute
}

func (r *Router) Handle(method Method, path string, h Handler) {
	if r.exact == nil {
		r.exact = make(map[routeKey]Handler)
	}
	r.exact[routeKey{method, path}] = h
}

func (r *Router) HandlePrefix(method Method, prefix string, h Handler) {
	r.prefixes = append(r.prefixes, prefixRoute{method, prefix, h})
}

// Route returns the handler for method and target, or NotFound.
func (r *Router) Route(method Method, target string) Handler {
	if h, ok := r.exact[routeKey{method, target}]; ok {
		return h
	}
	for _, p := range r.prefixes {
		if p.method == method && strings.HasPrefix(target, p.prefix) {
			return p.handler
		}
	}
	return NotFound
}

func (r *Router) ServeRequest(req *Request) *Response {
	return r.Route(req.Method, req.Target).ServeRequest(req)
}

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
)

// NewRouter returns the router with every built-in route registered, serving
// /files/ out of dir.
func NewRouter(dir Dir) *Router {
	r := new(Router)
	r.HandlePrefix(MethodGet, echoPrefix, HandlerFunc(echoHandler))
	r.HandlePrefix(MethodGet, filesPrefix, HandlerFunc(dir.getFile))
	r.HandlePrefix(MethodPost, filesPrefix, HandlerFunc(dir.postFile))
	r.Handle(MethodGet, "/user-agent", HandlerFunc(userAgentHandler))
	r.Handle(MethodGet, "/", HandlerFunc(rootHandler))
	return r
}
