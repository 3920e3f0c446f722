package server

import (
	"fmt"
	"net"
)

// handleConnection serves exactly one request on conn and closes it. Failures
// end the connection without a response; a panicking handler is contained
// here so other connections keep being served.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("panic serving connection", "remote", conn.RemoteAddr().String(), "panic", r)
		}
	}()

	if err := s.serveConn(conn); err != nil {
		s.logger().Warn(fmt.Sprintf("http error: %s", err), "remote", conn.RemoteAddr().String())
	}
}

func (s *Server) serveConn(conn net.Conn) error {
	req, err := readRequest(conn)
	if err != nil {
		return err
	}
	req.RemoteAddr = conn.RemoteAddr().String()

	res := s.handler().ServeRequest(req)
	if res == nil {
		panic(fmt.Sprintf("server: nil response for %s %s", req.Method, req.Target))
	}
	res.checkFraming()
	if err := negotiateEncoding(req, res); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	s.logger().Info("request", "method", req.Method.String(), "target", req.Target, "status", res.Status.Code(), "remote", req.RemoteAddr)

	if err := writeResponse(conn, res); err != nil {
		return fmt.Errorf("write response error: %w", err)
	}
	return nil
}
