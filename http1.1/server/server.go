package server

import (
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"
)

const (
	DefaultAddr    = "127.0.0.1:4221"
	DefaultWorkers = 4
)

// ErrServerClosed is returned by Serve and ListenAndServe after Close.
var ErrServerClosed = errors.New("server closed")

// Server accepts connections on one goroutine and serves each of them, one
// request per connection, on a fixed pool of workers.
type Server struct {
	Addr string
	// Directory is the root for /files/. Empty disables file routes.
	Directory string
	Workers   int
	// Handler defaults to NewRouter(Dir(Directory)).
	Handler Handler
	Logger  *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve accepts connections on l until Close is called or l fails. It waits
// for queued and running connections before returning.
func (s *Server) Serve(l net.Listener) error {
	defer l.Close()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServerClosed
	}
	s.listener = l
	if s.Handler == nil {
		s.Handler = NewRouter(Dir(s.Directory))
	}
	s.mu.Unlock()

	workers := s.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	p := newPool(workers, s.handleConnection)
	defer p.close()

	s.logger().Info("listening", "addr", l.Addr().String(), "workers", workers, "directory", s.Directory)

	var delay time.Duration
	for {
		conn, err := l.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			delay = backoff(delay)
			s.logger().Error("accept error", "err", err, "retry_in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		s.logger().Debug("accepted connection", "remote", conn.RemoteAddr().String(), "queued", p.pending())
		if err := p.submit(conn); err != nil {
			conn.Close()
			return err
		}
	}
}

// Close stops the listener. Connections already accepted are still served.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) handler() Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Handler == nil {
		s.Handler = NewRouter(Dir(s.Directory))
	}
	return s.Handler
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func backoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	return min(2*d, time.Second)
}
