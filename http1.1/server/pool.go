package server

import (
	"errors"
	"net"
	"sync"
)

var errPoolClosed = errors.New("pool closed")

// pool runs a fixed number of workers over an unbounded FIFO of accepted
// connections. Each connection holds its worker until it is served; there
// are no timeouts, so a stalled client keeps a worker busy indefinitely.
type pool struct {
	serve func(net.Conn)

	lock   sync.Mutex
	cond   *sync.Cond
	queue  []net.Conn
	closed bool

	wg sync.WaitGroup
}

func newPool(workers int, serve func(net.Conn)) *pool {
	p := &pool{serve: serve}
	p.cond = sync.NewCond(&p.lock)
	p.wg.Add(workers)
	for range workers {
		go p.run()
	}
	return p
}

// submit queues conn for the next free worker. It never blocks.
func (p *pool) submit(conn net.Conn) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed {
		return errPoolClosed
	}
	p.queue = append(p.queue, conn)
	p.cond.Signal()
	return nil
}

// pending returns the number of queued connections no worker has taken yet.
func (p *pool) pending() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.queue)
}

// close stops accepting work and waits for the workers to drain the queue.
func (p *pool) close() {
	p.lock.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.lock.Unlock()
	p.wg.Wait()
}

func (p *pool) run() {
	defer p.wg.Done()
	for {
		p.lock.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.lock.Unlock()
			return
		}
		conn := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.lock.Unlock()

		p.serve(conn)
	}
}
