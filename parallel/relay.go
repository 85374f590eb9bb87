package parallel

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/samplekit/nrpt/progress"
)

// Ping is one completion notification the Distributed driver's workers
// push toward the single progress updater.
type Ping struct {
	ChainIndex int     `json:"chain_index"`
	Fraction   float64 `json:"fraction"`
}

// Relay is the "remote channel" the distributed driver funnels completion
// pings through: an in-process channel fed by the worker pool, fanned out
// to any websocket listener (a remote progress dashboard) and to the
// process-local progress sinks. A pool of external worker processes would
// dial in and receive exactly the same Ping stream a local worker does.
type Relay struct {
	pings    chan Ping
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns []*websocket.Conn
}

// NewRelay builds a Relay with a ping channel bounded to capacity, the
// non-blocking-for-writers guarantee the concurrency model calls for.
func NewRelay(capacity int) *Relay {
	return &Relay{
		pings:    make(chan Ping, capacity),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
}

// Send pushes a ping without blocking the caller; a full channel drops the
// ping rather than stalling a worker, since pings are a best-effort
// progress signal, not part of the run's correctness.
func (r *Relay) Send(p Ping) {
	select {
	case r.pings <- p:
	default:
	}
}

// Run drains the ping channel until it is closed, fanning each ping out
// to the process-wide progress sinks and to any connected websocket
// listener. Intended to run in its own goroutine for the lifetime of a
// distributed driver call.
func (r *Relay) Run() {
	for p := range r.pings {
		progress.Emit(p.Fraction, "distributed-chain")
		r.broadcast(p)
	}
}

// Close signals Run to return once the channel drains.
func (r *Relay) Close() {
	close(r.pings)
}

func (r *Relay) broadcast(p Ping) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	live := r.conns[:0]
	for _, c := range r.conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err == nil {
			live = append(live, c)
		}
	}
	r.conns = live
}

// ServeHTTP upgrades an incoming request to a websocket connection and
// registers it to receive every future ping.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	r.mu.Lock()
	r.conns = append(r.conns, conn)
	r.mu.Unlock()
}
