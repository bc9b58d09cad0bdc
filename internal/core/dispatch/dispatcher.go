package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/pkg/resp"
)

// ErrClosed is returned when submitting to a closed dispatcher.
var ErrClosed = errors.New("dispatch: dispatcher closed")

// Request is one command submitted for execution.
//
// Reply must have room for one value (a buffered channel); the dispatcher
// never blocks on delivery and drops the reply if the channel is full.
type Request struct {
	// ConnID identifies the submitting connection in logs.
	ConnID  string
	Command command.Command
	Reply   chan<- command.Reply
}

// State is the dispatcher's execution state.
type State int32

const (
	// StateIdle means the dispatcher is waiting for the next request.
	StateIdle State = iota
	// StateExecuting means a command is running against the store.
	StateExecuting
	// StateShutdown means the mailbox was closed and drained; no request
	// will run again.
	StateShutdown
)

// String returns the lowercase state name used in /stats.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExecuting:
		return "executing"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Metrics receives dispatcher measurements.
type Metrics interface {
	ObserveCommand(name string, elapsed time.Duration)
	SetQueueDepth(n int)
	SetKeys(n int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveCommand(string, time.Duration) {}
func (nopMetrics) SetQueueDepth(int)                    {}
func (nopMetrics) SetKeys(int)                          {}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(d *Dispatcher) {
		if m != nil {
			d.metrics = m
		}
	}
}

// Dispatcher owns a store and executes requests against it one at a time.
type Dispatcher struct {
	store   *memory.Store
	mailbox *Mailbox[Request]
	logger  *slog.Logger
	metrics Metrics

	state   atomic.Int32
	running atomic.Bool
	done    chan struct{}
}

// New creates a dispatcher that takes ownership of store. The caller must
// not use store afterwards.
func New(store *memory.Store, opts ...Option) *Dispatcher {
	if store == nil {
		store = memory.New()
	}
	d := &Dispatcher{
		store:   store,
		mailbox: NewMailbox[Request](),
		logger:  slog.Default(),
		metrics: nopMetrics{},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start runs the dispatcher on a new goroutine.
func (d *Dispatcher) Start() {
	go d.Run()
}

// Run executes requests until the dispatcher is closed and every queued
// request has been executed. Only the first call does anything.
func (d *Dispatcher) Run() {
	if !d.running.CompareAndSwap(false, true) {
		return
	}
	defer close(d.done)

	d.logger.Debug("dispatcher started")
	for req := range d.mailbox.Recv() {
		d.execute(req)
	}
	d.state.Store(int32(StateShutdown))
	d.logger.Debug("dispatcher stopped")
}

func (d *Dispatcher) execute(req Request) {
	d.state.Store(int32(StateExecuting))
	start := time.Now()

	name := req.Command.Name()
	if raw, ok := req.Command.(command.Raw); ok {
		d.logger.Debug("executing unrecognized command",
			"conn_id", req.ConnID, "description", raw.Description())
	} else {
		d.logger.Debug("executing command", "conn_id", req.ConnID, "command", name)
	}

	reply := d.store.Execute(req.Command)

	d.metrics.ObserveCommand(name, time.Since(start))
	d.metrics.SetKeys(d.store.Len())
	d.metrics.SetQueueDepth(d.mailbox.Len())

	if req.Reply != nil {
		select {
		case req.Reply <- reply:
		default:
			d.logger.Warn("reply dropped, channel full", "conn_id", req.ConnID, "command", name)
		}
	}
	d.state.Store(int32(StateIdle))
}

// Submit queues req for execution.
func (d *Dispatcher) Submit(req Request) error {
	if req.Command == nil {
		req.Command = command.NewRaw(resp.NullArray(), "empty command")
	}
	if !d.mailbox.Push(req) {
		return ErrClosed
	}
	d.metrics.SetQueueDepth(d.mailbox.Len())
	return nil
}

// Do submits cmd and waits for its reply. A cancelled ctx stops the wait,
// not the execution.
func (d *Dispatcher) Do(ctx context.Context, connID string, cmd command.Command) (command.Reply, error) {
	ch := make(chan command.Reply, 1)
	if err := d.Submit(Request{ConnID: connID, Command: cmd, Reply: ch}); err != nil {
		return nil, err
	}
	select {
	case reply := <-ch:
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting requests. Queued requests are still executed; wait
// on Done for that to finish.
func (d *Dispatcher) Close() {
	d.mailbox.Close()
}

// Done is closed when Run returns.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

// State returns the current execution state.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// QueueDepth returns the number of requests waiting to execute.
func (d *Dispatcher) QueueDepth() int {
	return d.mailbox.Len()
}
