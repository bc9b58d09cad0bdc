package redisserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/pkg/cmap"
	"github.com/yndnr/respkv/pkg/resp"
)

// Reply texts for requests that never reach the dispatcher.
const (
	msgRateLimited  = "error rate limit exceeded"
	msgShuttingDown = "error server shutting down"
)

// Config holds the RESP server configuration.
type Config struct {
	// Address is the TCP listen address. Empty disables TCP.
	Address string
	// UnixSocket is the path of a Unix domain socket. Empty disables it.
	UnixSocket string
	// ReadBufferSize is the initial per-connection read buffer.
	ReadBufferSize int
	// IdleTimeout closes a connection that sends nothing for this long.
	// Zero disables it.
	IdleTimeout time.Duration
	// WriteTimeout bounds writing one reply. Zero disables it.
	WriteTimeout time.Duration
	// RateLimit is the number of commands per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit int
	// Limits bounds what a single request may declare.
	Limits resp.Limits
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:        "127.0.0.1:6379",
		ReadBufferSize: 4096,
		Limits:         resp.DefaultLimits(),
	}
}

// Dispatcher executes commands on behalf of connections.
type Dispatcher interface {
	Do(ctx context.Context, connID string, cmd command.Command) (command.Reply, error)
}

// Metrics receives connection level measurements.
type Metrics interface {
	ConnOpened()
	ConnClosed()
	CommandReceived(name string)
	DecodeError()
	RateLimited()
}

type nopMetrics struct{}

func (nopMetrics) ConnOpened()            {}
func (nopMetrics) ConnClosed()            {}
func (nopMetrics) CommandReceived(string) {}
func (nopMetrics) DecodeError()           {}
func (nopMetrics) RateLimited()           {}

// Server is the RESP protocol server.
type Server struct {
	cfg        *Config
	dispatcher Dispatcher
	logger     *slog.Logger
	metrics    Metrics
	limiter    *ipLimiter

	mu        sync.Mutex
	listeners []net.Listener

	conns *cmap.Map[string, *Conn]

	// baseCtx is cancelled on Shutdown to release connections waiting on
	// the dispatcher.
	baseCtx context.Context
	cancel  context.CancelFunc

	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a server that submits commands to dispatcher. Nil logger and
// metrics fall back to slog.Default and a no-op sink.
func New(cfg *Config, dispatcher Dispatcher, logger *slog.Logger, metrics Metrics) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = 4096
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		limiter:    newIPLimiter(cfg.RateLimit),
		conns:      cmap.New[string, *Conn](),
		baseCtx:    ctx,
		cancel:     cancel,
	}
}

// Start binds the configured listeners and serves them in the background.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Address == "" && s.cfg.UnixSocket == "" {
		return errors.New("redisserver: no listen address configured")
	}

	var bound []net.Listener
	if s.cfg.Address != "" {
		ln, err := net.Listen("tcp", s.cfg.Address)
		if err != nil {
			return fmt.Errorf("listen tcp %s: %w", s.cfg.Address, err)
		}
		bound = append(bound, ln)
	}
	if s.cfg.UnixSocket != "" {
		// A socket file left by a previous run would make Listen fail.
		if err := os.Remove(s.cfg.UnixSocket); err != nil && !errors.Is(err, os.ErrNotExist) {
			closeAll(bound)
			return fmt.Errorf("remove stale socket %s: %w", s.cfg.UnixSocket, err)
		}
		ln, err := net.Listen("unix", s.cfg.UnixSocket)
		if err != nil {
			closeAll(bound)
			return fmt.Errorf("listen unix %s: %w", s.cfg.UnixSocket, err)
		}
		bound = append(bound, ln)
	}

	s.mu.Lock()
	s.listeners = append(s.listeners, bound...)
	s.mu.Unlock()
	s.running.Store(true)

	for _, ln := range bound {
		s.logger.Info("starting resp server", "network", ln.Addr().Network(), "address", ln.Addr().String())
		s.wg.Add(1)
		go func(ln net.Listener) {
			defer s.wg.Done()
			if err := s.serve(ctx, ln); err != nil {
				s.logger.Error("resp server error", "address", ln.Addr().String(), "error", err)
			}
		}(ln)
	}
	return nil
}

// Serve accepts connections on ln until ln is closed or ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listeners = append(s.listeners, ln)
	s.mu.Unlock()
	s.running.Store(true)
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-s.baseCtx.Done():
		}
	}()

	return s.acceptLoop(ctx, ln)
}

// Addr returns the address of the first listener, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.listeners) == 0 {
		return nil
	}
	return s.listeners[0].Addr()
}

// ConnCount returns the number of open connections.
func (s *Server) ConnCount() int {
	return s.conns.Count()
}

// Shutdown closes the listeners and every open connection, then waits for
// their goroutines to finish or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)
	s.cancel()

	s.mu.Lock()
	var firstErr error
	for _, ln := range s.listeners {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) && firstErr == nil {
			firstErr = err
		}
	}
	s.mu.Unlock()

	s.conns.Range(func(_ string, c *Conn) bool {
		_ = c.Close()
		return true
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		nc, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		c := newConn(nc, s.cfg, s.logger)
		s.conns.Set(c.id, c)
		s.metrics.ConnOpened()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.metrics.ConnClosed()
			defer s.conns.Delete(c.id)
			defer c.Close()
			s.serveConn(c)
		}()
	}
}

func (s *Server) serveConn(c *Conn) {
	c.logger.Debug("connection accepted")
	defer c.logger.Debug("connection closed")

	for {
		if s.cfg.IdleTimeout > 0 {
			if err := c.netConn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
				return
			}
		}

		v, err := c.reader.ReadValue()
		if err != nil {
			if !s.handleReadError(c, err) {
				return
			}
			continue
		}

		reply, ok := s.execute(c, v)
		if err := c.writer.WriteValue(reply.ToValue()); err != nil {
			return
		}
		if err := s.flush(c); err != nil {
			c.logger.Debug("write failed", "error", err)
			return
		}
		if !ok {
			return
		}
	}
}

// execute turns one decoded value into a reply. It returns false when the
// connection should be closed after the reply is written.
func (s *Server) execute(c *Conn, v resp.Value) (command.Reply, bool) {
	cmd := command.Parse(v)
	s.metrics.CommandReceived(cmd.Name())

	if !s.limiter.allow(c.remoteIP()) {
		s.metrics.RateLimited()
		c.logger.Debug("rate limited", "command", cmd.Name())
		return command.ErrorReply{Message: msgRateLimited}, true
	}

	reply, err := s.dispatcher.Do(s.baseCtx, c.id, cmd)
	if err != nil {
		c.logger.Debug("dispatch failed", "command", cmd.Name(), "error", err)
		return command.ErrorReply{Message: msgShuttingDown}, false
	}
	return reply, true
}

// handleReadError answers decode failures and reports whether the
// connection can keep going.
func (s *Server) handleReadError(c *Conn, err error) bool {
	var pe *resp.ParseError
	if !errors.As(err, &pe) {
		var netErr net.Error
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		case errors.As(err, &netErr) && netErr.Timeout():
			c.logger.Debug("connection idle timeout")
		default:
			c.logger.Debug("connection read error", "error", err)
		}
		return false
	}

	s.metrics.DecodeError()
	// Malformed input has no resync point, so everything buffered is
	// dropped, including complete requests pipelined behind the bad one.
	// Those get no reply; only the error below is sent.
	dropped := c.reader.Discard()
	msg := fmt.Sprintf("%s: %s", command.ErrorPrefix, pe.Error())

	// A request over a limit may still be streaming in; there is no way to
	// skip it, so the connection is closed after the reply.
	keep := !errors.Is(err, resp.ErrLimitExceeded)
	if keep {
		c.logger.Debug("malformed request", "error", pe, "dropped_bytes", dropped)
	} else {
		c.logger.Warn("request limit exceeded", "error", pe, "dropped_bytes", dropped)
	}

	if werr := c.writer.WriteValue(resp.Error(msg)); werr != nil {
		return false
	}
	if ferr := s.flush(c); ferr != nil {
		return false
	}
	return keep
}

func (s *Server) flush(c *Conn) error {
	if s.cfg.WriteTimeout > 0 {
		if err := c.netConn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
			return err
		}
	}
	return c.writer.Flush()
}

func closeAll(lns []net.Listener) {
	for _, ln := range lns {
		_ = ln.Close()
	}
}
