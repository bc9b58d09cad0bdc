package redisserver

import (
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv/pkg/resp"
)

// Conn is one client connection.
type Conn struct {
	id        string
	netConn   net.Conn
	reader    *resp.Reader
	writer    *resp.Writer
	logger    *slog.Logger
	createdAt time.Time

	closed atomic.Bool
}

func newConn(c net.Conn, cfg *Config, logger *slog.Logger) *Conn {
	id := ulid.Make().String()
	return &Conn{
		id:        id,
		netConn:   c,
		reader:    resp.NewReaderSize(c, cfg.ReadBufferSize, cfg.Limits),
		writer:    resp.NewWriter(c),
		logger:    logger.With("conn_id", id, "remote", c.RemoteAddr().String()),
		createdAt: time.Now(),
	}
}

// ID returns the connection's ULID.
func (c *Conn) ID() string {
	return c.id
}

// RemoteAddr returns the peer address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// Close closes the underlying connection. It is safe to call more than once.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

// remoteIP returns the host part of the peer address, or the whole address
// for transports without one (Unix sockets).
func (c *Conn) remoteIP() string {
	addr := c.netConn.RemoteAddr()
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
