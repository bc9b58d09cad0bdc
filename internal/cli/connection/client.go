package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/pkg/resp"
)

// UnixPrefix selects a Unix socket in a server address.
const UnixPrefix = "unix:"

// ErrClosed is returned when using a closed client.
var ErrClosed = errors.New("connection: client closed")

// Client is a RESP client. It is safe for concurrent use; requests are
// serialized so that at most one is in flight.
type Client struct {
	addr    string
	timeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *resp.Reader
	writer *resp.Writer
	closed bool
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request round trip. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Dial connects to addr, either host:port or unix:/path/to/socket.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	network, address := "tcp", addr
	if path, ok := strings.CutPrefix(addr, UnixPrefix); ok {
		network, address = "unix", path
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	c := &Client{
		addr:   addr,
		conn:   conn,
		reader: resp.NewReader(conn),
		writer: resp.NewWriter(conn),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Addr returns the address the client was dialed with.
func (c *Client) Addr() string {
	return c.addr
}

// DoValue sends v and returns the raw reply value. Any transport error,
// including a timeout, closes the client: a reply that arrives late would
// otherwise be read as the answer to the next request.
func (c *Client) DoValue(v resp.Value) (resp.Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return resp.Value{}, ErrClosed
	}
	if c.timeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return resp.Value{}, c.fail(err)
		}
	}

	if err := c.writer.WriteValue(v); err != nil {
		return resp.Value{}, c.fail(fmt.Errorf("send: %w", err))
	}
	if err := c.writer.Flush(); err != nil {
		return resp.Value{}, c.fail(fmt.Errorf("send: %w", err))
	}
	reply, err := c.reader.ReadValue()
	if err != nil {
		return resp.Value{}, c.fail(fmt.Errorf("read reply: %w", err))
	}
	return reply, nil
}

// fail closes the connection after a transport error and returns err.
// c.mu must be held.
func (c *Client) fail(err error) error {
	if !c.closed {
		c.closed = true
		c.conn.Close()
	}
	return err
}

// IsClosed reports whether the client was closed, either by Close or after
// a transport error.
func (c *Client) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Do sends cmd and returns the parsed reply. A server error is returned as
// a command.ErrorReply reply, not as an error.
func (c *Client) Do(cmd command.Command) (command.Reply, error) {
	v, err := c.DoValue(cmd.ToValue())
	if err != nil {
		return nil, err
	}
	return command.ParseReply(v)
}

// Ping sends PING and expects PONG.
func (c *Client) Ping() error {
	reply, err := c.Do(command.Ping{})
	if err != nil {
		return err
	}
	switch r := reply.(type) {
	case command.Pong:
		return nil
	case command.ErrorReply:
		return r
	default:
		return fmt.Errorf("%w: %s", command.ErrUnexpectedReply, r.ToValue())
	}
}

// Set stores value under key.
func (c *Client) Set(key string, value []byte) error {
	reply, err := c.Do(command.Set{Key: key, Value: value})
	if err != nil {
		return err
	}
	switch r := reply.(type) {
	case command.OK:
		return nil
	case command.ErrorReply:
		return r
	default:
		return fmt.Errorf("%w: %s", command.ErrUnexpectedReply, r.ToValue())
	}
}

// Get returns the value stored under key and whether it exists.
func (c *Client) Get(key string) ([]byte, bool, error) {
	reply, err := c.Do(command.Get{Key: key})
	if err != nil {
		return nil, false, err
	}
	switch r := reply.(type) {
	case command.BulkReply:
		return r.Value, r.Found, nil
	case command.ErrorReply:
		return nil, false, r
	default:
		return nil, false, fmt.Errorf("%w: %s", command.ErrUnexpectedReply, r.ToValue())
	}
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
