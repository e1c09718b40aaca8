// Package sshcli wraps golang.org/x/crypto/ssh for the command-output
// acquisition path used against FRR/vtysh-driven devices: Connect once,
// then ExecuteCommand any number of times, each call isolated to its
// own ssh.Session and stateless per-call.
package sshcli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/netgraph-io/netgraph/pkg/errs"
)

// Client is a single SSH session to a device, guarded by mu so the
// IS-IS source's sequential fetch_snapshot calls (hostname map, LSPDB,
// interface stats) never race a concurrent reconnect.
type Client struct {
	host string
	port int
	cfg  *ssh.ClientConfig

	mu        sync.Mutex
	conn      *ssh.Client
	connected bool
}

// Option configures a Client's ssh.ClientConfig.
type Option func(*ssh.ClientConfig)

// WithPassword authenticates with a plaintext password.
func WithPassword(pass string) Option {
	return func(c *ssh.ClientConfig) { c.Auth = append(c.Auth, ssh.Password(pass)) }
}

// WithKey authenticates with an already-parsed private key signer.
func WithKey(signer ssh.Signer) Option {
	return func(c *ssh.ClientConfig) { c.Auth = append(c.Auth, ssh.PublicKeys(signer)) }
}

// WithTimeout overrides the dial timeout (default 10s).
func WithTimeout(d time.Duration) Option {
	return func(c *ssh.ClientConfig) { c.Timeout = d }
}

// NewClient builds an unconnected Client for host:port. Call Connect
// before ExecuteCommand.
func NewClient(host, user string, port int, opts ...Option) *Client {
	if port == 0 {
		port = 22
	}
	cfg := &ssh.ClientConfig{
		User:            user,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{host: host, port: port, cfg: cfg}
}

// Connect dials the device. Blocking dial is isolated to its own
// goroutine so ctx cancellation returns promptly even if the TCP
// handshake hangs past cfg.Timeout.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return errs.NewTransportError("sshcli: already connected to %s:%d", c.host, c.port)
	}
	c.mu.Unlock()

	type result struct {
		conn *ssh.Client
		err  error
	}
	done := make(chan result, 1)
	addr := fmt.Sprintf("%s:%d", c.host, c.port)

	go func() {
		conn, err := ssh.Dial("tcp", addr, c.cfg)
		done <- result{conn, err}
	}()

	select {
	case <-ctx.Done():
		return errs.NewTransportError("sshcli: connect %s: %v", addr, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return errs.NewTransportError("sshcli: connect %s: %v", addr, r.err)
		}
		c.mu.Lock()
		c.conn = r.conn
		c.connected = true
		c.mu.Unlock()
		return nil
	}
}

// IsConnected reports whether Connect has succeeded and Close hasn't
// been called since.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// ExecuteCommand runs cmd in a fresh session and returns its combined
// stdout+stderr. The blocking session round-trip is isolated to its
// own goroutine so ctx cancellation unblocks the caller even if the
// remote end never responds.
func (c *Client) ExecuteCommand(ctx context.Context, cmd string) (string, error) {
	c.mu.Lock()
	conn := c.conn
	connected := c.connected
	c.mu.Unlock()

	if !connected || conn == nil {
		return "", errs.NewTransportError("sshcli: not connected")
	}

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)

	go func() {
		session, err := conn.NewSession()
		if err != nil {
			done <- result{"", err}
			return
		}
		defer session.Close()
		out, err := session.CombinedOutput(cmd)
		done <- result{string(out), err}
	}()

	select {
	case <-ctx.Done():
		return "", errs.NewTransportError("sshcli: execute %q: %v", cmd, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return r.out, errs.NewTransportError("sshcli: execute %q: %v", cmd, r.err)
		}
		return r.out, nil
	}
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.connected = false
	return err
}
