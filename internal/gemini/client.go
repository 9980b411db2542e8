package gemini

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

type ClientOptions struct {
	// Timeout bounds a whole transaction. Zero means no deadline.
	Timeout time.Duration
	// MaxResponseBytes caps how much is read before failing. Zero means read
	// until the server closes the connection.
	MaxResponseBytes int64
	Logger           *log.Logger
}

// Client performs one TLS transaction per request. Certificates are not
// verified: there is no trust store and no trust-on-first-use.
type Client struct {
	timeout  time.Duration
	maxBytes int64
	logger   *log.Logger
	dialer   *net.Dialer
}

func NewClient(opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		timeout:  opts.Timeout,
		maxBytes: opts.MaxResponseBytes,
		logger:   logger,
		dialer:   &net.Dialer{},
	}
}

// Fetch sends u and returns every byte the server wrote before closing.
func (c *Client) Fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	if !IsGemini(u) {
		return nil, &TransportError{Op: "request", Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	addr, serverName, err := hostPort(u)
	if err != nil {
		return nil, &TransportError{Op: "resolve", Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()

	raw, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		op := "dial"
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			op = "resolve"
		}
		return nil, &TransportError{Op: op, Host: addr, Err: err}
	}
	defer raw.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = raw.SetDeadline(deadline)
	}

	conn := tls.Client(raw, &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: true,
		MinVersion:         tls.VersionTLS12,
	})
	if err := conn.HandshakeContext(ctx); err != nil {
		return nil, &TransportError{Op: "handshake", Host: addr, Err: err}
	}

	if _, err := io.WriteString(conn, u.String()+"\r\n"); err != nil {
		return nil, &TransportError{Op: "write", Host: addr, Err: err}
	}

	var reader io.Reader = conn
	if c.maxBytes > 0 {
		reader = io.LimitReader(conn, c.maxBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil && !(errors.Is(err, io.ErrUnexpectedEOF) && len(body) > 0) {
		return nil, &TransportError{Op: "read", Host: addr, Err: err}
	}
	if c.maxBytes > 0 && int64(len(body)) > c.maxBytes {
		return nil, &TransportError{Op: "read", Host: addr, Err: fmt.Errorf("response exceeds %d bytes", c.maxBytes)}
	}

	c.logger.Debug("transaction complete", "url", u.String(), "bytes", len(body), "duration", time.Since(start))
	if header, _, found := bytes.Cut(body, crlf); found && len(header) > MaxMetaLength+3 {
		c.logger.Warn("response header longer than recommended", "url", u.String(), "length", len(header))
	}
	return body, nil
}
