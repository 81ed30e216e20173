package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/yourusername/spaces-cli/internal/models"
)

// Connection is one unix socket to the introspection server. Messages are
// newline-delimited JSON envelopes and requests are answered in order, so
// a connection carries one request at a time.
type Connection struct {
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	timeout    time.Duration
}

// NewConnection creates an unconnected Connection.
func NewConnection(socketPath string, timeout time.Duration) *Connection {
	return &Connection{
		socketPath: socketPath,
		timeout:    timeout,
	}
}

// Connect dials the socket.
func (c *Connection) Connect() error {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to socket %s: %w", c.socketPath, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the socket. The Connection can be dialed again afterwards.
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// deadline is the earlier of the context deadline and now plus the
// connection timeout.
func (c *Connection) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && (c.timeout <= 0 || ctxDeadline.Before(d)) {
		return ctxDeadline
	}
	if c.timeout <= 0 {
		return time.Time{}
	}
	return d
}

// SendRequest writes one request and reads its response. A response whose
// id does not match the request is an error. When ctx ends first the socket
// is dropped, since the stream is no longer in step.
func (c *Connection) SendRequest(ctx context.Context, req *models.MessageEnvelope) (*models.Response, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("not connected to %s", c.socketPath)
	}

	deadline := c.deadline(ctx)
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	conn, reader := c.conn, c.reader
	respChan := make(chan *models.Response, 1)
	errChan := make(chan error, 1)

	go func() {
		resp, err := readResponse(reader, req.Request.ID)
		if err != nil {
			errChan <- err
			return
		}
		respChan <- resp
	}()

	select {
	case <-ctx.Done():
		conn.Close()
		if c.conn == conn {
			c.conn, c.reader = nil, nil
		}
		return nil, fmt.Errorf("request %s cancelled or timed out: %w", req.Request.Method, ctx.Err())
	case err := <-errChan:
		c.Close()
		return nil, err
	case resp := <-respChan:
		return resp, nil
	}
}

func readResponse(reader *bufio.Reader, id string) (*models.Response, error) {
	line, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var envelope models.MessageEnvelope
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	switch {
	case envelope.Type != "response":
		return nil, fmt.Errorf("expected response, got %s", envelope.Type)
	case envelope.Response == nil:
		return nil, fmt.Errorf("response envelope has nil response")
	case envelope.Response.ID != id:
		return nil, fmt.Errorf("response id %s does not match request %s", envelope.Response.ID, id)
	}
	return envelope.Response, nil
}

// IsConnected reports whether the socket is open.
func (c *Connection) IsConnected() bool {
	return c.conn != nil
}
