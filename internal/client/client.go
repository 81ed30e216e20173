package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/spaces-cli/internal/logging"
	"github.com/yourusername/spaces-cli/internal/models"
)

const (
	DefaultSocketPath = "/tmp/spaces-server.sock"
	// Introspection calls sit on the hotkey path; anything slower than this
	// is treated as a hung server.
	DefaultTimeout = 2 * time.Second
)

// Client talks to the local introspection server.
type Client struct {
	conn *Connection
}

// NewClient creates a new introspection server client
func NewClient(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		conn: NewConnection(socketPath, timeout),
	}
}

// Connect establishes connection to the server
func (c *Client) Connect() error {
	return c.conn.Connect()
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// request is a helper to send a request and get the response
func (c *Client) request(ctx context.Context, method string, params map[string]interface{}) (*models.Response, error) {
	if !c.conn.IsConnected() {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	req := models.NewRequest(uuid.New().String(), method, params)
	logging.Debug().Str("method", method).Str("id", req.Request.ID).Msg("rpc request")
	return c.conn.SendRequest(ctx, req)
}

// Ping sends a ping request to test connectivity
func (c *Client) Ping(ctx context.Context) (map[string]interface{}, error) {
	return c.CallMethod(ctx, "ping", nil)
}

// CallMethod sends a generic RPC request with the given method and parameters
func (c *Client) CallMethod(ctx context.Context, method string, params map[string]interface{}) (map[string]interface{}, error) {
	resp, err := c.request(ctx, method, params)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("server error on %s: %s", method, resp.GetError())
	}

	return resp.Result, nil
}

// Call sends a request and decodes its result into out.
func (c *Client) Call(ctx context.Context, method string, params map[string]interface{}, out interface{}) error {
	result, err := c.CallMethod(ctx, method, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return models.Decode(result, out)
}
