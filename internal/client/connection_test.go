package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spaces-cli/internal/models"
)

// serve listens on a short-lived unix socket and answers every request
// with reply(request).
func serve(t *testing.T, reply func(req *models.Request) *models.MessageEnvelope) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "spaces")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "s.sock")
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadBytes('\n')
			if err != nil {
				return
			}
			var env models.MessageEnvelope
			if err := json.Unmarshal(line, &env); err != nil {
				return
			}
			out := reply(env.Request)
			if out == nil {
				continue
			}
			data, _ := json.Marshal(out)
			if _, err := conn.Write(append(data, '\n')); err != nil {
				return
			}
		}
	}()

	return path
}

func response(id string, result map[string]interface{}) *models.MessageEnvelope {
	return &models.MessageEnvelope{
		Type:     "response",
		Response: &models.Response{ID: id, Result: result},
	}
}

func TestConnection_RoundTrip(t *testing.T) {
	path := serve(t, func(req *models.Request) *models.MessageEnvelope {
		return response(req.ID, map[string]interface{}{"method": req.Method})
	})

	c := NewConnection(path, time.Second)
	require.NoError(t, c.Connect())
	defer c.Close()

	for _, method := range []string{"ping", "displays"} {
		resp, err := c.SendRequest(context.Background(), models.NewRequest("id-"+method, method, nil))
		require.NoError(t, err)
		assert.Equal(t, "id-"+method, resp.ID)
		assert.Equal(t, method, resp.Result["method"])
	}
	assert.True(t, c.IsConnected())
}

func TestConnection_MismatchedIDDropsSocket(t *testing.T) {
	path := serve(t, func(req *models.Request) *models.MessageEnvelope {
		return response("someone-else", nil)
	})

	c := NewConnection(path, time.Second)
	require.NoError(t, c.Connect())

	_, err := c.SendRequest(context.Background(), models.NewRequest("mine", "ping", nil))
	assert.ErrorContains(t, err, "does not match")
	assert.False(t, c.IsConnected())
}

func TestConnection_TimeoutDropsSocket(t *testing.T) {
	path := serve(t, func(req *models.Request) *models.MessageEnvelope {
		return nil
	})

	c := NewConnection(path, time.Second)
	require.NoError(t, c.Connect())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.SendRequest(ctx, models.NewRequest("slow", "ping", nil))
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "context deadline wins over the connection timeout")
	assert.False(t, c.IsConnected())
}

func TestConnection_SendWithoutConnect(t *testing.T) {
	c := NewConnection("/nonexistent.sock", time.Second)
	_, err := c.SendRequest(context.Background(), models.NewRequest("x", "ping", nil))
	assert.Error(t, err)
}
