package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vskvj3/playbook/internal/rpc"
)

// executor sends one request and waits for its reply.
type executor interface {
	Execute(ctx context.Context, request map[string]interface{}) (map[string]interface{}, error)
	Close() error
}

// tcpClient speaks the msgpack stream protocol.
type tcpClient struct {
	conn    net.Conn
	encoder *msgpack.Encoder
	decoder *msgpack.Decoder
}

func dialTCP(addr string) (*tcpClient, error) {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("error connecting to server: %w", err)
	}
	return &tcpClient{
		conn:    conn,
		encoder: msgpack.NewEncoder(conn),
		decoder: msgpack.NewDecoder(bufio.NewReader(conn)),
	}, nil
}

func (c *tcpClient) Execute(ctx context.Context, request map[string]interface{}) (map[string]interface{}, error) {
	deadline, _ := ctx.Deadline() // zero clears any earlier deadline
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}
	if err := c.encoder.Encode(request); err != nil {
		return nil, fmt.Errorf("error sending to server: %w", err)
	}
	var response map[string]interface{}
	if err := c.decoder.Decode(&response); err != nil {
		return nil, fmt.Errorf("error reading from server: %w", err)
	}
	return response, nil
}

func (c *tcpClient) Close() error {
	return c.conn.Close()
}

func connect(addr string, useGRPC bool) (executor, error) {
	if useGRPC {
		return rpc.Dial(addr)
	}
	return dialTCP(addr)
}
