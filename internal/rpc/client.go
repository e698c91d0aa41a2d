package rpc

import (
	"context"
	"fmt"

	"github.com/vskvj3/playbook/internal/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

type Client struct {
	Conn *grpc.ClientConn
}

// Dial creates a client for the server at address. Transport security is
// off unless opts say otherwise.
func Dial(address string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %v", err)
	}
	return &Client{Conn: conn}, nil
}

// Execute sends one request map and returns the reply map.
func (c *Client) Execute(ctx context.Context, request map[string]interface{}) (map[string]interface{}, error) {
	in, err := utils.MapToStruct(request)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.Conn.Invoke(ctx, executeMethod, in, out); err != nil {
		return nil, err
	}
	return utils.StructToMap(out), nil
}

func (c *Client) Close() error {
	return c.Conn.Close()
}
