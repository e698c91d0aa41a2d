package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vskvj3/playbook/internal/core"
	"github.com/vskvj3/playbook/internal/utils"
)

type Server struct {
	CommandHandler *core.CommandHandler
	Port           string
}

func NewServer(handler *core.CommandHandler, port string) (*Server, error) {
	if handler == nil || handler.Database == nil {
		return nil, fmt.Errorf("database is not initialized")
	}
	utils.GetLogger().Info("TCP server initialized on port " + port)
	return &Server{CommandHandler: handler, Port: port}, nil
}

// Start binds the configured port and serves until ctx is done. If the port
// is taken a random one is used instead.
func (s *Server) Start(ctx context.Context) error {
	logger := utils.GetLogger()

	listener, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		logger.Warn("Port " + s.Port + " unavailable. Selecting a random port...")
		listener, err = net.Listen("tcp", ":0")
		if err != nil {
			return fmt.Errorf("error starting server: %w", err)
		}
	}
	return s.Serve(ctx, listener)
}

// Serve accepts client connections on listener until ctx is done. Open
// connections are closed on shutdown.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	logger := utils.GetLogger()
	logger.Info("Server is listening on " + listener.Addr().String())

	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			logger.Error("Error accepting connection: " + err.Error())
			continue
		}
		logger.Info("Accepted client: " + conn.RemoteAddr().String())
		closeOnShutdown := context.AfterFunc(ctx, func() { conn.Close() })
		go func() {
			defer closeOnShutdown()
			s.HandleConnection(conn)
		}()
	}
}

// HandleConnection reads a stream of msgpack request maps from conn and
// writes one reply map per request.
func (s *Server) HandleConnection(conn net.Conn) {
	logger := utils.GetLogger()
	defer func() {
		logger.Info("Client disconnected: " + conn.RemoteAddr().String())
		conn.Close()
	}()

	decoder := msgpack.NewDecoder(bufio.NewReader(conn))

	for {
		var request map[string]interface{}
		if err := decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				logger.Info("Client closed the connection: " + conn.RemoteAddr().String())
				return
			}
			// The stream cannot be resynchronised after a bad frame.
			logger.Error("Failed to decode request: " + err.Error())
			s.sendResponse(conn, core.ErrorResponse(fmt.Errorf("%w: %v", core.ErrMalformedRequest, err)))
			return
		}

		logger.Debug("Received request from client: " + conn.RemoteAddr().String())

		response, err := s.CommandHandler.HandleCommand(request)
		if err != nil {
			logger.Debugf("Command failed: %v", err)
			response = core.ErrorResponse(err)
		}
		if err := s.sendResponse(conn, response); err != nil {
			return
		}
	}
}

// sendResponse serializes the response and sends it to the client
func (s *Server) sendResponse(conn net.Conn, response map[string]interface{}) error {
	data, err := utils.EncodeResponse(response)
	if err == nil {
		_, err = conn.Write(data)
	}
	if err != nil {
		utils.GetLogger().Error("Failed to send response: " + err.Error())
		return err
	}
	return nil
}
