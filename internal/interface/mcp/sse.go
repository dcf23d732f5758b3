package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/server"
)

// SSEServer serves the MCP tools over server-sent events.
type SSEServer struct {
	addr   string
	sse    *server.SSEServer
	logger *slog.Logger
}

// NewSSEServer binds s to addr. baseURL defaults to http://<addr>.
func NewSSEServer(s *Server, addr, baseURL string, logger *slog.Logger) *SSEServer {
	if strings.TrimSpace(baseURL) == "" {
		host := addr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		baseURL = fmt.Sprintf("http://%s", host)
	}
	return &SSEServer{
		addr:   addr,
		sse:    server.NewSSEServer(s.MCPServer(), server.WithBaseURL(baseURL)),
		logger: logger.With("component", "mcp.sse", "address", addr),
	}
}

// Run serves until ctx is cancelled.
func (s *SSEServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server starting")
		errCh <- s.sse.Start(s.addr)
	}()

	select {
	case <-ctx.Done():
		if err := s.sse.Shutdown(context.Background()); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
