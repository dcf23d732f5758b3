package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

const (
	toolFindBestMatch = "find_best_match"
	toolListFAQs      = "list_faqs"
)

// Server exposes the FAQ service as MCP tools.
type Server struct {
	svc    faq.Service
	srv    *server.MCPServer
	logger *slog.Logger
}

type matchPayload struct {
	Answer          *string `json:"answer"`
	Score           float64 `json:"score"`
	MatchedQuestion *string `json:"matchedQuestion"`
}

// NewServer registers the FAQ tools.
func NewServer(svc faq.Service, version string, logger *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		srv:    server.NewMCPServer("faqbot", version, server.WithToolCapabilities(false)),
		logger: logger.With("component", "mcp.server"),
	}

	s.srv.AddTool(mcp.NewTool(toolFindBestMatch,
		mcp.WithDescription("Find the stored college FAQ closest to a free-text question and return its answer with a confidence score"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Question to look up"),
		)), s.findBestMatch)

	s.srv.AddTool(mcp.NewTool(toolListFAQs,
		mcp.WithDescription("List every stored question and answer in corpus order"),
	), s.listFAQs)

	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.srv
}

func (s *Server) findBestMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(q) == "" {
		// blank queries degrade to a zero-confidence miss once a corpus is loaded
		if err := s.svc.Ready(ctx); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(matchPayload{})
	}

	resp, err := s.svc.Answer(ctx, faq.Request{Query: q})
	if err != nil {
		s.logger.Warn("find_best_match failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := matchPayload{Score: resp.Confidence}
	if resp.Found {
		answer := resp.Answer
		payload.Answer = &answer
		payload.MatchedQuestion = resp.MatchedQuestion
	}
	return jsonResult(payload)
}

func (s *Server) listFAQs(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.svc.FAQs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(items)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
