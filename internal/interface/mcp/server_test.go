package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/faqbot/internal/domain/faq"
)

type staticSource []faq.Entry

func (s staticSource) Fetch(context.Context) ([]faq.Entry, error) { return s, nil }

func (s staticSource) Describe() string { return "static" }

func newServerUnderTest(t *testing.T, loaded bool) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := faq.NewCatalog()
	if loaded {
		loader := faq.NewLoader(faq.Config{}, staticSource{
			{Question: "What is the admission deadline?", Answer: "July 31."},
			{Question: "What are the hostel fees?", Answer: "₹50,000/year."},
		}, catalog, nil, logger)
		require.NoError(t, loader.Reload(context.Background()))
	}
	return NewServer(faq.NewService(catalog, logger), "test", logger)
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestFindBestMatchTool(t *testing.T) {
	s := newServerUnderTest(t, true)

	res, err := s.findBestMatch(context.Background(), callRequest(toolFindBestMatch, map[string]any{"query": "when is the admission deadline"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var payload matchPayload
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	require.Equal(t, "July 31.", *payload.Answer)
	require.Equal(t, "What is the admission deadline?", *payload.MatchedQuestion)
	require.GreaterOrEqual(t, payload.Score, 0.3)
}

func TestFindBestMatchToolNoMatch(t *testing.T) {
	s := newServerUnderTest(t, true)

	res, err := s.findBestMatch(context.Background(), callRequest(toolFindBestMatch, map[string]any{"query": "tell me a joke"}))
	require.NoError(t, err)

	var payload matchPayload
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	require.Nil(t, payload.Answer)
	require.Nil(t, payload.MatchedQuestion)
	require.Less(t, payload.Score, 0.3)
}

func TestFindBestMatchToolErrors(t *testing.T) {
	s := newServerUnderTest(t, true)
	res, err := s.findBestMatch(context.Background(), callRequest(toolFindBestMatch, map[string]any{}))
	require.NoError(t, err)
	require.True(t, res.IsError)

	empty := newServerUnderTest(t, false)
	res, err = empty.findBestMatch(context.Background(), callRequest(toolFindBestMatch, map[string]any{"query": "hostel fees"}))
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestFindBestMatchToolBlankQuery(t *testing.T) {
	s := newServerUnderTest(t, true)

	res, err := s.findBestMatch(context.Background(), callRequest(toolFindBestMatch, map[string]any{"query": "   "}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.JSONEq(t, `{"answer":null,"score":0,"matchedQuestion":null}`, resultText(t, res))

	empty := newServerUnderTest(t, false)
	res, err = empty.findBestMatch(context.Background(), callRequest(toolFindBestMatch, map[string]any{"query": ""}))
	require.NoError(t, err)
	require.True(t, res.IsError)
}

func TestListFAQsTool(t *testing.T) {
	s := newServerUnderTest(t, true)

	res, err := s.listFAQs(context.Background(), callRequest(toolListFAQs, nil))
	require.NoError(t, err)

	var items []faq.Entry
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &items))
	require.Len(t, items, 2)
	require.Equal(t, "What is the admission deadline?", items[0].Question)
	require.Equal(t, "What are the hostel fees?", items[1].Question)
}
