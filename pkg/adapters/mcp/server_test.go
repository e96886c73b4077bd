package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pdaboat"
	"github.com/aretw0/pdaboat/pkg/domain"
)

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestServer_ListTemplates(t *testing.T) {
	s := NewServer(pdaboat.New())

	res, err := s.handleListTemplates(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var infos []domain.TemplateInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &infos))
	require.Len(t, infos, 15)
	assert.Equal(t, "anbn", infos[0].ID)
	assert.Equal(t, "custom", infos[len(infos)-1].ID)
}

func TestServer_Simulate(t *testing.T) {
	s := NewServer(pdaboat.New())
	ctx := context.Background()

	res, err := s.handleSimulate(ctx, callRequest(nil), SimulateArgs{Template: "anbn", Input: "aabb", Mode: "batch"})
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictAccept, res.Verdict)
	assert.Equal(t, domain.ModeBatch, res.Mode)
	assert.Len(t, res.Trace, 5)

	res, err = s.handleSimulate(ctx, callRequest(nil), SimulateArgs{Template: "nope", Input: "a\x00b"})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, "ab", res.Input, "control characters are stripped")

	_, err = s.handleSimulate(ctx, callRequest(nil), SimulateArgs{Template: "anbn", Mode: "turbo"})
	assert.Error(t, err)

	_, err = s.handleSimulate(ctx, callRequest(nil), SimulateArgs{Input: "ab"})
	assert.Error(t, err)
}

func TestServer_RenderSolution(t *testing.T) {
	s := NewServer(pdaboat.New())

	res, err := s.handleRenderSolution(context.Background(), callRequest(map[string]any{
		"template": "anbn",
		"input":    "ab",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	md := resultText(t, res)
	assert.True(t, strings.HasPrefix(md, "# aⁿ bⁿ"))
	assert.Contains(t, md, "✅ accepted")

	res, err = s.handleRenderSolution(context.Background(), callRequest(map[string]any{
		"template": "anbn",
		"input":    "ab",
		"mode":     "sideways",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_RenderGraph(t *testing.T) {
	s := NewServer(pdaboat.New())

	res, err := s.handleRenderGraph(context.Background(), callRequest(map[string]any{
		"template": "anbn",
		"input":    "ba",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), `q0 -. "b" .-> qreject`)
}

func TestServer_TemplatesResource(t *testing.T) {
	s := NewServer(pdaboat.New())

	contents, err := s.readTemplates(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, TemplatesURI, text.URI)
	assert.Contains(t, text.Text, `"id":"palindrome"`)
}
