package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestDispatcher_Tools(t *testing.T) {
	d := NewDispatcher(newTestHandlers(t, &mockClient{}), discardLogger())

	tools := d.Tools()
	require.Len(t, tools, 3)
	assert.Equal(t, GenerateImageTool, tools[0].Name)
	assert.Equal(t, EditImageTool, tools[1].Name)
	assert.Equal(t, ListModelsTool, tools[2].Name)
	assert.Equal(t, "Generate an image from text description using OpenRouter's Nano Banana model", tools[0].Description)
	assert.Equal(t, "Edit an existing image based on instructions", tools[1].Description)
	assert.Equal(t, "List supported image generation models", tools[2].Description)
	for _, tool := range tools {
		assert.NotEmpty(t, tool.Description)
		assert.NotNil(t, tool.InputSchema)
	}
}

func TestDispatcher_UnknownTool(t *testing.T) {
	d := NewDispatcher(newTestHandlers(t, &mockClient{}), discardLogger())

	res := d.Call(context.Background(), "nonexistent_tool", json.RawMessage(`{}`))
	env := decodeEnvelope(t, res)

	assert.True(t, res.IsError)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Unknown tool: nonexistent_tool", env["error"])
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	client := &mockClient{
		generateFunc: func(context.Context, string, string) (string, error) {
			panic("boom")
		},
	}
	d := NewDispatcher(newTestHandlers(t, client), discardLogger())

	var res *mcp.CallToolResult
	require.NotPanics(t, func() {
		res = d.Call(context.Background(), GenerateImageTool, json.RawMessage(`{"prompt":"test"}`))
	})
	env := decodeEnvelope(t, res)
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["error"], "boom")
}

func TestDispatcher_RoutesByName(t *testing.T) {
	client := &mockClient{}
	d := NewDispatcher(newTestHandlers(t, client), discardLogger())

	env := decodeEnvelope(t, d.Call(context.Background(), ListModelsTool, nil))
	assert.Equal(t, true, env["success"])
	assert.Zero(t, client.generateCalls+client.editCalls)

	env = decodeEnvelope(t, d.Call(context.Background(), EditImageTool,
		json.RawMessage(`{"image_url":"https://example.com/a.png","edit_prompt":"blur"}`)))
	assert.Equal(t, true, env["success"], env)
	assert.Equal(t, 1, client.editCalls)
	assert.Zero(t, client.generateCalls)
}

// connect serves d over an in-memory transport and returns a connected client session
func connect(t *testing.T, d *Dispatcher) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := mcp.NewServer(&mcp.Implementation{Name: "test-server", Version: "1.0.0"}, &mcp.ServerOptions{Logger: discardLogger()})
	d.Register(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestRegister_ListTools(t *testing.T) {
	session := connect(t, NewDispatcher(newTestHandlers(t, &mockClient{}), discardLogger()))

	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{GenerateImageTool, EditImageTool, ListModelsTool}, names)
}

func TestRegister_CallTool(t *testing.T) {
	client := &mockClient{}
	h := newTestHandlers(t, client)
	session := connect(t, NewDispatcher(h, discardLogger()))
	out := filepath.Join(t.TempDir(), "apple.png")

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      GenerateImageTool,
		Arguments: map[string]any{"prompt": "a red apple", "output_path": out},
	})
	require.NoError(t, err)

	env := decodeEnvelope(t, res)
	assert.False(t, res.IsError)
	assert.Equal(t, true, env["success"])
	assert.Equal(t, out, env["file_path"])
	assert.FileExists(t, out)
	assert.Equal(t, 1, client.generateCalls)
}

func TestRegister_InvalidArgumentsAreEnvelopes(t *testing.T) {
	session := connect(t, NewDispatcher(newTestHandlers(t, &mockClient{}), discardLogger()))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      EditImageTool,
		Arguments: map[string]any{"image_url": "invalid-url", "edit_prompt": ""},
	})
	require.NoError(t, err, "validation failures must not become protocol errors")

	env := decodeEnvelope(t, res)
	assert.True(t, res.IsError)
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["error"], "Invalid image URL")
	assert.Contains(t, env["error"], "Edit prompt cannot be empty")
}

func TestRegister_UnknownTool(t *testing.T) {
	session := connect(t, NewDispatcher(newTestHandlers(t, &mockClient{}), discardLogger()))

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "nonexistent_tool",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)

	env := decodeEnvelope(t, res)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Unknown tool: nonexistent_tool", env["error"])
}
