package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dslh/mcp-imagegen/internal/validation"
)

// Tool names
const (
	GenerateImageTool = "generate_image"
	EditImageTool     = "edit_image"
	ListModelsTool    = "list_available_models"
)

// HandlerFunc is a tool implementation. It must always return a result;
// failures are reported inside the envelope.
type HandlerFunc func(ctx context.Context, raw json.RawMessage) *mcp.CallToolResult

// UnknownToolError is reported when a call names a tool that is not registered
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "Unknown tool: " + e.Name
}

type entry struct {
	tool    *mcp.Tool
	handler HandlerFunc
}

// Dispatcher routes tool calls by name to their handlers
type Dispatcher struct {
	logger  *slog.Logger
	order   []string
	entries map[string]entry
}

// NewDispatcher builds the catalog of built-in tools served by h
func NewDispatcher(h *Handlers, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{logger: logger, entries: make(map[string]entry)}

	d.add(&mcp.Tool{
		Name:        GenerateImageTool,
		Description: "Generate an image from text description using OpenRouter's Nano Banana model",
	}, validation.GenerateImageSchema, h.GenerateImage)

	d.add(&mcp.Tool{
		Name:        EditImageTool,
		Description: "Edit an existing image based on instructions",
	}, validation.EditImageSchema, h.EditImage)

	d.add(&mcp.Tool{
		Name:        ListModelsTool,
		Description: "List supported image generation models",
	}, validation.ListModelsSchema, h.ListModels)

	return d
}

func (d *Dispatcher) add(tool *mcp.Tool, schema *validation.Schema, handler HandlerFunc) {
	tool.InputSchema = schema.JSONSchema()
	d.order = append(d.order, tool.Name)
	d.entries[tool.Name] = entry{tool: tool, handler: handler}
}

// Tools returns the tool definitions in registration order
func (d *Dispatcher) Tools() []*mcp.Tool {
	tools := make([]*mcp.Tool, 0, len(d.order))
	for _, name := range d.order {
		tools = append(tools, d.entries[name].tool)
	}
	return tools
}

// Call runs the named tool. It never fails: unknown tools and handler panics
// are both reported as failure envelopes.
func (d *Dispatcher) Call(ctx context.Context, name string, raw json.RawMessage) (res *mcp.CallToolResult) {
	logger := d.logger.With("call_id", uuid.NewString(), "tool", name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Tool handler panicked", "panic", r)
			res = ErrorResponse(fmt.Errorf("internal error: %v", r), nil)
		}
		if f, failed := failureOf(res); failed {
			logger.Error("Tool call failed", "error", f.Error, "elapsed", time.Since(start))
			return
		}
		logger.Info("Tool call succeeded", "elapsed", time.Since(start))
	}()

	e, ok := d.entries[name]
	if !ok {
		return ErrorResponse(&UnknownToolError{Name: name}, nil)
	}

	logger.Debug("Tool call started")
	return e.handler(ctx, raw)
}

// Register installs every tool on server. Calls naming a tool that is not
// registered are answered with a failure envelope instead of a protocol error.
func (d *Dispatcher) Register(server *mcp.Server) {
	for _, name := range d.order {
		server.AddTool(d.entries[name].tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return d.Call(ctx, name, req.Params.Arguments), nil
		})
	}
	server.AddReceivingMiddleware(d.unknownToolMiddleware)
}

func (d *Dispatcher) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if call, ok := req.(*mcp.CallToolRequest); ok && call.Params != nil {
			if _, known := d.entries[call.Params.Name]; !known {
				return d.Call(ctx, call.Params.Name, call.Params.Arguments), nil
			}
		}
		return next(ctx, method, req)
	}
}
