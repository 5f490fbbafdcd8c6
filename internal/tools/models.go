package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dslh/mcp-imagegen/internal/types"
	"github.com/dslh/mcp-imagegen/internal/validation"
)

// ListModels handles a list_available_models call
func (h *Handlers) ListModels(_ context.Context, raw json.RawMessage) *mcp.CallToolResult {
	if _, err := validation.Validate[types.ListModelsArgs](validation.ListModelsSchema, raw); err != nil {
		return ErrorResponse(err, nil)
	}
	return SuccessResponse(&ModelsResult{Success: true, Models: types.Models()})
}
